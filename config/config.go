package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPort            = "9000"
	DefaultKarliaBaseURL   = "https://karlia.fr/app/api/v2"
	DefaultSearchLimit     = 10
	DefaultMinQueryLength  = 2
	DefaultKarliaTimeout   = 15 * time.Second
	DefaultProbeSchedule   = "@every 30m"
	DefaultSearchDebounce  = 300 * time.Millisecond
	DefaultSMTPPort        = 587
	DefaultShutdownTimeout = 30 * time.Second
)

// Karlia holds the CRM connection settings. APIKey is never compiled in.
type Karlia struct {
	BaseURL        string
	APIKey         string
	SearchLimit    int
	MinQueryLength int
	Timeout        time.Duration
	ProbeSchedule  string
	Debounce       time.Duration
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether enough settings are present to send mail.
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != ""
}

func (s SMTP) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Config struct {
	Port               string
	AllowOrigins       []string
	PricingCatalogPath string
	PublicURL          string
	LogLevel           string
	Karlia             Karlia
	SMTP               SMTP
}

// Load reads an optional .env file, then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using process environment")
	}

	cfg := &Config{
		Port:               GetEnv("PORT", DefaultPort),
		AllowOrigins:       splitList(GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		PricingCatalogPath: GetEnv("PRICING_CATALOG_PATH", ""),
		PublicURL:          strings.TrimRight(GetEnv("QUOTE_PUBLIC_URL", ""), "/"),
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		Karlia: Karlia{
			BaseURL:        strings.TrimRight(GetEnv("KARLIA_API_BASE_URL", DefaultKarliaBaseURL), "/"),
			APIKey:         GetEnv("KARLIA_API_KEY", ""),
			SearchLimit:    GetEnvInt("KARLIA_SEARCH_LIMIT", DefaultSearchLimit),
			MinQueryLength: GetEnvInt("KARLIA_MIN_QUERY_LENGTH", DefaultMinQueryLength),
			Timeout:        GetEnvDuration("KARLIA_TIMEOUT", DefaultKarliaTimeout),
			ProbeSchedule:  GetEnv("KARLIA_PROBE_SCHEDULE", DefaultProbeSchedule),
			Debounce:       GetEnvDuration("KARLIA_SEARCH_DEBOUNCE", DefaultSearchDebounce),
		},
		SMTP: SMTP{
			Host:     GetEnv("SMTP_HOST", ""),
			Port:     GetEnvInt("SMTP_PORT", DefaultSMTPPort),
			Username: GetEnv("SMTP_USERNAME", ""),
			Password: GetEnv("SMTP_PASSWORD", ""),
			From:     GetEnv("SMTP_FROM", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid PORT %q: must be a number", c.Port)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 0 and 65535", port)
	}
	if c.Karlia.SearchLimit < 1 {
		return fmt.Errorf("invalid KARLIA_SEARCH_LIMIT %d: must be positive", c.Karlia.SearchLimit)
	}
	if c.Karlia.MinQueryLength < 1 {
		return fmt.Errorf("invalid KARLIA_MIN_QUERY_LENGTH %d: must be positive", c.Karlia.MinQueryLength)
	}
	return nil
}

func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func GetEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", val).Msg("ignoring non-integer environment value")
	}
	return defaultVal
}

func GetEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(val)); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", val).Msg("ignoring invalid duration")
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
