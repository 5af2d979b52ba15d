// @title           LED Quote API
// @version         1.0
// @description     LED video wall quote engine and KARLIA CRM contact lookup.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @schemes http https
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"ledquote/config"
	"ledquote/services"

	"github.com/gin-contrib/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "ledquote",
		Usage:   "LED video wall quotes and KARLIA contact lookup",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "",
				Usage:   "log level (debug, info, warn, error); defaults to LOG_LEVEL",
				EnvVars: []string{"LEDQUOTE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before the process environment",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			quoteCommand(),
			contactsCommand(),
			pingCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig reads configuration and sets up the global logger. Console
// output is used for interactive commands, JSON lines for the server.
func loadConfig(c *cli.Context, console bool) (*config.Config, error) {
	setupLogger(c.String("log-level"), console)

	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}
	if c.String("log-level") == "" {
		setupLogger(cfg.LogLevel, console)
	}
	return cfg, nil
}

func setupLogger(level string, console bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// loadCatalog returns the built-in prices, overlaid with the YAML file
// at path when one is configured.
func loadCatalog(path string) (services.PricingCatalog, error) {
	catalog, err := services.LoadPricingCatalog(path)
	if err != nil {
		return services.PricingCatalog{}, fmt.Errorf("pricing catalog: %w", err)
	}
	if path != "" {
		log.Info().Str("path", path).Msg("pricing catalog loaded")
	}
	return catalog, nil
}

func CORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept",
		"Origin", "X-Requested-With", "Authorization", "Cache-Control",
		"Accept-Language",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS", "HEAD"}
	// Downloads carry the filename and reference in headers.
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition", "X-Quote-Reference",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}
