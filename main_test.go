package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ledquote/config"
	"ledquote/handlers"
	"ledquote/models"
	"ledquote/services"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

func TestRenderQuote(t *testing.T) {
	cfg := models.Configuration{
		ScreenType:      models.ScreenTypeStandard,
		Width:           4,
		Height:          2.25,
		NumScreens:      1,
		PanelSize:       "500x500",
		PitchPreference: 3.9,
		Environment:     models.EnvironmentOutdoor,
		Brightness:      5000,
	}
	quote, err := services.ComputeQuote(cfg)
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	services.Stamp(&quote, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	out := renderQuote(services.Normalize(cfg), quote)
	for _, want := range []string{
		quote.Reference,
		"Bumpers",
		"Câbles RJ45",
		"Total estimé HT: " + services.FormatPrice(12197),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered quote is missing %q:\n%s", want, out)
		}
	}
}

func runQuoteFlags(t *testing.T, args ...string) models.Configuration {
	t.Helper()
	var got models.Configuration
	app := &cli.App{
		Flags: quoteCommand().Flags,
		Action: func(c *cli.Context) error {
			var err error
			got, err = configurationFromFlags(c)
			return err
		},
	}
	if err := app.Run(append([]string{"ledquote"}, args...)); err != nil {
		t.Fatalf("app.Run returned error: %v", err)
	}
	return got
}

func TestConfigurationFromFlagsDefaults(t *testing.T) {
	got := runQuoteFlags(t, "--width", "3", "--height", "2")
	if got.Width != 3 || got.Height != 2 {
		t.Fatalf("unexpected size %vx%v", got.Width, got.Height)
	}
	if got.ScreenType != models.ScreenTypeStandard || got.PanelSize != "500x500" || got.NumScreens != 1 {
		t.Fatalf("flag defaults not applied: %+v", got)
	}
}

func TestConfigurationFromFlagsFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screen.json")
	body := `{"screenType":"flex","width":5,"height":3,"numScreens":2,"panelSize":"500x1000","pitchPreference":2.6,"environment":"indoor","brightness":800,"flexAngle":45}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	got := runQuoteFlags(t, "--config", path, "--width", "6")
	if got.ScreenType != models.ScreenTypeFlex || got.FlexAngle != 45 {
		t.Fatalf("file values not loaded: %+v", got)
	}
	if got.Width != 6 {
		t.Fatalf("expected width flag to override file, got %v", got.Width)
	}
	if got.Height != 3 || got.NumScreens != 2 || got.PanelSize != "500x1000" {
		t.Fatalf("file values overridden by unset flags: %+v", got)
	}
}

func TestRunContactSearchPrintsLatestQueryOnly(t *testing.T) {
	search := func(ctx context.Context, query string) ([]models.Contact, error) {
		return []models.Contact{{ID: "1", Company: "Result for " + query}}, nil
	}
	session := services.NewSearchSession(search, 50*time.Millisecond)
	defer session.Close()

	var out bytes.Buffer
	in := strings.NewReader("du\ndup\ndupont\n")
	if err := runContactSearch(in, &out, session, time.Second); err != nil {
		t.Fatalf("runContactSearch returned error: %v", err)
	}

	if !strings.Contains(out.String(), "Result for dupont") {
		t.Fatalf("expected result for the last query, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Result for dup\n") || strings.Contains(out.String(), "Result for du\n") {
		t.Fatalf("superseded query was printed:\n%s", out.String())
	}
}

func TestRunContactSearchEmptyInput(t *testing.T) {
	session := services.NewSearchSession(func(context.Context, string) ([]models.Contact, error) {
		t.Error("search must not run without input")
		return nil, nil
	}, time.Millisecond)
	defer session.Close()

	if err := runContactSearch(strings.NewReader(""), &bytes.Buffer{}, session, time.Second); err != nil {
		t.Fatalf("runContactSearch returned error: %v", err)
	}
}

func TestNewRouterHealthAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AllowOrigins: []string{"http://localhost:3000"}}
	deps := handlers.Dependencies{
		Engine: services.NewQuoteEngine(services.DefaultPricingCatalog()),
		Karlia: services.NewKarliaClient(config.Karlia{MinQueryLength: 2, SearchLimit: 10}),
	}
	r := newRouter(cfg, deps)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected CORS origin header, got %q", got)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Fatalf("unexpected health body %s", w.Body.String())
	}
}

func TestCORSConfigExposesDownloadHeaders(t *testing.T) {
	cc := CORSConfig([]string{"https://example.com"})
	exposed := strings.Join(cc.ExposeHeaders, ",")
	for _, h := range []string{"Content-Disposition", "X-Quote-Reference"} {
		if !strings.Contains(exposed, h) {
			t.Errorf("expected %s to be exposed", h)
		}
	}
	if err := cc.Validate(); err != nil {
		t.Fatalf("invalid CORS config: %v", err)
	}
}
