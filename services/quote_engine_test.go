package services

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"ledquote/models"
)

func outdoorExample() models.Configuration {
	return models.Configuration{
		ScreenType:      models.ScreenTypeStandard,
		Width:           4,
		Height:          2.25,
		NumScreens:      1,
		PanelSize:       "500x500",
		PitchPreference: 3.9,
		Environment:     models.EnvironmentOutdoor,
		Brightness:      5000,
	}
}

func TestComputeQuoteOutdoorExample(t *testing.T) {
	q, err := ComputeQuote(outdoorExample())
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Panels.Wide != 8 || q.Panels.High != 5 {
		t.Fatalf("expected 8x5 panels, got %dx%d", q.Panels.Wide, q.Panels.High)
	}
	if q.Panels.PerScreen != 40 || q.Panels.Total != 40 {
		t.Fatalf("expected 40 panels, got perScreen=%d total=%d", q.Panels.PerScreen, q.Panels.Total)
	}
	if q.Panels.Configuration != "8×5 par écran" {
		t.Fatalf("unexpected layout descriptor %q", q.Panels.Configuration)
	}
	if q.Dimensions.ActualWidth != "4.00" || q.Dimensions.ActualHeight != "2.50" {
		t.Fatalf("unexpected dimensions %s x %s", q.Dimensions.ActualWidth, q.Dimensions.ActualHeight)
	}
	if q.Resolution.PerPanel != 128*128 {
		t.Fatalf("expected %d pixels per panel, got %d", 128*128, q.Resolution.PerPanel)
	}
	if q.Resolution.PerScreen != 40*128*128 || q.Resolution.Total != 40*128*128 {
		t.Fatalf("unexpected resolution %+v", q.Resolution)
	}
	if q.Hardware.Bumpers != 20 || q.Hardware.Cables != 1 || q.Hardware.PowerSupplies != 1 {
		t.Fatalf("unexpected hardware %+v", q.Hardware)
	}
	if q.SpecialScreenInfo != "" {
		t.Fatalf("standard screens carry no special info, got %q", q.SpecialScreenInfo)
	}

	want := []models.LineItem{
		{Description: "Dalles LED 3.9mm (Extérieur, 5000 nits)", Quantity: 40, UnitPrice: 250, Total: 10000},
		{Description: "Processeurs", Quantity: 1, UnitPrice: 1200, Total: 1200},
		{Description: "Bumpers", Quantity: 20, UnitPrice: 45, Total: 900},
		{Description: "Câbles RJ45", Quantity: 1, UnitPrice: 12, Total: 12},
		{Description: "Alimentations", Quantity: 1, UnitPrice: 85, Total: 85},
	}
	if !reflect.DeepEqual(q.Pricing.Items, want) {
		t.Fatalf("unexpected line items:\n got %+v\nwant %+v", q.Pricing.Items, want)
	}
	if q.Pricing.TotalPrice != 12197 {
		t.Fatalf("expected total 12197, got %d", q.Pricing.TotalPrice)
	}
}

func TestComputeQuoteTransparentRedundantMultiScreen(t *testing.T) {
	cfg := models.Configuration{
		ScreenType:             models.ScreenTypeTransparent,
		Width:                  2,
		Height:                 1,
		NumScreens:             2,
		PanelSize:              "500x1000",
		PitchPreference:        1.9,
		Environment:            models.EnvironmentIndoor,
		Brightness:             800,
		Redundancy:             true,
		TransparencyLevel:      70,
		TransparentApplication: "vitrine",
		RearProjection:         true,
	}
	q, err := ComputeQuote(cfg)
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Panels.PerScreen != 4 || q.Panels.Total != 8 {
		t.Fatalf("expected 4 panels per screen and 8 total, got %+v", q.Panels)
	}
	panels := q.Pricing.Items[0]
	if panels.UnitPrice != 581 || panels.Total != 4646 {
		t.Fatalf("expected unit 581 (580.8) and total 4646, got %+v", panels)
	}
	if got := q.Pricing.PanelUnitPrice.String(); got != "580.8" {
		t.Fatalf("expected exact unit price 580.8, got %s", got)
	}
	if q.Hardware.Bumpers != 6 {
		t.Fatalf("expected ceil(8*0.7)=6 bumpers, got %d", q.Hardware.Bumpers)
	}
	if q.Hardware.Cables != 4 {
		t.Fatalf("expected 4 cables with redundancy, got %d", q.Hardware.Cables)
	}
	if q.Pricing.TotalPrice != 4646+2400+270+48+170 {
		t.Fatalf("unexpected total %d", q.Pricing.TotalPrice)
	}
	if !strings.HasSuffix(panels.Description, " - Transparent") {
		t.Fatalf("expected screen type suffix, got %q", panels.Description)
	}
	wantInfo := "Écran transparent avec 70% de transparence. Application: vitrine. Compatible avec l'arrière-projection."
	if q.SpecialScreenInfo != wantInfo {
		t.Fatalf("unexpected info %q", q.SpecialScreenInfo)
	}
	for _, p := range q.Hardware.Processors {
		if p.PortsUsed != 2 {
			t.Fatalf("expected 2 ports per processor with redundancy, got %d", p.PortsUsed)
		}
	}
}

func TestComputeQuoteCubic(t *testing.T) {
	cfg := models.Configuration{
		ScreenType:      models.ScreenTypeCubic,
		Width:           1,
		Height:          1,
		NumScreens:      1,
		PanelSize:       "500x500",
		PitchPreference: 3.9,
		Environment:     models.EnvironmentOutdoor,
		Brightness:      3000,
		CubeFaces:       4,
		CubeArrangement: "pyramid",
	}
	q, err := ComputeQuote(cfg)
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Pricing.Items[0].UnitPrice != 252 {
		t.Fatalf("expected 180*1.4=252, got %d", q.Pricing.Items[0].UnitPrice)
	}
	if q.Hardware.Bumpers != 3 {
		t.Fatalf("expected ceil(4*0.7)=3 bumpers, got %d", q.Hardware.Bumpers)
	}
	if q.Pricing.TotalPrice != 2440 {
		t.Fatalf("expected total 2440, got %d", q.Pricing.TotalPrice)
	}
	want := "Structure cubique avec 4 faces visibles par cube. Disposition en pyramide."
	if q.SpecialScreenInfo != want {
		t.Fatalf("unexpected info %q", q.SpecialScreenInfo)
	}
}

func TestScreenTypeMultiplier(t *testing.T) {
	catalog := DefaultPricingCatalog()
	tests := []struct {
		cfg  models.Configuration
		want string
	}{
		{models.Configuration{ScreenType: models.ScreenTypeStandard}, "1"},
		{models.Configuration{ScreenType: models.ScreenTypeCubic}, "1.4"},
		{models.Configuration{ScreenType: models.ScreenTypeTransparent}, "2.2"},
		{models.Configuration{ScreenType: models.ScreenTypeSemiTransparent}, "1.8"},
		{models.Configuration{ScreenType: models.ScreenTypeFlex, FlexAngle: 181}, "1.5"},
		{models.Configuration{ScreenType: models.ScreenTypeFlex, FlexAngle: 180}, "1.3"},
		{models.Configuration{ScreenType: models.ScreenTypeFlex}, "1.3"},
	}
	for _, tt := range tests {
		if got := catalog.screenTypeMultiplier(tt.cfg).String(); got != tt.want {
			t.Fatalf("%s angle %v: expected %s, got %s", tt.cfg.ScreenType, tt.cfg.FlexAngle, tt.want, got)
		}
	}
}

func TestBasePanelPrice(t *testing.T) {
	catalog := DefaultPricingCatalog()
	tests := []struct {
		environment string
		brightness  int
		want        int
	}{
		{models.EnvironmentOutdoor, 7500, 250},
		{models.EnvironmentOutdoor, 5000, 250},
		{models.EnvironmentOutdoor, 4999, 180},
		{models.EnvironmentIndoor, 2500, 150},
		{models.EnvironmentIndoor, 2499, 120},
		{"", 9000, 120},
	}
	for _, tt := range tests {
		if got := catalog.basePanelPrice(tt.environment, tt.brightness); got != tt.want {
			t.Fatalf("%q/%d: expected %d, got %d", tt.environment, tt.brightness, tt.want, got)
		}
	}
}

func TestPitchSurchargeBoundaries(t *testing.T) {
	tests := []struct {
		pitch    float64
		wantUnit int64
	}{
		{1.2, 264},
		{1.9, 264},
		{1.91, 180},
		{2.5, 180},
		{2.6, 180},
		{2.61, 120},
		{3.9, 120},
	}
	for _, tt := range tests {
		cfg := models.Configuration{
			Width: 1, Height: 1, NumScreens: 1, PanelSize: "500x500",
			PitchPreference: tt.pitch, Environment: models.EnvironmentIndoor, Brightness: 800,
		}
		q, err := ComputeQuote(cfg)
		if err != nil {
			t.Fatalf("pitch %v: %v", tt.pitch, err)
		}
		if got := q.Pricing.Items[0].UnitPrice; got != tt.wantUnit {
			t.Fatalf("pitch %v: expected unit price %d, got %d", tt.pitch, tt.wantUnit, got)
		}
	}
}

func TestPixelRoundingHalfAwayFromZero(t *testing.T) {
	cfg := models.Configuration{Width: 1, Height: 1, NumScreens: 1, PanelSize: "500x500", PitchPreference: 8, Environment: "indoor"}
	q, err := ComputeQuote(cfg)
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Resolution.PerPanelWidth != 63 {
		t.Fatalf("expected 62.5 to round to 63, got %d", q.Resolution.PerPanelWidth)
	}
}

func TestComputeQuoteDefaults(t *testing.T) {
	q, err := ComputeQuote(models.Configuration{Width: 1, Height: 0.5, NumScreens: 1, Environment: "indoor"})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Panels.Wide != 2 || q.Panels.High != 1 {
		t.Fatalf("expected default 500x500 panels, got %+v", q.Panels)
	}
	if !strings.HasPrefix(q.Pricing.Items[0].Description, "Dalles LED 3.9mm (Intérieur, 0 nits)") {
		t.Fatalf("expected default pitch in description, got %q", q.Pricing.Items[0].Description)
	}
}

func TestComputeQuoteProperties(t *testing.T) {
	widths := []float64{0.5, 1, 2.25, 3.3, 4.1, 7.77}
	panels := []string{"500x500", "500x1000", "640x480", "960x960", "250x250"}
	for _, w := range widths {
		for _, h := range widths {
			for _, ps := range panels {
				for screens := 1; screens <= 3; screens++ {
					cfg := models.Configuration{
						ScreenType: models.ScreenTypeSemiTransparent, Width: w, Height: h, NumScreens: screens,
						PanelSize: ps, PitchPreference: 2.6, Environment: models.EnvironmentOutdoor, Brightness: 4500,
					}
					q, err := ComputeQuote(cfg)
					if err != nil {
						t.Fatalf("%+v: %v", cfg, err)
					}
					size, _ := ParsePanelSize(ps)
					if want := int(math.Ceil(w * 1000 / float64(size.Width))); q.Panels.Wide != want {
						t.Fatalf("w=%v panel=%s: expected %d wide, got %d", w, ps, want, q.Panels.Wide)
					}
					if q.Dimensions.WidthM < w || q.Dimensions.HeightM < h {
						t.Fatalf("realized size %vx%v smaller than requested %vx%v", q.Dimensions.WidthM, q.Dimensions.HeightM, w, h)
					}
					if q.Panels.Total != q.Panels.PerScreen*screens {
						t.Fatalf("total panels %d != %d*%d", q.Panels.Total, q.Panels.PerScreen, screens)
					}
					var sum int64
					for _, item := range q.Pricing.Items {
						sum += item.Total
					}
					if sum != q.Pricing.TotalPrice {
						t.Fatalf("line items sum %d != total %d", sum, q.Pricing.TotalPrice)
					}
					again, _ := ComputeQuote(cfg)
					if !reflect.DeepEqual(q, again) {
						t.Fatalf("ComputeQuote is not deterministic for %+v", cfg)
					}
				}
			}
		}
	}
}

func TestComputeQuoteRejectsInvalidInput(t *testing.T) {
	base := outdoorExample()
	tests := map[string]func(*models.Configuration){
		"zero width":        func(c *models.Configuration) { c.Width = 0 },
		"negative height":   func(c *models.Configuration) { c.Height = -1 },
		"nan width":         func(c *models.Configuration) { c.Width = math.NaN() },
		"negative pitch":    func(c *models.Configuration) { c.PitchPreference = -3.9 },
		"no screens":        func(c *models.Configuration) { c.NumScreens = 0 },
		"single dimension":  func(c *models.Configuration) { c.PanelSize = "500" },
		"zero panel width":  func(c *models.Configuration) { c.PanelSize = "0x500" },
		"letters":           func(c *models.Configuration) { c.PanelSize = "axb" },
		"unknown type":      func(c *models.Configuration) { c.ScreenType = "oval" },
		"unknown env":       func(c *models.Configuration) { c.Environment = "space" },
		"negative nits":     func(c *models.Configuration) { c.Brightness = -1 },
		"three dimensions":  func(c *models.Configuration) { c.PanelSize = "500x500x10" },
		"fractional panels": func(c *models.Configuration) { c.PanelSize = "500.5x500" },
	}
	for name, mutate := range tests {
		cfg := base
		mutate(&cfg)
		if _, err := ComputeQuote(cfg); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestComputeQuoteRejectsOversizedScreens(t *testing.T) {
	tests := map[string]func(*models.Configuration){
		"huge width and height": func(c *models.Configuration) { c.Width, c.Height = 1e10, 1e10 },
		"huge width":            func(c *models.Configuration) { c.Width = 1e300 },
		"many screens":          func(c *models.Configuration) { c.Width, c.Height, c.NumScreens = 1e4, 1e4, 1000000 },
		"microscopic pitch":     func(c *models.Configuration) { c.PitchPreference = 1e-9 },
	}
	for name, mutate := range tests {
		cfg := outdoorExample()
		mutate(&cfg)
		q, err := ComputeQuote(cfg)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got err=%v total=%d panels=%d",
				name, err, q.Pricing.TotalPrice, q.Panels.Total)
		}
	}
}

func TestComputeQuoteTinyScreenNeedsOnePanel(t *testing.T) {
	cfg := outdoorExample()
	cfg.Width, cfg.Height = 1e-20, 1e-9
	q, err := ComputeQuote(cfg)
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Panels.Wide != 1 || q.Panels.High != 1 || q.Panels.Total != 1 {
		t.Fatalf("expected a single panel, got %+v", q.Panels)
	}
	if q.Dimensions.WidthM < cfg.Width || q.Dimensions.HeightM < cfg.Height {
		t.Fatalf("realized size %vx%v is smaller than requested", q.Dimensions.WidthM, q.Dimensions.HeightM)
	}
	if q.Pricing.TotalPrice <= 0 {
		t.Fatalf("expected a positive total, got %d", q.Pricing.TotalPrice)
	}
}

func TestValidateReportsFirstInvalidFieldInOrder(t *testing.T) {
	cfg := Normalize(models.Configuration{Width: -1, Height: -1, PitchPreference: -1, NumScreens: 1})
	for i := 0; i < 50; i++ {
		_, err := Validate(cfg)
		if err == nil || !strings.Contains(err.Error(), "width must be") {
			t.Fatalf("expected the width error on every run, got %v", err)
		}
	}
}

func TestParsePanelSize(t *testing.T) {
	size, err := ParsePanelSize(" 640X480 ")
	if err != nil {
		t.Fatalf("ParsePanelSize returned error: %v", err)
	}
	if size.Width != 640 || size.Height != 480 {
		t.Fatalf("unexpected size %+v", size)
	}
}

func TestSpecialScreenInfoFlexAndSemiTransparent(t *testing.T) {
	flex := models.Configuration{ScreenType: models.ScreenTypeFlex, FlexCurveRadius: 2.5, FlexAngle: 200, FlexMounting: "column"}
	if got, want := SpecialScreenInfo(flex), "Écran flexible avec un rayon de 2.5m et un angle de 200°. Montage sur colonne/pilier."; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	flex.FlexMounting = "tripod"
	if got := SpecialScreenInfo(flex); !strings.HasSuffix(got, "Montage sur structure autoportante.") {
		t.Fatalf("unknown mounting should use fallback label, got %q", got)
	}
	semi := models.Configuration{ScreenType: models.ScreenTypeSemiTransparent, SemiTransparencyLevel: 40, PixelDensity: "haute"}
	if got, want := SpecialScreenInfo(semi), "Écran semi-transparent avec 40% de transparence. Densité de pixels: haute."; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	cubic := models.Configuration{ScreenType: models.ScreenTypeCubic, CubeFaces: 6}
	if got := SpecialScreenInfo(cubic); !strings.HasSuffix(got, "Disposition en configuration personnalisée.") {
		t.Fatalf("unexpected cubic fallback %q", got)
	}
}

func TestStamp(t *testing.T) {
	q, err := ComputeQuote(outdoorExample())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	Stamp(&q, now)
	if q.Reference == "" {
		t.Fatalf("expected a reference")
	}
	if q.GeneratedAt == nil || !q.GeneratedAt.Equal(now) || q.GeneratedAt.Location() != time.UTC {
		t.Fatalf("unexpected generation time %v", q.GeneratedAt)
	}
}

func TestConfigurationFromForm(t *testing.T) {
	values := url.Values{
		"screenType":      {"flex"},
		"width":           {"4"},
		"height":          {"2,25"},
		"numScreens":      {"2"},
		"panelSize":       {"500x500"},
		"pitchPreference": {"2.6"},
		"environment":     {"outdoor"},
		"brightness":      {"5000"},
		"redundancy":      {"true"},
		"flexAngle":       {"210"},
		"flexMounting":    {"wall"},
		"clientName":      {"Jean Dupont - ACME"},
	}
	cfg, err := ConfigurationFromForm(values)
	if err != nil {
		t.Fatalf("ConfigurationFromForm returned error: %v", err)
	}
	if cfg.Height != 2.25 || cfg.NumScreens != 2 || !cfg.Redundancy || cfg.FlexAngle != 210 {
		t.Fatalf("unexpected configuration %+v", cfg)
	}
	if cfg.ClientName != "Jean Dupont - ACME" {
		t.Fatalf("expected client name to pass through, got %q", cfg.ClientName)
	}

	values.Set("width", "quatre")
	if _, err := ConfigurationFromForm(values); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-numeric width, got %v", err)
	}
}

func TestRecommendations(t *testing.T) {
	if p, ok := RecommendPitch("très loin"); !ok || p != 5.9 {
		t.Fatalf("expected 5.9, got %v %v", p, ok)
	}
	if _, ok := RecommendPitch("ailleurs"); ok {
		t.Fatalf("unknown distance should not be recommended")
	}
	tests := []struct {
		env, sun string
		want     int
	}{
		{"outdoor", "yes", 7500},
		{"outdoor", "partial", 5000},
		{"outdoor", "no", 2500},
		{"indoor", "yes", 2500},
		{"indoor", "partial", 1000},
		{"indoor", "no", 800},
	}
	for _, tt := range tests {
		if got := RecommendBrightness(tt.env, tt.sun); got != tt.want {
			t.Fatalf("%s/%s: expected %d, got %d", tt.env, tt.sun, tt.want, got)
		}
	}
}

func TestSummary(t *testing.T) {
	cfg := outdoorExample()
	cfg.ClientName = "ACME"
	cfg.ScreenPurpose = "affichage"
	if got, want := Summary(cfg), "Client: ACME | Type: affichage | Environnement: outdoor"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
