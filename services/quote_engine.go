package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ledquote/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultPitch     = 3.9
	DefaultPanelSize = "500x500"

	processorCapacityUtilization = "9.5%"
)

var thousand = decimal.NewFromInt(1000)

// QuoteEngine turns a configuration into a sizing and price estimate.
// It holds no state besides its catalogue and is safe for concurrent use.
type QuoteEngine struct {
	catalog PricingCatalog
}

func NewQuoteEngine(catalog PricingCatalog) *QuoteEngine {
	return &QuoteEngine{catalog: catalog}
}

// ComputeQuote prices cfg with the default catalogue.
func ComputeQuote(cfg models.Configuration) (models.QuoteResult, error) {
	return NewQuoteEngine(DefaultPricingCatalog()).Compute(cfg)
}

func (e *QuoteEngine) Catalog() PricingCatalog { return e.catalog }

// ParsePanelSize parses a "<w>x<h>" size in millimeters.
func ParsePanelSize(s string) (models.PanelSize, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return models.PanelSize{}, invalidInput("panel size %q must look like 500x500", s)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return models.PanelSize{}, invalidInput("panel size %q must be two positive integers", s)
	}
	return models.PanelSize{Width: w, Height: h}, nil
}

// Normalize fills the defaults the form leaves implicit.
func Normalize(cfg models.Configuration) models.Configuration {
	cfg.ScreenType = strings.ToLower(strings.TrimSpace(cfg.ScreenType))
	if cfg.ScreenType == "" {
		cfg.ScreenType = models.ScreenTypeStandard
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if strings.TrimSpace(cfg.PanelSize) == "" {
		cfg.PanelSize = DefaultPanelSize
	}
	if cfg.PitchPreference == 0 {
		cfg.PitchPreference = DefaultPitch
	}
	return cfg
}

// Validate checks the preconditions of Compute on a normalized configuration.
func Validate(cfg models.Configuration) (models.PanelSize, error) {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"width", cfg.Width},
		{"height", cfg.Height},
		{"pitchPreference", cfg.PitchPreference},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return models.PanelSize{}, invalidInput("%s must be a positive number", f.name)
		}
	}
	if cfg.NumScreens < 1 {
		return models.PanelSize{}, invalidInput("numScreens must be at least 1")
	}
	if cfg.Brightness < 0 {
		return models.PanelSize{}, invalidInput("brightness must not be negative")
	}
	switch cfg.ScreenType {
	case models.ScreenTypeStandard, models.ScreenTypeCubic, models.ScreenTypeFlex,
		models.ScreenTypeTransparent, models.ScreenTypeSemiTransparent:
	default:
		return models.PanelSize{}, invalidInput("unknown screen type %q", cfg.ScreenType)
	}
	switch cfg.Environment {
	case "", models.EnvironmentIndoor, models.EnvironmentOutdoor:
	default:
		return models.PanelSize{}, invalidInput("unknown environment %q", cfg.Environment)
	}
	return ParsePanelSize(cfg.PanelSize)
}

// Compute derives the panel layout, resolution, hardware and pricing.
// It has no side effects; identical input gives identical output.
func (e *QuoteEngine) Compute(cfg models.Configuration) (models.QuoteResult, error) {
	cfg = Normalize(cfg)
	panel, err := Validate(cfg)
	if err != nil {
		return models.QuoteResult{}, err
	}

	pw := decimal.NewFromInt(int64(panel.Width))
	ph := decimal.NewFromInt(int64(panel.Height))
	pitch := decimal.NewFromFloat(cfg.PitchPreference)
	screens := int64(cfg.NumScreens)

	wideD := panelCount(cfg.Width, pw)
	highD := panelCount(cfg.Height, ph)
	perScreenD := wideD.Mul(highD)
	totalPanelsD := perScreenD.Mul(decimal.NewFromInt(screens))
	pixelsWD := pw.Div(pitch).Round(0)
	pixelsHD := ph.Div(pitch).Round(0)

	unitPrice := decimal.NewFromInt(int64(e.catalog.basePanelPrice(cfg.Environment, cfg.Brightness))).
		Mul(e.catalog.pitchSurcharge(pitch)).
		Mul(e.catalog.screenTypeMultiplier(cfg))
	bumpersD := totalPanelsD.Mul(e.catalog.bumperFraction(cfg.ScreenType)).Ceil()

	// Reject sizes whose counts or amounts do not fit the result fields.
	fixedPerScreen := decimal.NewFromInt(e.catalog.ProcessorPrice + e.catalog.PowerSupplyPrice + 2*e.catalog.CablePrice)
	priceBound := unitPrice.Mul(totalPanelsD).Round(0).
		Add(bumpersD.Mul(decimal.NewFromInt(e.catalog.BumperPrice))).
		Add(fixedPerScreen.Mul(decimal.NewFromInt(screens)))
	if !within(maxQuantity, wideD.Mul(pw), highD.Mul(ph), totalPanelsD, bumpersD, pixelsWD.Mul(pixelsHD)) ||
		!within(maxAmount, priceBound, pixelsWD.Mul(pixelsHD).Mul(totalPanelsD)) {
		return models.QuoteResult{}, invalidInput("screen of %sm × %sm is too large to quote", FormatNumber(cfg.Width), FormatNumber(cfg.Height))
	}

	panelsWide := wideD.IntPart()
	panelsHigh := highD.IntPart()
	panelsPerScreen := panelsWide * panelsHigh
	totalPanels := panelsPerScreen * screens

	pixelsW := pixelsWD.IntPart()
	pixelsH := pixelsHD.IntPart()
	pixelsPerPanel := pixelsW * pixelsH
	pixelsPerScreen := pixelsPerPanel * panelsPerScreen

	actualWidth := float64(panelsWide*int64(panel.Width)) / 1000
	actualHeight := float64(panelsHigh*int64(panel.Height)) / 1000

	panelsTotal := unitPrice.Mul(totalPanelsD).Round(0).IntPart()
	bumpers := bumpersD.IntPart()
	cablesPerScreen := int64(1)
	if cfg.Redundancy {
		cablesPerScreen = 2
	}
	cables := cablesPerScreen * screens

	items := []models.LineItem{
		{
			Description: panelDescription(cfg),
			Quantity:    int(totalPanels),
			UnitPrice:   unitPrice.Round(0).IntPart(),
			Total:       panelsTotal,
		},
		fixedLine("Processeurs", screens, e.catalog.ProcessorPrice),
		fixedLine("Bumpers", bumpers, e.catalog.BumperPrice),
		fixedLine("Câbles RJ45", cables, e.catalog.CablePrice),
		fixedLine("Alimentations", screens, e.catalog.PowerSupplyPrice),
	}
	var total int64
	for _, item := range items {
		total += item.Total
	}

	return models.QuoteResult{
		Dimensions: models.Dimensions{
			WidthM:       actualWidth,
			HeightM:      actualHeight,
			ActualWidth:  FormatMeters(actualWidth),
			ActualHeight: FormatMeters(actualHeight),
		},
		Panels: models.Panels{
			Wide:          int(panelsWide),
			High:          int(panelsHigh),
			PerScreen:     int(panelsPerScreen),
			Total:         int(totalPanels),
			Configuration: fmt.Sprintf("%d×%d par écran", panelsWide, panelsHigh),
		},
		Resolution: models.Resolution{
			PerPanelWidth:  int(pixelsW),
			PerPanelHeight: int(pixelsH),
			PerPanel:       int(pixelsPerPanel),
			PerScreen:      pixelsPerScreen,
			Total:          pixelsPerScreen * screens,
		},
		Hardware: models.Hardware{
			Processors:    e.processors(int(cablesPerScreen)),
			Bumpers:       int(bumpers),
			Cables:        int(cables),
			PowerSupplies: int(screens),
		},
		SpecialScreenInfo: SpecialScreenInfo(cfg),
		Pricing: models.Pricing{
			Items:          items,
			TotalPrice:     total,
			PanelUnitPrice: unitPrice,
		},
	}, nil
}

// panelCount is ceil(meters·1000 / panelMM) computed exactly, so any
// positive size needs at least one panel.
func panelCount(meters float64, panelMM decimal.Decimal) decimal.Decimal {
	q, r := decimal.NewFromFloat(meters).Mul(thousand).QuoRem(panelMM, 0)
	if r.Sign() > 0 {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}

// Quantities are reported as int; prices and pixel totals as int64.
var (
	maxQuantity = decimal.NewFromInt(math.MaxInt32)
	maxAmount   = decimal.NewFromInt(math.MaxInt64)
)

func within(limit decimal.Decimal, values ...decimal.Decimal) bool {
	for _, v := range values {
		if v.GreaterThan(limit) {
			return false
		}
	}
	return true
}

// Stamp gives a computed quote its reference and generation time.
func Stamp(q *models.QuoteResult, now time.Time) {
	q.Reference = uuid.NewString()
	t := now.UTC()
	q.GeneratedAt = &t
}

func fixedLine(description string, quantity, unitPrice int64) models.LineItem {
	return models.LineItem{
		Description: description,
		Quantity:    int(quantity),
		UnitPrice:   unitPrice,
		Total:       quantity * unitPrice,
	}
}

// processors is the fixed two-entry list the configurator has always
// shown. It does not scale with the number of screens.
// TODO: size the processor list from numScreens and pixel load once sales confirms the rule.
func (e *QuoteEngine) processors(portsUsed int) []models.Processor {
	return []models.Processor{
		{Screen: 1, Model: e.catalog.ProcessorModel, PortsUsed: portsUsed, CapacityUtilization: processorCapacityUtilization},
		{Screen: 2, Model: e.catalog.ProcessorModel, PortsUsed: portsUsed, CapacityUtilization: processorCapacityUtilization},
	}
}

func (p PricingCatalog) basePanelPrice(environment string, brightness int) int {
	switch {
	case environment == models.EnvironmentOutdoor && brightness >= p.OutdoorBrightnessThreshold:
		return p.OutdoorHighBrightness
	case environment == models.EnvironmentOutdoor:
		return p.OutdoorLowBrightness
	case environment == models.EnvironmentIndoor && brightness >= p.IndoorBrightnessThreshold:
		return p.IndoorHighBrightness
	}
	return p.FallbackPanelPrice
}

// pitchSurcharge checks the finest tier first; the tiers are exclusive.
func (p PricingCatalog) pitchSurcharge(pitch decimal.Decimal) decimal.Decimal {
	switch {
	case pitch.LessThanOrEqual(p.FinePitchMax):
		return p.FinePitchSurcharge
	case pitch.LessThanOrEqual(p.MediumPitchMax):
		return p.MediumPitchSurcharge
	}
	return decimal.NewFromInt(1)
}

func (p PricingCatalog) screenTypeMultiplier(cfg models.Configuration) decimal.Decimal {
	if cfg.ScreenType == models.ScreenTypeFlex {
		if cfg.FlexAngle > p.FlexWideAngle {
			return p.FlexWideMultiplier
		}
		return p.FlexNarrowMultiplier
	}
	if m, ok := p.ScreenTypeMultipliers[cfg.ScreenType]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

func (p PricingCatalog) bumperFraction(screenType string) decimal.Decimal {
	if screenType == models.ScreenTypeStandard {
		return p.StandardBumperFraction
	}
	return p.SpecialBumperFraction
}

// FormatMeters renders a length with two decimals.
func FormatMeters(m float64) string {
	return strconv.FormatFloat(m, 'f', 2, 64)
}

// FormatNumber renders a form value without trailing zeros (3.9, 180).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func EnvironmentLabel(environment string) string {
	if environment == models.EnvironmentOutdoor {
		return "Extérieur"
	}
	return "Intérieur"
}

var screenTypeLabels = map[string]string{
	models.ScreenTypeCubic:           "Cubique",
	models.ScreenTypeFlex:            "Flexible",
	models.ScreenTypeTransparent:     "Transparent",
	models.ScreenTypeSemiTransparent: "Semi-transparent",
}

// ScreenTypeLabel is the French display name of a screen type.
func ScreenTypeLabel(screenType string) string {
	if label, ok := screenTypeLabels[screenType]; ok {
		return label
	}
	return cases.Title(language.French).String(screenType)
}

func panelDescription(cfg models.Configuration) string {
	desc := fmt.Sprintf("Dalles LED %smm (%s, %d nits)",
		FormatNumber(cfg.PitchPreference), EnvironmentLabel(cfg.Environment), cfg.Brightness)
	if label, ok := screenTypeLabels[cfg.ScreenType]; ok {
		desc += " - " + label
	}
	return desc
}

// Summary is the one-line project header shown above the results.
func Summary(cfg models.Configuration) string {
	return fmt.Sprintf("Client: %s | Type: %s | Environnement: %s", cfg.ClientName, cfg.ScreenPurpose, cfg.Environment)
}
