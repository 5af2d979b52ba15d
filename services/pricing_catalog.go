package services

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PricingCatalog holds every rate used by the quote engine.
// The zero value is not usable; start from DefaultPricingCatalog.
type PricingCatalog struct {
	// Panel base price in euros by environment and brightness threshold.
	OutdoorHighBrightness int `yaml:"outdoor_high_brightness"`
	OutdoorLowBrightness  int `yaml:"outdoor_low_brightness"`
	IndoorHighBrightness  int `yaml:"indoor_high_brightness"`
	FallbackPanelPrice    int `yaml:"fallback_panel_price"`

	OutdoorBrightnessThreshold int `yaml:"outdoor_brightness_threshold"`
	IndoorBrightnessThreshold  int `yaml:"indoor_brightness_threshold"`

	// Pitch surcharges, finest tier first.
	FinePitchMax         decimal.Decimal `yaml:"fine_pitch_max"`
	FinePitchSurcharge   decimal.Decimal `yaml:"fine_pitch_surcharge"`
	MediumPitchMax       decimal.Decimal `yaml:"medium_pitch_max"`
	MediumPitchSurcharge decimal.Decimal `yaml:"medium_pitch_surcharge"`

	ScreenTypeMultipliers map[string]decimal.Decimal `yaml:"screen_type_multipliers"`
	FlexWideAngle         float64                    `yaml:"flex_wide_angle"`
	FlexWideMultiplier    decimal.Decimal            `yaml:"flex_wide_multiplier"`
	FlexNarrowMultiplier  decimal.Decimal            `yaml:"flex_narrow_multiplier"`

	StandardBumperFraction decimal.Decimal `yaml:"standard_bumper_fraction"`
	SpecialBumperFraction  decimal.Decimal `yaml:"special_bumper_fraction"`

	ProcessorPrice   int64  `yaml:"processor_price"`
	BumperPrice      int64  `yaml:"bumper_price"`
	CablePrice       int64  `yaml:"cable_price"`
	PowerSupplyPrice int64  `yaml:"power_supply_price"`
	ProcessorModel   string `yaml:"processor_model"`
}

// DefaultPricingCatalog returns the catalogue the sales team quotes from.
func DefaultPricingCatalog() PricingCatalog {
	return PricingCatalog{
		OutdoorHighBrightness: 250,
		OutdoorLowBrightness:  180,
		IndoorHighBrightness:  150,
		FallbackPanelPrice:    120,

		OutdoorBrightnessThreshold: 5000,
		IndoorBrightnessThreshold:  2500,

		FinePitchMax:         decimal.RequireFromString("1.9"),
		FinePitchSurcharge:   decimal.RequireFromString("2.2"),
		MediumPitchMax:       decimal.RequireFromString("2.6"),
		MediumPitchSurcharge: decimal.RequireFromString("1.5"),

		ScreenTypeMultipliers: map[string]decimal.Decimal{
			"standard":        decimal.NewFromInt(1),
			"cubic":           decimal.RequireFromString("1.4"),
			"transparent":     decimal.RequireFromString("2.2"),
			"semitransparent": decimal.RequireFromString("1.8"),
		},
		FlexWideAngle:        180,
		FlexWideMultiplier:   decimal.RequireFromString("1.5"),
		FlexNarrowMultiplier: decimal.RequireFromString("1.3"),

		StandardBumperFraction: decimal.RequireFromString("0.5"),
		SpecialBumperFraction:  decimal.RequireFromString("0.7"),

		ProcessorPrice:   1200,
		BumperPrice:      45,
		CablePrice:       12,
		PowerSupplyPrice: 85,
		ProcessorModel:   "VX400",
	}
}

// LoadPricingCatalog overlays the YAML file at path on the default catalogue.
// Keys missing from the file keep their default value. An empty path
// returns the defaults.
func LoadPricingCatalog(path string) (PricingCatalog, error) {
	catalog := DefaultPricingCatalog()
	if path == "" {
		return catalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog, fmt.Errorf("read pricing catalog: %w", err)
	}
	return ParsePricingCatalog(data)
}

// ParsePricingCatalog overlays YAML data on the default catalogue.
func ParsePricingCatalog(data []byte) (PricingCatalog, error) {
	catalog := DefaultPricingCatalog()
	defaults := catalog.ScreenTypeMultipliers
	catalog.ScreenTypeMultipliers = nil
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return DefaultPricingCatalog(), fmt.Errorf("parse pricing catalog: %w", err)
	}
	for screenType, m := range defaults {
		if _, ok := catalog.ScreenTypeMultipliers[screenType]; !ok {
			if catalog.ScreenTypeMultipliers == nil {
				catalog.ScreenTypeMultipliers = map[string]decimal.Decimal{}
			}
			catalog.ScreenTypeMultipliers[screenType] = m
		}
	}
	if err := catalog.Validate(); err != nil {
		return DefaultPricingCatalog(), err
	}
	return catalog, nil
}

// Validate rejects catalogues that would produce negative or empty prices.
func (p PricingCatalog) Validate() error {
	for name, v := range map[string]int64{
		"outdoor_high_brightness": int64(p.OutdoorHighBrightness),
		"outdoor_low_brightness":  int64(p.OutdoorLowBrightness),
		"indoor_high_brightness":  int64(p.IndoorHighBrightness),
		"fallback_panel_price":    int64(p.FallbackPanelPrice),
		"processor_price":         p.ProcessorPrice,
		"bumper_price":            p.BumperPrice,
		"cable_price":             p.CablePrice,
		"power_supply_price":      p.PowerSupplyPrice,
	} {
		if v < 0 {
			return fmt.Errorf("pricing catalog: %s must not be negative", name)
		}
	}
	if !p.FinePitchMax.LessThan(p.MediumPitchMax) {
		return fmt.Errorf("pricing catalog: fine_pitch_max must be below medium_pitch_max")
	}
	for screenType, m := range p.ScreenTypeMultipliers {
		if !m.IsPositive() {
			return fmt.Errorf("pricing catalog: multiplier for %s must be positive", screenType)
		}
	}
	if p.ProcessorModel == "" {
		return fmt.Errorf("pricing catalog: processor_model is required")
	}
	return nil
}
