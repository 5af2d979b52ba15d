package services

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"ledquote/models"
)

// ConfigurationFromForm coerces the flat key/value set posted by the
// configurator form. Numbers that do not parse are rejected instead of
// becoming NaN.
func ConfigurationFromForm(values url.Values) (models.Configuration, error) {
	f := formReader{values: values}
	cfg := models.Configuration{
		ScreenType:             f.str("screenType"),
		PanelSize:              f.str("panelSize"),
		Environment:            f.str("environment"),
		Redundancy:             f.boolean("redundancy"),
		CubeArrangement:        f.str("cubeArrangement"),
		FlexMounting:           f.str("flexMounting"),
		TransparentApplication: f.str("transparentApplication"),
		RearProjection:         f.boolean("rearProjection"),
		PixelDensity:           f.str("pixelDensity"),
		ClientName:             f.str("clientName"),
		ClientEmail:            f.str("clientEmail"),
		ClientPhone:            f.str("clientPhone"),
		ClientAddress:          f.str("clientAddress"),
		ScreenPurpose:          f.str("screenPurpose"),
		ViewingDistance:        f.str("viewingDistance"),
		SunExposure:            f.str("sunExposure"),
	}
	cfg.Width = f.number("width")
	cfg.Height = f.number("height")
	cfg.NumScreens = int(f.number("numScreens"))
	cfg.PitchPreference = f.number("pitchPreference")
	if cfg.PitchPreference == 0 {
		cfg.PitchPreference = f.number("pitch")
	}
	cfg.Brightness = int(f.number("brightness"))
	cfg.CubeFaces = f.number("cubeFaces")
	cfg.FlexAngle = f.number("flexAngle")
	cfg.FlexCurveRadius = f.number("flexCurveRadius")
	cfg.TransparencyLevel = f.number("transparencyLevel")
	cfg.SemiTransparencyLevel = f.number("semiTransparencyLevel")

	if f.err != nil {
		return models.Configuration{}, f.err
	}
	return cfg, nil
}

type formReader struct {
	values url.Values
	err    error
}

func (f *formReader) str(key string) string {
	return strings.TrimSpace(f.values.Get(key))
}

func (f *formReader) boolean(key string) bool {
	switch strings.ToLower(f.str(key)) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

// number returns 0 for absent keys and records the first parse failure.
func (f *formReader) number(key string) float64 {
	raw := strings.ReplaceAll(f.str(key), ",", ".")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		if f.err == nil {
			f.err = invalidInput("%s must be a number, got %q", key, f.str(key))
		}
		return 0
	}
	return v
}
