package services

import (
	"strings"

	"ledquote/models"
)

// Pitch recommended for each viewing distance offered by the form.
var pitchByViewingDistance = map[string]float64{
	"proche":    1.9,
	"moyen":     2.6,
	"loin":      3.9,
	"très loin": 5.9,
}

// RecommendPitch returns the pitch suggested for a viewing distance and
// false when the distance is not one the form offers.
func RecommendPitch(viewingDistance string) (float64, bool) {
	p, ok := pitchByViewingDistance[strings.ToLower(strings.TrimSpace(viewingDistance))]
	return p, ok
}

// RecommendBrightness suggests a brightness in nits from the installation
// environment and sun exposure ("yes", "partial", anything else = none).
func RecommendBrightness(environment, sunExposure string) int {
	sun := strings.ToLower(strings.TrimSpace(sunExposure))
	if strings.EqualFold(strings.TrimSpace(environment), models.EnvironmentOutdoor) {
		switch sun {
		case "yes":
			return 7500
		case "partial":
			return 5000
		}
		return 2500
	}
	switch sun {
	case "yes":
		return 2500
	case "partial":
		return 1000
	}
	return 800
}
