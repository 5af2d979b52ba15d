package services

import (
	"fmt"
	"strings"

	"ledquote/models"
)

var cubeArrangementLabels = map[string]string{
	"grid":    "grille régulière",
	"pyramid": "pyramide",
	"random":  "arrangement irrégulier",
}

var flexMountingLabels = map[string]string{
	"wall":      "mur courbe",
	"column":    "colonne/pilier",
	"suspended": "structure suspendue",
}

const (
	defaultCubeArrangementLabel = "configuration personnalisée"
	defaultFlexMountingLabel    = "structure autoportante"
)

func label(table map[string]string, key, fallback string) string {
	if l, ok := table[key]; ok {
		return l
	}
	return fallback
}

// SpecialScreenInfo describes the non-standard geometry of cfg.
// It is empty for standard screens.
func SpecialScreenInfo(cfg models.Configuration) string {
	switch cfg.ScreenType {
	case models.ScreenTypeCubic:
		return fmt.Sprintf("Structure cubique avec %s faces visibles par cube. Disposition en %s.",
			FormatNumber(cfg.CubeFaces),
			label(cubeArrangementLabels, cfg.CubeArrangement, defaultCubeArrangementLabel))
	case models.ScreenTypeFlex:
		return fmt.Sprintf("Écran flexible avec un rayon de %sm et un angle de %s°. Montage sur %s.",
			FormatNumber(cfg.FlexCurveRadius),
			FormatNumber(cfg.FlexAngle),
			label(flexMountingLabels, cfg.FlexMounting, defaultFlexMountingLabel))
	case models.ScreenTypeTransparent:
		info := fmt.Sprintf("Écran transparent avec %s%% de transparence. Application: %s.",
			FormatNumber(cfg.TransparencyLevel), cfg.TransparentApplication)
		if cfg.RearProjection {
			info += " Compatible avec l'arrière-projection."
		}
		return info
	case models.ScreenTypeSemiTransparent:
		return fmt.Sprintf("Écran semi-transparent avec %s%% de transparence. Densité de pixels: %s.",
			FormatNumber(cfg.SemiTransparencyLevel), strings.TrimSpace(cfg.PixelDensity))
	}
	return ""
}
