package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ledquote/models"
	"ledquote/services"
	"ledquote/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// bindConfiguration reads a configuration posted as JSON or as a form.
func bindConfiguration(c *gin.Context) (models.Configuration, error) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var cfg models.Configuration
		if err := c.ShouldBindJSON(&cfg); err != nil {
			return models.Configuration{}, err
		}
		return cfg, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return models.Configuration{}, err
	}
	return services.ConfigurationFromForm(c.Request.PostForm)
}

// computeStampedQuote binds, prices and stamps the posted configuration.
// It writes the error response itself and returns false on failure.
func computeStampedQuote(c *gin.Context, engine *services.QuoteEngine) (models.Configuration, models.QuoteResult, bool) {
	cfg, err := bindConfiguration(c)
	if err != nil {
		utils.ErrorResponse(c, "Invalid configuration: "+err.Error(), http.StatusBadRequest)
		return cfg, models.QuoteResult{}, false
	}
	quote, err := engine.Compute(cfg)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
		} else {
			log.Error().Err(err).Msg("quote computation failed")
			utils.ErrorResponse(c, "Failed to compute quote", http.StatusInternalServerError)
		}
		return cfg, models.QuoteResult{}, false
	}
	services.Stamp(&quote, time.Now())
	return services.Normalize(cfg), quote, true
}

// ComputeQuote godoc
// @Summary      Compute a video-wall quote
// @Description  Derives panel layout, resolution, hardware and price from a configuration posted as JSON or as a form.
// @Tags         quote
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        configuration  body      models.Configuration  true  "Screen configuration"
// @Success      200            {object}  models.QuoteResponse
// @Failure      400            {object}  utils.Response
// @Router       /api/quote [post]
func ComputeQuote(engine *services.QuoteEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, quote, ok := computeStampedQuote(c, engine)
		if !ok {
			return
		}
		log.Info().
			Str("reference", quote.Reference).
			Str("screen_type", cfg.ScreenType).
			Int("panels", quote.Panels.Total).
			Int64("total", quote.Pricing.TotalPrice).
			Msg("quote computed")
		c.JSON(http.StatusOK, models.QuoteResponse{
			Configuration: cfg,
			Summary:       services.Summary(cfg),
			Quote:         quote,
		})
	}
}

// GetRecommendations godoc
// @Summary      Recommend pitch and brightness
// @Description  Suggests a pixel pitch from the viewing distance and a brightness from environment and sun exposure.
// @Tags         quote
// @Produce      json
// @Param        viewingDistance  query     string  false  "proche, moyen, loin or très loin"
// @Param        environment      query     string  false  "indoor or outdoor"
// @Param        sunExposure      query     string  false  "yes, partial or no"
// @Success      200              {object}  models.Recommendation
// @Router       /api/recommendations [get]
func GetRecommendations() gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec models.Recommendation
		if pitch, ok := services.RecommendPitch(c.Query("viewingDistance")); ok {
			rec.Pitch = pitch
		}
		rec.Brightness = services.RecommendBrightness(c.Query("environment"), c.Query("sunExposure"))
		c.JSON(http.StatusOK, rec)
	}
}
