package handlers

import (
	"errors"
	"net/http"
	"time"

	"ledquote/models"
	"ledquote/services"
	"ledquote/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// QuoteSender is satisfied by services.QuoteMailer.
type QuoteSender interface {
	SendQuote(to string, cc []string, cfg models.Configuration, quote models.QuoteResult) error
}

// EmailQuote godoc
// @Summary      Email a quote
// @Description  Computes the configuration and sends the quote summary to the given address.
// @Tags         quote
// @Accept       json
// @Produce      json
// @Param        request  body      models.EmailQuoteRequest  true  "Recipient and configuration"
// @Success      200      {object}  utils.Response
// @Failure      400      {object}  utils.Response
// @Failure      502      {object}  utils.Response
// @Failure      503      {object}  utils.Response
// @Router       /api/quote/email [post]
func EmailQuote(engine *services.QuoteEngine, mailer QuoteSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EmailQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, "Invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}
		quote, err := engine.Compute(req.Configuration)
		if err != nil {
			utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
			return
		}
		services.Stamp(&quote, time.Now())

		if err := mailer.SendQuote(req.To, req.Cc, services.Normalize(req.Configuration), quote); err != nil {
			if errors.Is(err, services.ErrMailDisabled) {
				utils.ErrorResponse(c, "Email sending is not configured", http.StatusServiceUnavailable)
				return
			}
			if errors.Is(err, services.ErrInvalidInput) {
				utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error().Err(err).Str("reference", quote.Reference).Msg("quote email failed")
			utils.ErrorResponse(c, "Failed to send email", http.StatusBadGateway)
			return
		}
		log.Info().Str("reference", quote.Reference).Str("to", req.To).Msg("quote emailed")
		utils.SuccessResponse(c, "Devis envoyé à "+req.To, http.StatusOK)
	}
}
