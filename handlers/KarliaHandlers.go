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

const relayErrorMessage = "Erreur lors de la communication avec KARLIA"

// upstreamStatus maps a CRM failure onto the status returned to the browser.
func upstreamStatus(err error) int {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// KarliaContactsRelay godoc
// @Summary      Relay a contact search to KARLIA
// @Description  Forwards the query to the KARLIA contacts API and returns its JSON body untouched. Empty or too short queries return {"items":[]} without calling KARLIA.
// @Tags         karlia
// @Produce      json
// @Param        q    query     string  false  "Search term"
// @Success      200  {object}  object
// @Failure      502  {object}  models.RelayError
// @Failure      503  {object}  models.RelayError
// @Router       /karlia-contacts [get]
func KarliaContactsRelay(client *services.KarliaClient, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if !client.Searchable(q) {
			c.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", services.EmptyContactList)
			return
		}

		ctx, cancel := utils.GetUpstreamContext(c.Request.Context(), timeout)
		defer cancel()

		body, err := client.SearchRaw(ctx, q)
		if err != nil {
			log.Warn().Err(err).Str("q", q).Msg("KARLIA relay failed")
			status := http.StatusBadGateway
			if errors.Is(err, services.ErrNotConfigured) {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, models.RelayError{
				Error:   relayErrorMessage,
				Code:    services.StatusCode(err),
				Details: err.Error(),
			})
			return
		}
		c.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", body)
	}
}

// SearchContacts godoc
// @Summary      Search KARLIA contacts
// @Description  Returns normalized contacts with the display name, client name and address lines used to pre-fill the quote form.
// @Tags         karlia
// @Produce      json
// @Param        q    query     string  false  "Search term"
// @Success      200  {object}  models.ContactListResponse
// @Failure      502  {object}  utils.Response
// @Failure      503  {object}  utils.Response
// @Router       /api/contacts/search [get]
func SearchContacts(client *services.KarliaClient, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetUpstreamContext(c.Request.Context(), timeout)
		defer cancel()

		contacts, err := client.SearchContacts(ctx, c.Query("q"))
		if err != nil {
			log.Warn().Err(err).Msg("KARLIA contact search failed")
			utils.ErrorResponse(c, services.UserMessage(err), upstreamStatus(err))
			return
		}
		resp := models.ContactListResponse{Items: make([]models.ContactView, 0, len(contacts))}
		for _, contact := range contacts {
			resp.Items = append(resp.Items, models.NewContactView(contact))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetContact godoc
// @Summary      Get a KARLIA contact
// @Tags         karlia
// @Produce      json
// @Param        id   path      string  true  "KARLIA contact ID"
// @Success      200  {object}  models.ContactView
// @Failure      404  {object}  utils.Response
// @Failure      502  {object}  utils.Response
// @Router       /api/contacts/{id} [get]
func GetContact(client *services.KarliaClient, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetUpstreamContext(c.Request.Context(), timeout)
		defer cancel()

		contact, err := client.GetContact(ctx, c.Param("id"))
		if err != nil {
			log.Warn().Err(err).Str("id", c.Param("id")).Msg("KARLIA contact fetch failed")
			utils.ErrorResponse(c, services.UserMessage(err), upstreamStatus(err))
			return
		}
		c.JSON(http.StatusOK, models.NewContactView(contact))
	}
}

// KarliaStatus godoc
// @Summary      KARLIA connectivity status
// @Description  Outcome of the last scheduled connectivity check.
// @Tags         karlia
// @Produce      json
// @Success      200  {object}  models.ProbeStatus
// @Router       /api/karlia/status [get]
func KarliaStatus(probe *services.KarliaProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, probe.Status())
	}
}
