package handlers

import (
	"time"

	"ledquote/services"

	"github.com/gin-gonic/gin"
)

// Dependencies are the services shared by the HTTP handlers.
type Dependencies struct {
	Engine          *services.QuoteEngine
	Karlia          *services.KarliaClient
	Probe           *services.KarliaProbe
	Mailer          QuoteSender
	PublicURL       string
	UpstreamTimeout time.Duration
}

// RegisterRoutes mounts the quote and CRM endpoints on r.
func RegisterRoutes(r gin.IRouter, d Dependencies) {
	r.GET("/karlia-contacts", KarliaContactsRelay(d.Karlia, d.UpstreamTimeout))

	api := r.Group("/api")
	{
		api.POST("/quote", ComputeQuote(d.Engine))
		api.POST("/quote/pdf", GenerateQuotePDF(d.Engine, d.PublicURL))
		api.POST("/quote/xlsx", ExportQuoteXLSX(d.Engine))
		api.POST("/quote/qr", GenerateQuoteQRCodeJPEG(d.Engine, d.PublicURL))
		api.POST("/quote/email", EmailQuote(d.Engine, d.Mailer))
		api.GET("/recommendations", GetRecommendations())

		api.GET("/contacts/search", SearchContacts(d.Karlia, d.UpstreamTimeout))
		api.GET("/contacts/:id", GetContact(d.Karlia, d.UpstreamTimeout))
		api.GET("/karlia/status", KarliaStatus(d.Probe))
	}
}
