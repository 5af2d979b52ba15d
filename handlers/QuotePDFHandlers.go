package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ledquote/models"
	"ledquote/services"
	"ledquote/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

// Core PDF fonts are cp1252; French number grouping uses no-break spaces
// that have no glyph there.
var pdfSpaces = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

type quotePDF struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (q *quotePDF) text(s string) string {
	return q.tr(pdfSpaces.Replace(s))
}

// generatePDFHeader creates the title band with reference and date.
func (q *quotePDF) generatePDFHeader(quote models.QuoteResult) {
	pdf := q.pdf
	pdf.SetFont("Arial", "B", 24)
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, 10, 190, 15, "F")
	pdf.SetXY(10, 12)
	pdf.Cell(190, 10, q.text("Devis écran LED"))
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, q.text("Référence: "+quote.Reference))
	generated := time.Now()
	if quote.GeneratedAt != nil {
		generated = *quote.GeneratedAt
	}
	pdf.CellFormat(95, 6, q.text("Date: "+generated.Format("02/01/2006")), "", 0, "R", false, 0, "")
	pdf.Ln(10)
}

// section draws a shaded section title.
func (q *quotePDF) section(title string) {
	pdf := q.pdf
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(10, pdf.GetY(), 190, 10, "F")
	pdf.SetXY(10, pdf.GetY()+2)
	pdf.Cell(190, 8, q.text(title))
	pdf.Ln(10)
}

func (q *quotePDF) row(label, value string) {
	if value == "" {
		return
	}
	pdf := q.pdf
	pdf.SetFont("Arial", "", 11)
	pdf.SetX(10)
	pdf.Cell(55, 7, q.text(label))
	pdf.SetFont("Arial", "B", 11)
	pdf.MultiCell(135, 7, q.text(value), "", "L", false)
}

func (q *quotePDF) generatePDFClientDetails(cfg models.Configuration) {
	q.section("Client")
	q.row("Nom:", cfg.ClientName)
	q.row("Email:", cfg.ClientEmail)
	q.row("Téléphone:", cfg.ClientPhone)
	q.row("Adresse:", cfg.ClientAddress)
	q.row("Usage:", cfg.ScreenPurpose)
	q.pdf.Ln(3)
}

func (q *quotePDF) generatePDFConfiguration(cfg models.Configuration, quote models.QuoteResult) {
	q.section("Configuration")
	q.row("Type d'écran:", services.ScreenTypeLabel(cfg.ScreenType))
	q.row("Environnement:", services.EnvironmentLabel(cfg.Environment))
	q.row("Dimensions demandées:", fmt.Sprintf("%s m × %s m", services.FormatNumber(cfg.Width), services.FormatNumber(cfg.Height)))
	q.row("Dimensions réelles:", fmt.Sprintf("%s m × %s m", quote.Dimensions.ActualWidth, quote.Dimensions.ActualHeight))
	q.row("Nombre d'écrans:", fmt.Sprintf("%d", cfg.NumScreens))
	q.row("Dalles:", fmt.Sprintf("%s mm, %s (%s au total)", cfg.PanelSize, quote.Panels.Configuration, services.FormatCount(int64(quote.Panels.Total))))
	q.row("Pitch:", services.FormatNumber(cfg.PitchPreference)+" mm")
	q.row("Résolution par dalle:", fmt.Sprintf("%d × %d px", quote.Resolution.PerPanelWidth, quote.Resolution.PerPanelHeight))
	q.row("Résolution par écran:", services.FormatCount(quote.Resolution.PerScreen)+" px")
	q.row("Luminosité:", fmt.Sprintf("%d nits", cfg.Brightness))
	q.row("Particularités:", quote.SpecialScreenInfo)
	q.pdf.Ln(3)
}

// generatePDFItemsTable draws the pricing lines and the total.
func (q *quotePDF) generatePDFItemsTable(quote models.QuoteResult) {
	pdf := q.pdf
	q.section("Détail du prix")

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 10)
	pdf.Rect(10, pdf.GetY(), 190, 8, "F")
	pdf.SetX(10)
	pdf.Cell(100, 8, q.text("Désignation"))
	pdf.CellFormat(25, 8, q.text("Quantité"), "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, q.text("Prix unitaire"), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, item := range quote.Pricing.Items {
		pdf.SetX(10)
		pdf.Cell(100, 7, q.text(item.Description))
		pdf.CellFormat(25, 7, q.text(services.FormatCount(int64(item.Quantity))), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, q.text(services.FormatPrice(item.UnitPrice)), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, q.text(services.FormatPrice(item.Total)), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, pdf.GetY(), 190, 10, "F")
	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(10, pdf.GetY()+2)
	pdf.CellFormat(190, 8, q.text("Total estimé HT: "+services.FormatPrice(quote.Pricing.TotalPrice)), "", 0, "R", false, 0, "")
	pdf.Ln(12)
}

// generatePDFQRCode places the quote QR code under the pricing table.
func (q *quotePDF) generatePDFQRCode(content string) error {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	q.pdf.RegisterImageOptionsReader("quote-qr", opts, bytes.NewReader(png))
	y := q.pdf.GetY()
	q.pdf.ImageOptions("quote-qr", 160, y, 35, 35, false, opts, 0, "")
	q.pdf.SetY(y + 37)
	return q.pdf.Error()
}

// generatePDFFooter creates the footer section of the quote PDF.
func (q *quotePDF) generatePDFFooter() {
	pdf := q.pdf
	pdf.SetY(-30)
	footerY := pdf.GetY()
	pdf.SetFont("Arial", "I", 8)

	pdf.SetXY(10, footerY+4)
	pdf.Cell(190, 6, q.text("Généré le: "+time.Now().Format("02/01/2006 15:04")))
	pdf.SetXY(10, footerY+8)
	pdf.Cell(190, 6, fmt.Sprintf("Page: %d", pdf.PageNo()))
	pdf.SetXY(10, footerY+12)
	pdf.Cell(190, 6, q.text("Estimation indicative, ne constitue pas une offre ferme."))
}

// buildQuotePDF lays out the full quote document.
func buildQuotePDF(cfg models.Configuration, quote models.QuoteResult, qrContent string) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	q := &quotePDF{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	q.generatePDFHeader(quote)
	q.generatePDFClientDetails(cfg)
	q.generatePDFConfiguration(cfg, quote)
	q.generatePDFItemsTable(quote)
	if err := q.generatePDFQRCode(qrContent); err != nil {
		return nil, err
	}
	q.generatePDFFooter()
	return pdf, pdf.Error()
}

// GenerateQuotePDF godoc
// @Summary      Generate quote PDF
// @Description  Computes the posted configuration and returns the quote as a PDF document with a QR code.
// @Tags         quote
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      application/pdf
// @Param        configuration  body      models.Configuration  true  "Screen configuration"
// @Success      200            {file}    file  "PDF file"
// @Failure      400            {object}  utils.Response
// @Failure      500            {object}  utils.Response
// @Router       /api/quote/pdf [post]
func GenerateQuotePDF(engine *services.QuoteEngine, publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, quote, ok := computeStampedQuote(c, engine)
		if !ok {
			return
		}
		content, err := quoteQRContent(publicURL, cfg, quote)
		if err != nil {
			utils.ErrorResponse(c, "Failed to encode quote data", http.StatusInternalServerError)
			return
		}
		pdf, err := buildQuotePDF(cfg, quote, content)
		if err != nil {
			log.Error().Err(err).Str("reference", quote.Reference).Msg("PDF generation failed")
			utils.ErrorResponse(c, "Failed to generate PDF", http.StatusInternalServerError)
			return
		}

		utils.AttachmentHeaders(c, "application/pdf", fmt.Sprintf("devis_%s.pdf", quote.Reference))
		c.Header("X-Quote-Reference", quote.Reference)
		if err := pdf.Output(c.Writer); err != nil {
			log.Error().Err(err).Str("reference", quote.Reference).Msg("PDF output failed")
		}
	}
}
