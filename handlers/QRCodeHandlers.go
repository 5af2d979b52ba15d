package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"

	"ledquote/models"
	"ledquote/services"
	"ledquote/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// quoteQRPayload is encoded in the QR code when no public URL is configured.
type quoteQRPayload struct {
	Reference  string `json:"ref"`
	ScreenType string `json:"type"`
	Width      string `json:"w"`
	Height     string `json:"h"`
	Panels     int    `json:"panels"`
	Total      int64  `json:"total"`
}

// quoteQRContent is the quote's public link, or a compact JSON summary.
func quoteQRContent(publicURL string, cfg models.Configuration, quote models.QuoteResult) (string, error) {
	if publicURL != "" {
		return publicURL + "/quotes/" + quote.Reference, nil
	}
	data, err := json.Marshal(quoteQRPayload{
		Reference:  quote.Reference,
		ScreenType: cfg.ScreenType,
		Width:      quote.Dimensions.ActualWidth,
		Height:     quote.Dimensions.ActualHeight,
		Panels:     quote.Panels.Total,
		Total:      quote.Pricing.TotalPrice,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// addLabel draws regular text with its baseline at (x, y).
func addLabel(img *image.RGBA, x, y int, label string) {
	drawText(img, x, y, label, inconsolata.Regular8x16, color.RGBA{0, 0, 0, 255})
}

// addLabelBold draws a darker bold label.
func addLabelBold(img *image.RGBA, x, y int, label string) {
	drawText(img, x, y, label, inconsolata.Bold8x16, color.RGBA{30, 30, 30, 255})
}

func drawText(img *image.RGBA, x, y int, label string, face font.Face, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// renderQuoteLabel draws the QR code with the quote key figures beneath it.
func renderQuoteLabel(content string, cfg models.Configuration, quote models.QuoteResult) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrImg := qr.Image(512)

	qrSize := qrImg.Bounds().Dy()
	padding := 30
	lineHeight := 28
	rows := [][2]string{
		{"Reference:", truncate(quote.Reference, 40)},
		{"Client:", truncate(cfg.ClientName, 40)},
		{"Ecran:", truncate(services.ScreenTypeLabel(cfg.ScreenType)+" "+quote.Dimensions.ActualWidth+" x "+quote.Dimensions.ActualHeight+" m", 40)},
		{"Dalles:", services.FormatNumber(float64(quote.Panels.Total))},
		{"Total:", services.FormatNumber(float64(quote.Pricing.TotalPrice)) + " EUR HT"},
	}
	textAreaHeight := len(rows)*lineHeight + padding
	totalHeight := qrSize + padding + textAreaHeight

	combined := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
	draw.Draw(combined, combined.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(combined, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

	separatorY := qrSize + padding/2
	for x := 0; x < qrSize; x++ {
		combined.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
	}

	startY := qrSize + padding + lineHeight
	xPos := 20
	for i, row := range rows {
		addLabelBold(combined, xPos, startY+i*lineHeight, row[0])
		addLabel(combined, xPos+120, startY+i*lineHeight, row[1])
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, combined, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateQuoteQRCodeJPEG godoc
// @Summary      Generate a quote QR label as JPEG
// @Description  Computes the posted configuration and returns a QR code pointing at the quote, with its key figures printed below.
// @Tags         quote
// @Accept       json
// @Produce      image/jpeg
// @Param        configuration  body      models.Configuration  true  "Screen configuration"
// @Success      200            {file}    file  "JPEG image"
// @Failure      400            {object}  utils.Response
// @Router       /api/quote/qr [post]
func GenerateQuoteQRCodeJPEG(engine *services.QuoteEngine, publicURL string) gin.HandlerFunc {
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
		img, err := renderQuoteLabel(content, cfg, quote)
		if err != nil {
			log.Error().Err(err).Str("reference", quote.Reference).Msg("QR label generation failed")
			utils.ErrorResponse(c, "QR code generation failed", http.StatusInternalServerError)
			return
		}
		c.Header("X-Quote-Reference", quote.Reference)
		c.Data(http.StatusOK, "image/jpeg", img)
	}
}
