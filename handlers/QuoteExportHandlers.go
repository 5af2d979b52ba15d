package handlers

import (
	"fmt"
	"net/http"

	"ledquote/models"
	"ledquote/services"
	"ledquote/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Devis"
	itemsSheet   = "Détail"
)

func quoteSheetStyles(f *excelize.File) (title, header int, err error) {
	title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   14,
			Family: "Arial",
			Color:  "#FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	if err != nil {
		return 0, 0, err
	}
	header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Family: "Arial",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D9E1F2"},
			Pattern: 1,
		},
	})
	return title, header, err
}

// buildQuoteWorkbook writes the summary and the pricing lines on two sheets.
func buildQuoteWorkbook(cfg models.Configuration, quote models.QuoteResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	titleStyle, headerStyle, err := quoteSheetStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	f.SetCellValue(summarySheet, "A1", "Devis écran LED")
	f.MergeCell(summarySheet, "A1", "B1")
	f.SetCellStyle(summarySheet, "A1", "B1", titleStyle)

	summary := [][2]any{
		{"Référence", quote.Reference},
		{"Client", cfg.ClientName},
		{"Résumé", services.Summary(cfg)},
		{"Type d'écran", services.ScreenTypeLabel(cfg.ScreenType)},
		{"Environnement", services.EnvironmentLabel(cfg.Environment)},
		{"Largeur réelle (m)", quote.Dimensions.WidthM},
		{"Hauteur réelle (m)", quote.Dimensions.HeightM},
		{"Disposition", quote.Panels.Configuration},
		{"Dalles au total", quote.Panels.Total},
		{"Pixels par dalle", quote.Resolution.PerPanel},
		{"Pixels par écran", quote.Resolution.PerScreen},
		{"Bumpers", quote.Hardware.Bumpers},
		{"Câbles", quote.Hardware.Cables},
		{"Alimentations", quote.Hardware.PowerSupplies},
		{"Particularités", quote.SpecialScreenInfo},
		{"Total HT (€)", quote.Pricing.TotalPrice},
	}
	for i, row := range summary {
		r := i + 3
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), row[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), row[1])
	}
	f.SetCellStyle(summarySheet, "A3", fmt.Sprintf("A%d", len(summary)+2), headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 25)
	f.SetColWidth(summarySheet, "B", "B", 60)

	if _, err := f.NewSheet(itemsSheet); err != nil {
		f.Close()
		return nil, err
	}
	for col, title := range []string{"Désignation", "Quantité", "Prix unitaire (€)", "Total (€)"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(itemsSheet, cell, title)
	}
	f.SetCellStyle(itemsSheet, "A1", "D1", headerStyle)
	for i, item := range quote.Pricing.Items {
		r := i + 2
		f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", r), item.Description)
		f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", r), item.Quantity)
		f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", r), item.UnitPrice)
		f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", r), item.Total)
	}
	totalRow := len(quote.Pricing.Items) + 2
	f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", totalRow), "Total HT")
	f.SetCellFormula(itemsSheet, fmt.Sprintf("D%d", totalRow), fmt.Sprintf("SUM(D2:D%d)", totalRow-1))
	f.SetCellStyle(itemsSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("D%d", totalRow), headerStyle)
	f.SetColWidth(itemsSheet, "A", "A", 55)
	f.SetColWidth(itemsSheet, "B", "D", 18)

	f.SetActiveSheet(0)
	return f, nil
}

// ExportQuoteXLSX godoc
// @Summary      Export quote as a spreadsheet
// @Description  Computes the posted configuration and returns an Excel workbook with the summary and pricing lines.
// @Tags         quote
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        configuration  body      models.Configuration  true  "Screen configuration"
// @Success      200            {file}    file  "XLSX file"
// @Failure      400            {object}  utils.Response
// @Failure      500            {object}  utils.Response
// @Router       /api/quote/xlsx [post]
func ExportQuoteXLSX(engine *services.QuoteEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, quote, ok := computeStampedQuote(c, engine)
		if !ok {
			return
		}
		f, err := buildQuoteWorkbook(cfg, quote)
		if err != nil {
			log.Error().Err(err).Str("reference", quote.Reference).Msg("workbook generation failed")
			utils.ErrorResponse(c, "Failed to generate spreadsheet", http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing Excel file")
			}
		}()

		utils.AttachmentHeaders(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			fmt.Sprintf("devis_%s.xlsx", quote.Reference))
		c.Header("X-Quote-Reference", quote.Reference)
		if err := f.Write(c.Writer); err != nil {
			log.Error().Err(err).Str("reference", quote.Reference).Msg("workbook output failed")
		}
	}
}
