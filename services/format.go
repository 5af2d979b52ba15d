package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frenchPrinter = message.NewPrinter(language.French)

// FormatPrice renders whole euros with French digit grouping ("12 197 €").
func FormatPrice(euros int64) string {
	return frenchPrinter.Sprintf("%d €", euros)
}

// FormatCount renders a quantity with French digit grouping.
func FormatCount(n int64) string {
	return frenchPrinter.Sprintf("%d", n)
}
