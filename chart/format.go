package chart

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatValue formats v with digit grouping and at most two fraction
// digits, as in "12,345.68".
func FormatValue(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}
