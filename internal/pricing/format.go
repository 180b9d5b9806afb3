package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var plPrinter = message.NewPrinter(language.Polish)

// FormatPLN renders an amount the way the calculator shows it, e.g. "960,00 zł".
func FormatPLN(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return plPrinter.Sprintf("%v zł", number.Decimal(f, number.Scale(2)))
}

// FormatRate renders a per-km rate with two decimals, e.g. "4,80".
func FormatRate(rate float64) string {
	return plPrinter.Sprintf("%v", number.Decimal(rate, number.Scale(2)))
}
