// Package money formats decimal amounts as US dollar strings for
// human-readable output (activity descriptions, emails, PDFs).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders an amount as "$1,234.56". The value is rounded half-up to
// two decimal places first so formatted output always matches stored totals.
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("$%.2f", f)
}
