// Package format renders dollar amounts and percentages for deal reports.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders a dollar amount with thousands separators, e.g. "-$1,234.56".
func Currency(amount float64) string {
	if amount <= -0.005 {
		return "-$" + NumericCurrency(math.Abs(amount))
	}
	return "$" + NumericCurrency(amount)
}

// NumericCurrency is Currency without the dollar sign.
func NumericCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0.00"
	}
	// Avoid "-0.00" for amounts that round to zero.
	if math.Abs(amount) < 0.005 {
		amount = 0
	}
	return printer.Sprintf("%.2f", amount)
}

// Percent renders a percentage with two decimals, e.g. "12.50%".
func Percent(value float64) string {
	return NumericCurrency(value) + "%"
}
