// Package format renders amounts for hover text, bar labels and tables.
package format

import (
	"math"

	"github.com/iwvelando/cost-of-living/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	p := message.NewPrinter(language.English)
	if amount < 0 {
		return p.Sprintf("-$%.2f", math.Abs(amount))
	}
	return p.Sprintf("$%.2f", amount)
}

// HoverText returns the currency string for amount, or the no-data sentinel
// when amount is missing.
func HoverText(amount float64) string {
	if math.IsNaN(amount) {
		return constants.NoDataText
	}
	return Currency(amount)
}
