package components

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var quantityPrinter = message.NewPrinter(language.English)

// FormatQuantity renders a quantity with thousands separators and at most
// three fractional digits, e.g. 1234.5 -> "1,234.5".
func FormatQuantity(v float64) string {
	d := decimal.NewFromFloat(v).Round(3)
	whole := d.Truncate(0)

	s := quantityPrinter.Sprintf("%d", whole.IntPart())
	if d.IsNegative() && whole.IsZero() {
		s = "-" + s
	}

	if frac := d.Sub(whole).Abs(); !frac.IsZero() {
		// frac.String() is "0.xyz"; keep the ".xyz" part.
		s += frac.String()[1:]
	}
	return s
}

// FormatMAE renders the mean absolute error with four decimals, or "0" when
// it is absent or zero.
func FormatMAE(mae *float64) string {
	if mae == nil || *mae == 0 {
		return "0"
	}
	return decimal.NewFromFloat(*mae).StringFixed(4)
}

// formatRaw prints a number the way the service sent it.
func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
