package money

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders d with thousands separators, keeping up to two decimals
// only when d has a fractional part: 2500000 → "2,500,000", 1234.5 → "1,234.50".
func Format(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}

// KES prefixes Format with the Kenyan shilling code.
func KES(d decimal.Decimal) string {
	return "KES " + Format(d)
}

// Percent renders a rate with exactly one decimal place, e.g. "12.5%", "70.0%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// Number renders a float without trailing zeros: 35 → "35", 12.5 → "12.5".
func Number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
