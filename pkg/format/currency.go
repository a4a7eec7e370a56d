// Package format provides display formatting for monetary and percentage
// values. All figures are denominated in a single fixed currency; locale
// handling stays out of the engine.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is prepended to formatted amounts.
const CurrencySymbol = "৳"

// Currency returns an amount with the currency symbol and thousands
// separators (e.g., "-৳1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-" + CurrencySymbol + formatted
	}
	return CurrencySymbol + formatted
}

// NumericCurrency returns an amount with separators but without the currency
// symbol (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// Percent renders a margin or growth percentage with one decimal place.
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Units renders a unit volume without decimals when whole.
func Units(value float64) string {
	d := decimal.NewFromFloat(value)
	if d.IsInteger() {
		return groupThousands(d.StringFixed(0))
	}
	return groupThousands(d.StringFixed(2))
}

func groupThousands(value string) string {
	intPart := value
	decPart := ""
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		intPart = value[:idx]
		decPart = value[idx:]
	}

	if len(intPart) <= 3 {
		return intPart + decPart
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String() + decPart
}
