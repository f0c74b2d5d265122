// Package utils provides number formatting shared by the CLI and converter.
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats an amount with two decimals and comma thousands
// separators, e.g. 2500000 → "2,500,000.00", -1234.5 → "-1,234.50".
// Values that round to zero are printed without a sign.
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	fixed := rounded.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(fixed, ".")
	formatted := groupThousands(intPart) + "." + decPart

	if rounded.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// FormatFloat is FormatAmount for a float64.
func FormatFloat(amount float64) string {
	return FormatAmount(decimal.NewFromFloat(amount))
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
