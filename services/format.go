package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"quotebuilder/quote"
)

// FormatUSD formats a cent amount as a dollar string with thousands
// grouping, e.g. $12,345.67. The result always has exactly 2 decimal places.
func FormatUSD(m quote.Money) string {
	raw := m.String()
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	parts := strings.SplitN(raw, ".", 2)
	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas into an integer string in groups of three
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatQty returns a string representation of a quantity. Whole numbers
// are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty decimal.Decimal) string {
	if qty.IsInteger() {
		return qty.StringFixed(0)
	}
	return qty.StringFixed(2)
}
