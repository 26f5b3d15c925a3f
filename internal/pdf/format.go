package pdf

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// maxLocationLen bounds free-text fields in fixed-width table cells
const maxLocationLen = 15

// formatCurrency renders money as $ plus a fixed two-decimal string
func formatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// formatQuantity renders gallon/mile quantities with thousands separators
// and two decimals, e.g. 10000 -> "10,000.00"
func formatQuantity(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// formatRate renders a per-gallon tax rate as $0.XXX (three decimals)
func formatRate(rate decimal.Decimal) string {
	return "$" + rate.StringFixed(3)
}

// truncate shortens over-length text with an ellipsis so it stays inside
// its table column. Counts runes, not bytes, so multi-byte vendor and
// location names are never cut mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}
