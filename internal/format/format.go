// Package format renders dashboard numbers for display.
package format

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var grouped = message.NewPrinter(language.English)

// Compact shortens large counts: 2.30M above a million, 1.5K above a
// thousand, the plain integer below that.
func Compact(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// Percent renders a percentage with exactly two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Grouped renders an integer with thousands separators.
func Grouped(n int64) string {
	return grouped.Sprintf("%d", n)
}
