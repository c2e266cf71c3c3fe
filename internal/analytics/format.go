package analytics

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Background colours for growth cells.
const (
	ColorGrowthPositive = "#006602"
	ColorGrowthNegative = "#cd0000"
	ColorGrowthFlat     = "#F0F0F0"
)

// NotAvailable is shown for a missing growth percentage.
const NotAvailable = "n/a"

// A Printer is not safe for concurrent use, so each call gets its own.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// FormatCurrency renders v as "$1,234.56".
func FormatCurrency(v float64) string {
	return "$" + printer().Sprintf("%.2f", v)
}

// FormatPercent renders v as "1,234.56%".
func FormatPercent(v float64) string {
	return printer().Sprintf("%.2f%%", v)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int64) string {
	return printer().Sprintf("%d", n)
}

// FormatGrowth renders a nullable growth percentage.
func FormatGrowth(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatPercent(*v)
}

// MonthLabel renders a month as "January 2024".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// GrowthColor picks the cell colour for a growth percentage.
func GrowthColor(v float64) string {
	switch {
	case v > 0:
		return ColorGrowthPositive
	case v < 0:
		return ColorGrowthNegative
	default:
		return ColorGrowthFlat
	}
}
