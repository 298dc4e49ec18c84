package domain

import (
	"fmt"
	"math"
	"strconv"
)

// NotAvailable is the formatted value for absent runtimes and amounts.
const NotAvailable = "N/A"

// FormatRuntime renders a runtime in minutes as "2h 5m", dropping the hour
// part when it is zero. Non-positive input yields NotAvailable.
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatCurrency renders a dollar amount in compact form: one-decimal
// billions with a trailing ".0" stripped, whole millions, whole thousands,
// then the literal amount. Halves round away from zero ($2.5M -> "$3M").
// Non-positive input yields NotAvailable.
func FormatCurrency(amount int64) string {
	switch {
	case amount <= 0:
		return NotAvailable
	case amount >= 1_000_000_000:
		billions := math.Round(float64(amount)/100_000_000) / 10
		return "$" + strconv.FormatFloat(billions, 'f', -1, 64) + "B"
	case amount >= 1_000_000:
		return fmt.Sprintf("$%dM", int64(math.Round(float64(amount)/1_000_000)))
	case amount >= 1_000:
		return fmt.Sprintf("$%dK", int64(math.Round(float64(amount)/1_000)))
	default:
		return fmt.Sprintf("$%d", amount)
	}
}

// FirstNonEmpty returns the first non-empty candidate. It is the named
// replacement for ad-hoc fallback chains over optional provider fields;
// callers pass the placeholder as the final candidate when one applies.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
