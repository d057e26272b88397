package product

import "strings"

// Duration is the subscription length inferred from a product identifier.
type Duration string

const (
	DurationWeek    Duration = "week"
	DurationMonth   Duration = "month"
	DurationYear    Duration = "year"
	DurationDay     Duration = "day"
	DurationQuarter Duration = "quarter"
)

// Durations lists every Duration in matching order.
var Durations = []Duration{DurationWeek, DurationMonth, DurationYear, DurationDay, DurationQuarter}

// DurationOf infers the duration from a product identifier.
// Matching is a case-insensitive substring search in Durations order; the first
// match wins and DurationWeek is returned when nothing matches.
func DurationOf(productID string) Duration {
	id := strings.ToLower(productID)
	for _, d := range Durations {
		if strings.Contains(id, string(d)) {
			return d
		}
	}
	return DurationWeek
}

// LongDescription returns the adjective form, e.g. "monthly".
func (d Duration) LongDescription() string {
	switch d {
	case DurationWeek:
		return "weekly"
	case DurationMonth:
		return "monthly"
	case DurationYear:
		return "yearly"
	case DurationDay:
		return "daily"
	case DurationQuarter:
		return "quarterly"
	default:
		return string(d)
	}
}
