// Package staleness maps a pull request's idle time to a textual badge.
package staleness

import "time"

// Threshold pairs a badge label with the smallest elapsed-day count that
// earns it.
type Threshold struct {
	Label   string
	MinDays int
}

// DefaultThresholds returns the standard badge ladder, sorted descending by
// day count as Badge requires.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Label: "Abandoned", MinDays: 30},
		{Label: "Stale", MinDays: 14},
		{Label: "Aging", MinDays: 7},
	}
}

// Badge returns the staleness badge for a reference date, or "" when the
// elapsed time is below every threshold (a fresh PR). Elapsed days are the
// floor of the duration since reference. Precondition: thresholds are sorted
// descending by MinDays; an empty list always yields "".
func Badge(reference time.Time, thresholds []Threshold, now time.Time) string {
	elapsed := int(now.Sub(reference).Hours() / 24)
	for _, t := range thresholds {
		if elapsed >= t.MinDays {
			return t.Label
		}
	}
	return ""
}
