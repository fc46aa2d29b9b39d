// Package presenter shapes session and reference data into the field sets the
// setup pages render. Everything here is pure: no I/O, no persistence.
package presenter

import (
	"fmt"
	"time"
)

// Option is a selectable entry in a radio or checkbox group.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormatLongDate renders a date the way the service displays them, e.g. "1 April 2024".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), t.Month().String(), t.Year())
}

// Pluralize returns singular when n is 1, plural otherwise.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Dedupe removes duplicate strings, keeping first-seen order.
func Dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// FormatAbstractionPeriod renders a day/month range, e.g. "From 1 April to 31 October".
func FormatAbstractionPeriod(startDay, startMonth, endDay, endMonth int) string {
	return fmt.Sprintf("From %d %s to %d %s",
		startDay, time.Month(startMonth).String(),
		endDay, time.Month(endMonth).String())
}
