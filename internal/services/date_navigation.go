package services

import "time"

// DateLayout is the wire format for diary dates in URLs and forms.
const DateLayout = "2006-01-02"

// NormalizeDate truncates t to midnight UTC so that calendar dates compare
// and store consistently regardless of the zone a request arrived in.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AdjacentDates computes the previous and next navigable dates around
// selected within the inclusive [min, max] window. A nil result means the
// neighbour falls outside the window and navigation stops there.
func AdjacentDates(selected, min, max time.Time) (prev, next *time.Time) {
	selected = NormalizeDate(selected)
	min, max = NormalizeDate(min), NormalizeDate(max)

	if p := selected.AddDate(0, 0, -1); !p.Before(min) {
		prev = &p
	}
	if n := selected.AddDate(0, 0, 1); !n.After(max) {
		next = &n
	}
	return prev, next
}
