// ABOUTME: Time interval arithmetic for schedule analytics
// ABOUTME: Safe timestamp parsing, clipping, and overlap durations in minutes

package models

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order by ParseTimestamp. The solver emits
// zone-less local times ("2024-08-26T08:15:00"), uploads often carry RFC 3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601-like string. Zone-less values are read as UTC.
// Returns the zero time when the input is empty or malformed.
func ParseTimestamp(raw string) time.Time {
	return ParseTimestampIn(raw, time.UTC)
}

// ParseTimestampIn parses like ParseTimestamp but reads zone-less values in loc.
func ParseTimestampIn(raw string, loc *time.Location) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TimeInterval is a half-open span [Start, End). A zero Start or End marks
// an unparsable endpoint. The zero TimeInterval is the empty interval.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval parses both endpoints in loc.
func NewInterval(start, end string, loc *time.Location) TimeInterval {
	return TimeInterval{
		Start: ParseTimestampIn(start, loc),
		End:   ParseTimestampIn(end, loc),
	}
}

// Valid reports whether both endpoints parsed and End is after Start.
func (i TimeInterval) Valid() bool {
	return !i.Start.IsZero() && !i.End.IsZero() && i.End.After(i.Start)
}

// Contains reports whether t falls within [Start, End).
func (i TimeInterval) Contains(t time.Time) bool {
	return i.Valid() && !t.Before(i.Start) && t.Before(i.End)
}

// Clip returns the intersection of interval and window, or the empty
// interval when they do not intersect or either one is degenerate.
func Clip(interval, window TimeInterval) TimeInterval {
	if !interval.Valid() || !window.Valid() {
		return TimeInterval{}
	}

	start := interval.Start
	if window.Start.After(start) {
		start = window.Start
	}
	end := interval.End
	if window.End.Before(end) {
		end = window.End
	}

	if !end.After(start) {
		return TimeInterval{}
	}
	return TimeInterval{Start: start, End: end}
}

// DurationMinutes returns the length of a valid interval in minutes, 0 otherwise.
func DurationMinutes(interval TimeInterval) float64 {
	if !interval.Valid() {
		return 0
	}
	return interval.End.Sub(interval.Start).Minutes()
}

// OverlapMinutes returns the minutes shared by a and b.
func OverlapMinutes(a, b TimeInterval) float64 {
	return DurationMinutes(Clip(a, b))
}
