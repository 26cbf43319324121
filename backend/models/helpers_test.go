// ABOUTME: Fixture builders for analytics engine tests
// ABOUTME: Builds clock times, intervals, shift windows, and assignments on a fixed day

package models

import (
	"strconv"
	"testing"
	"time"
)

// at returns hh:mm on the fixture day (2024-08-26 UTC).
func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", "2024-08-26 "+hhmm)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", hhmm, err)
	}
	return ts
}

func span(t *testing.T, from, to string) TimeInterval {
	t.Helper()
	return TimeInterval{Start: at(t, from), End: at(t, to)}
}

func shift(t *testing.T, from, to string) *ShiftWindow {
	t.Helper()
	return &ShiftWindow{Start: at(t, from), End: at(t, to)}
}

func dockAssignment(t *testing.T, dock, from, to string) Assignment {
	t.Helper()
	return Assignment{
		ResourceID: dock,
		Category:   CategoryUnloading,
		Interval:   span(t, from, to),
	}
}

func laborTask(t *testing.T, category Category, from, to string, workers int, entity string) Assignment {
	t.Helper()
	return Assignment{
		ResourceID:      "labor",
		Category:        category,
		Interval:        span(t, from, to),
		RequiredWorkers: workers,
		RelatedEntityID: entity,
	}
}

// percent formats an optional utilization percentage for failure messages.
func percent(p *int) string {
	if p == nil {
		return "nil"
	}
	return strconv.Itoa(*p)
}
