// ABOUTME: Core schedule types shared by the analytics engine
// ABOUTME: Task categories, assignments, and the shift window they are measured against

package models

import (
	"strings"
	"time"
)

// Category classifies a labor task or dock occupation.
type Category string

const (
	CategoryUnloading Category = "Unloading"
	CategoryPutaway   Category = "Putaway"
	CategoryPicking   Category = "Picking"
	CategoryLoading   Category = "Loading"
	CategoryOther     Category = "Other"
)

// Categories returns every category in reporting order.
func Categories() []Category {
	return []Category{
		CategoryUnloading,
		CategoryPutaway,
		CategoryPicking,
		CategoryLoading,
		CategoryOther,
	}
}

// ParseCategory maps a solver task type to a Category. Unknown types,
// including "Idle", fall into CategoryOther.
func ParseCategory(raw string) Category {
	raw = strings.TrimSpace(raw)
	for _, c := range Categories() {
		if strings.EqualFold(raw, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// Assignment is one planned occupation of a resource or one planned labor task.
// Phases of a composite task (a truck's unloading and putaway) share RelatedEntityID.
type Assignment struct {
	ResourceID      string       `json:"resource_id"`
	Category        Category     `json:"category"`
	Interval        TimeInterval `json:"interval"`
	RequiredWorkers int          `json:"required_workers"`
	RelatedEntityID string       `json:"related_entity_id,omitempty"`
}

// workers returns the headcount used for worker-minute math; negatives count as zero.
func (a Assignment) workers() float64 {
	if a.RequiredWorkers < 0 {
		return 0
	}
	return float64(a.RequiredWorkers)
}

// ShiftWindow bounds utilization and bucketing. A nil *ShiftWindow means the
// window is unknown.
type ShiftWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Interval returns the window as a TimeInterval.
func (w ShiftWindow) Interval() TimeInterval {
	return TimeInterval{Start: w.Start, End: w.End}
}

// DurationMinutes returns End-Start in minutes. Malformed windows may be <= 0.
func (w ShiftWindow) DurationMinutes() float64 {
	if w.Start.IsZero() || w.End.IsZero() {
		return 0
	}
	return w.End.Sub(w.Start).Minutes()
}
