// ABOUTME: Point-in-time resource status classification
// ABOUTME: Derives occupied, reserved, or available from a resource's assignments

package models

import (
	"sort"
	"time"
)

// StatusState names the active variant of a ResourceStatus.
type StatusState string

const (
	StatusOccupied  StatusState = "occupied"
	StatusReserved  StatusState = "reserved"
	StatusAvailable StatusState = "available"
)

// ResourceStatus is a tagged union; build it only through Occupied, Reserved,
// or Available so exactly one variant is populated.
type ResourceStatus struct {
	State     StatusState `json:"state"`
	Current   *Assignment `json:"current_assignment,omitempty"`
	Next      *Assignment `json:"next_assignment,omitempty"`
	NextStart *time.Time  `json:"next_start,omitempty"`
}

// Occupied reports a resource busy with a.
func Occupied(a Assignment) ResourceStatus {
	return ResourceStatus{State: StatusOccupied, Current: &a}
}

// Reserved reports a resource idle now with a as its next commitment.
func Reserved(a Assignment) ResourceStatus {
	start := a.Interval.Start
	return ResourceStatus{State: StatusReserved, Next: &a, NextStart: &start}
}

// Available reports a resource with nothing current or upcoming.
func Available() ResourceStatus {
	return ResourceStatus{State: StatusAvailable}
}

// Classify returns the status of a resource at now. The earliest-starting
// assignment containing now wins; otherwise the earliest one starting after
// now makes the resource reserved. Degenerate assignments are ignored.
func Classify(assignments []Assignment, now time.Time) ResourceStatus {
	sorted := make([]Assignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].Interval.Start, sorted[j].Interval.Start
		if si.IsZero() || sj.IsZero() {
			return !si.IsZero() && sj.IsZero()
		}
		return si.Before(sj)
	})

	var next *Assignment
	for i := range sorted {
		a := sorted[i]
		if !a.Interval.Valid() {
			continue
		}
		if a.Interval.Contains(now) {
			return Occupied(a)
		}
		if a.Interval.Start.After(now) && (next == nil || a.Interval.Start.Before(next.Interval.Start)) {
			next = &sorted[i]
		}
	}

	if next != nil {
		return Reserved(*next)
	}
	return Available()
}
