// ABOUTME: Per-resource utilization against a shift window
// ABOUTME: Sums clipped busy minutes without de-duplicating overlaps

package models

import "math"

// UtilizationResult summarizes how much of the shift a resource is committed.
// UtilizationPercent is nil when the shift window is unknown or non-positive.
type UtilizationResult struct {
	ResourceID              string  `json:"resource_id"`
	BusyMinutes             float64 `json:"busy_minutes"`
	UtilizationPercent      *int    `json:"utilization_percent"`
	ContributingAssignments int     `json:"contributing_assignments"`
}

// CalculateUtilization computes busy minutes for resourceID's assignments
// clipped to window. Overlapping assignments on the same resource each
// count in full, so the percentage can exceed 100 for double-booked docks.
func CalculateUtilization(resourceID string, assignments []Assignment, window *ShiftWindow) UtilizationResult {
	result := UtilizationResult{ResourceID: resourceID}
	if window == nil {
		return result
	}

	bounds := window.Interval()
	for _, a := range assignments {
		if a.ResourceID != resourceID {
			continue
		}
		if minutes := OverlapMinutes(a.Interval, bounds); minutes > 0 {
			result.BusyMinutes += minutes
			result.ContributingAssignments++
		}
	}

	if shiftMinutes := window.DurationMinutes(); shiftMinutes > 0 {
		pct := int(math.Round(100 * result.BusyMinutes / shiftMinutes))
		result.UtilizationPercent = &pct
	}

	return result
}
