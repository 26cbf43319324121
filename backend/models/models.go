// ABOUTME: Wire models for schedule snapshots returned by the optimization service
// ABOUTME: JSON-serializable structures matching the solver's schedule response

package models

import (
	"encoding/json"
	"strings"
)

// ScheduleSnapshot is one schedule as returned by the optimization service.
type ScheduleSnapshot struct {
	ScheduleRequest json.RawMessage `json:"schedule_request,omitempty"`
	ShiftStart      *string         `json:"shift_start"`
	ShiftEnd        *string         `json:"shift_end"`
	DockSchedule    DockSchedule    `json:"dock_schedule"`
	LaborSchedule   []LaborGroup    `json:"labor_schedule"`
	WaveSchedule    []Wave          `json:"wave_schedule"`
	Summary         ScheduleSummary `json:"summary"`
}

// DockSchedule groups dock assignments by direction.
type DockSchedule struct {
	InboundDocks  []DockGroup `json:"inbound_docks"`
	OutboundDocks []DockGroup `json:"outbound_docks"`
}

// DockGroup is the list of assignments planned for one dock.
type DockGroup struct {
	DockID      string       `json:"dock_id"`
	Assignments []TaskRecord `json:"assignments"`
}

// LaborGroup is a list of labor tasks keyed by a category or crew identifier.
type LaborGroup struct {
	GroupID string       `json:"group_id"`
	Tasks   []TaskRecord `json:"tasks"`
}

// TaskRecord is a single planned task as emitted by the solver.
type TaskRecord struct {
	TaskID          string   `json:"task_id,omitempty"`
	RelatedEntityID string   `json:"related_entity_id,omitempty"`
	TruckID         *string  `json:"truck_id,omitempty"`
	TaskType        string   `json:"task_type"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	RequiredWorkers *int     `json:"required_workers,omitempty"`
	AssignedWorkers []string `json:"assigned_workers,omitempty"`
	AssignedDock    *int     `json:"assigned_dock,omitempty"`
}

// EntityID returns the composite-task identifier, falling back to the truck.
func (r TaskRecord) EntityID() string {
	if id := strings.TrimSpace(r.RelatedEntityID); id != "" {
		return id
	}
	if r.TruckID != nil {
		return strings.TrimSpace(*r.TruckID)
	}
	return ""
}

// Headcount returns required_workers when present, else the number of
// assigned workers. Negative values are clamped to 0.
func (r TaskRecord) Headcount() int {
	n := len(r.AssignedWorkers)
	if r.RequiredWorkers != nil {
		n = *r.RequiredWorkers
	}
	if n < 0 {
		return 0
	}
	return n
}

// Wave is a pick wave planned by the solver.
type Wave struct {
	WaveID               string   `json:"wave_id"`
	WaveStart            string   `json:"wave_start"`
	WaveEnd              string   `json:"wave_end"`
	Tasks                int      `json:"tasks"`
	AssignedWorkersCount int      `json:"assigned_workers_count"`
	AssociatedTruckIDs   []string `json:"associated_truck_ids"`
}

// ScheduleSummary carries the solver's own headline numbers.
type ScheduleSummary struct {
	AvgWorkerUtilizationPercent *float64 `json:"avg_worker_utilization_percent,omitempty"`
	TotalWaitTimeMinutes        *float64 `json:"total_wait_time_minutes,omitempty"`
	AvgTruckWaitTimeMinutes     *float64 `json:"avg_truck_wait_time_minutes,omitempty"`
	EfficiencyScore             *float64 `json:"efficiency_score,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
