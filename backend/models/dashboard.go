// ABOUTME: Dashboard response models built from an analyzed schedule snapshot
// ABOUTME: Dock, worker, wave, workload, and bucket summaries for the frontend

package models

import "time"

// Dock directions
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Wave statuses
const (
	WaveScheduled  = "scheduled"
	WaveInProgress = "in_progress"
	WaveCompleted  = "completed"
	WaveUnknown    = "unknown"
)

// Snapshot sources
const (
	SourceLive    = "live"
	SourceArchive = "archive"
	SourceUpload  = "upload"
)

// DockSummary is the per-dock view of the shift.
type DockSummary struct {
	DockID          string            `json:"dock_id"`
	Direction       string            `json:"direction"`
	Status          ResourceStatus    `json:"status"`
	Utilization     UtilizationResult `json:"utilization"`
	AssignmentCount int               `json:"assignment_count"`
	Overbooked      bool              `json:"overbooked"`
}

// DocksUsed counts docks with at least one assignment.
type DocksUsed struct {
	Inbound  int `json:"inbound"`
	Outbound int `json:"outbound"`
}

// WorkerSummary is the per-worker view of the shift.
type WorkerSummary struct {
	WorkerID    string            `json:"worker_id"`
	Status      ResourceStatus    `json:"status"`
	Utilization UtilizationResult `json:"utilization"`
	TaskCount   int               `json:"task_count"`
	Coworkers   []string          `json:"coworkers"`
}

// WaveSummary is a pick wave with its status at evaluation time.
type WaveSummary struct {
	WaveID             string     `json:"wave_id"`
	Start              *time.Time `json:"start"`
	End                *time.Time `json:"end"`
	Tasks              int        `json:"tasks"`
	AssignedWorkers    int        `json:"assigned_workers"`
	AssociatedTruckIDs []string   `json:"associated_truck_ids"`
	Status             string     `json:"status"`
}

// DashboardSummary combines solver headline numbers with computed ones.
type DashboardSummary struct {
	ScheduleSummary
	AvgDockUtilizationPercent *int    `json:"avg_dock_utilization_percent"`
	TotalLaborWorkerMinutes   float64 `json:"total_labor_worker_minutes"`
}

// DashboardMetadata describes where the analyzed snapshot came from.
type DashboardMetadata struct {
	Timestamp      time.Time  `json:"timestamp"`
	EvaluatedAt    time.Time  `json:"evaluated_at"`
	Scenario       string     `json:"scenario,omitempty"`
	Source         string     `json:"source"`
	FetchedAt      *time.Time `json:"fetched_at,omitempty"`
	Cached         bool       `json:"cached"`
	SkippedRecords int        `json:"skipped_records"`
}

// DashboardResponse is the unified API response for one analyzed schedule.
type DashboardResponse struct {
	ShiftWindow        *ShiftWindow       `json:"shift_window"`
	BucketWidthMinutes int                `json:"bucket_width_minutes"`
	Docks              []DockSummary      `json:"docks"`
	DocksUsed          DocksUsed          `json:"docks_used"`
	Workers            []WorkerSummary    `json:"workers"`
	Workload           []TaskTypeWorkload `json:"workload"`
	HourlyBuckets      []HourlyBucket     `json:"hourly_buckets"`
	Waves              []WaveSummary      `json:"waves"`
	Summary            DashboardSummary   `json:"summary"`
	Metadata           DashboardMetadata  `json:"metadata"`
}
