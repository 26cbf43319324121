// ABOUTME: Side-by-side comparison models for predefined scenarios
// ABOUTME: Headline dock, labor, and solver metrics per scenario

package models

import "time"

// ScenarioComparison condenses one scenario's dashboard into headline numbers.
type ScenarioComparison struct {
	ScenarioID                string             `json:"scenario_id"`
	Label                     string             `json:"label"`
	Shift                     string             `json:"shift"`
	Date                      string             `json:"date"`
	Source                    string             `json:"source"`
	FetchedAt                 time.Time          `json:"fetched_at"`
	ShiftWindow               *ShiftWindow       `json:"shift_window"`
	DocksUsed                 DocksUsed          `json:"docks_used"`
	OverbookedDocks           []string           `json:"overbooked_docks"`
	AvgDockUtilizationPercent *int               `json:"avg_dock_utilization_percent"`
	TotalLaborWorkerMinutes   float64            `json:"total_labor_worker_minutes"`
	PeakBucket                *HourlyBucket      `json:"peak_bucket"`
	Workload                  []TaskTypeWorkload `json:"workload"`
	Waves                     int                `json:"waves"`
	Solver                    ScheduleSummary    `json:"solver_summary"`
}

// ComparisonResponse lists comparisons in request order.
type ComparisonResponse struct {
	Scenarios   []ScenarioComparison `json:"scenarios"`
	EvaluatedAt time.Time            `json:"evaluated_at"`
}
