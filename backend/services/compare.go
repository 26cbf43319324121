// ABOUTME: Condenses analyzed dashboards into scenario comparison rows
// ABOUTME: Picks out overbooked docks and the busiest time bucket

package services

import "github.com/markalston/warehouse-shift-analyzer/backend/models"

// Summarize reduces an analyzed schedule to its headline metrics.
func Summarize(fs FetchedSchedule, resp models.DashboardResponse) models.ScenarioComparison {
	c := models.ScenarioComparison{
		ScenarioID:                fs.Scenario.ID,
		Label:                     fs.Scenario.Label,
		Shift:                     fs.Scenario.Shift,
		Date:                      fs.Scenario.Date,
		Source:                    fs.Source,
		FetchedAt:                 fs.FetchedAt,
		ShiftWindow:               resp.ShiftWindow,
		DocksUsed:                 resp.DocksUsed,
		OverbookedDocks:           []string{},
		AvgDockUtilizationPercent: resp.Summary.AvgDockUtilizationPercent,
		TotalLaborWorkerMinutes:   resp.Summary.TotalLaborWorkerMinutes,
		PeakBucket:                PeakBucket(resp.HourlyBuckets),
		Workload:                  resp.Workload,
		Waves:                     len(resp.Waves),
		Solver:                    resp.Summary.ScheduleSummary,
	}
	for _, d := range resp.Docks {
		if d.Overbooked {
			c.OverbookedDocks = append(c.OverbookedDocks, d.DockID)
		}
	}
	return c
}

// PeakBucket returns the earliest bucket with the most worker-minutes, or
// nil when no bucket has any work.
func PeakBucket(buckets []models.HourlyBucket) *models.HourlyBucket {
	var peak *models.HourlyBucket
	for i := range buckets {
		if buckets[i].WorkerMinutes <= 0 {
			continue
		}
		if peak == nil || buckets[i].WorkerMinutes > peak.WorkerMinutes {
			b := buckets[i]
			peak = &b
		}
	}
	return peak
}
