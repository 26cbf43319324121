// ABOUTME: Builds the dashboard view of one schedule snapshot
// ABOUTME: Runs status, utilization, workload, and bucket analytics over docks, workers, and waves

package services

import (
	"math"
	"sort"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

// DashboardOptions controls how a snapshot is analyzed.
type DashboardOptions struct {
	// Now is the evaluation instant for statuses; zero means the current time.
	Now      time.Time
	Location *time.Location
	// ShiftWindow overrides the window carried by the snapshot.
	ShiftWindow *models.ShiftWindow
	// FallbackWindow is used when the snapshot carries no usable window.
	FallbackWindow     *models.ShiftWindow
	BucketWidthMinutes int
	Scenario           string
	Source             string
	FetchedAt          *time.Time
}

// DashboardBuilder turns schedule snapshots into dashboard responses.
type DashboardBuilder struct {
	clock func() time.Time
}

// NewDashboardBuilder creates a builder using the wall clock.
func NewDashboardBuilder() *DashboardBuilder {
	return &DashboardBuilder{clock: time.Now}
}

// Build analyzes snap. It never fails: missing windows propagate as nil
// percentages and empty buckets, bad records are counted in metadata.
func (b *DashboardBuilder) Build(snap models.ScheduleSnapshot, opts DashboardOptions) models.DashboardResponse {
	n := Normalize(snap, opts.Location)

	window := n.ShiftWindow
	if opts.ShiftWindow != nil {
		window = opts.ShiftWindow
	} else if window == nil {
		window = opts.FallbackWindow
	}

	width := opts.BucketWidthMinutes
	if width <= 0 {
		width = models.DefaultBucketWidthMinutes
	}

	timestamp := b.clock().UTC()
	now := opts.Now
	if now.IsZero() {
		now = timestamp
	}

	source := opts.Source
	if source == "" {
		source = models.SourceLive
	}

	workload := models.AggregateByCategory(n.Labor)
	docks, used := dockSummaries(n.Docks, window, now)

	resp := models.DashboardResponse{
		ShiftWindow:        window,
		BucketWidthMinutes: width,
		Docks:              docks,
		DocksUsed:          used,
		Workers:            workerSummaries(n, window, now),
		Workload:           models.WorkloadList(workload),
		HourlyBuckets:      models.Bucketize(n.Labor, window, width),
		Waves:              waveSummaries(snap.WaveSchedule, n.Waves, now),
		Summary: models.DashboardSummary{
			ScheduleSummary:           snap.Summary,
			AvgDockUtilizationPercent: averagePercent(docks),
		},
		Metadata: models.DashboardMetadata{
			Timestamp:      timestamp,
			EvaluatedAt:    now,
			Scenario:       opts.Scenario,
			Source:         source,
			FetchedAt:      opts.FetchedAt,
			SkippedRecords: n.Skipped,
		},
	}
	for _, w := range workload {
		resp.Summary.TotalLaborWorkerMinutes += w.TotalWorkerMinutes
	}

	return resp
}

func dockSummaries(docks []DockAssignments, window *models.ShiftWindow, now time.Time) ([]models.DockSummary, models.DocksUsed) {
	out := make([]models.DockSummary, 0, len(docks))
	var used models.DocksUsed

	for _, d := range docks {
		util := models.CalculateUtilization(d.DockID, d.Assignments, window)
		out = append(out, models.DockSummary{
			DockID:          d.DockID,
			Direction:       d.Direction,
			Status:          models.Classify(d.Assignments, now),
			Utilization:     util,
			AssignmentCount: len(d.Assignments),
			Overbooked:      util.UtilizationPercent != nil && *util.UtilizationPercent > 100,
		})

		if len(d.Assignments) == 0 {
			continue
		}
		if d.Direction == models.DirectionOutbound {
			used.Outbound++
		} else {
			used.Inbound++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Direction != out[j].Direction {
			return out[i].Direction == models.DirectionInbound
		}
		return out[i].DockID < out[j].DockID
	})
	return out, used
}

func workerSummaries(n NormalizedSchedule, window *models.ShiftWindow, now time.Time) []models.WorkerSummary {
	ids := n.WorkerIDs()
	out := make([]models.WorkerSummary, 0, len(ids))
	for _, id := range ids {
		assignments := n.Workers[id]
		coworkers := n.Coworkers[id]
		if coworkers == nil {
			coworkers = []string{}
		}
		out = append(out, models.WorkerSummary{
			WorkerID:    id,
			Status:      models.Classify(assignments, now),
			Utilization: models.CalculateUtilization(id, assignments, window),
			TaskCount:   len(assignments),
			Coworkers:   coworkers,
		})
	}
	return out
}

func waveSummaries(raw []models.Wave, waves []models.Assignment, now time.Time) []models.WaveSummary {
	out := make([]models.WaveSummary, 0, len(waves))
	for i, a := range waves {
		w := raw[i]
		ws := models.WaveSummary{
			WaveID:             w.WaveID,
			Tasks:              w.Tasks,
			AssignedWorkers:    a.RequiredWorkers,
			AssociatedTruckIDs: w.AssociatedTruckIDs,
			Status:             WaveStatus(a.Interval, now),
		}
		if ws.AssociatedTruckIDs == nil {
			ws.AssociatedTruckIDs = []string{}
		}
		if !a.Interval.Start.IsZero() {
			start := a.Interval.Start
			ws.Start = &start
		}
		if !a.Interval.End.IsZero() {
			end := a.Interval.End
			ws.End = &end
		}
		out = append(out, ws)
	}
	return out
}

// WaveStatus places now relative to a wave's interval.
func WaveStatus(interval models.TimeInterval, now time.Time) string {
	switch {
	case !interval.Valid():
		return models.WaveUnknown
	case now.Before(interval.Start):
		return models.WaveScheduled
	case now.Before(interval.End):
		return models.WaveInProgress
	default:
		return models.WaveCompleted
	}
}

// averagePercent is the mean dock utilization, or nil when no dock has one.
func averagePercent(docks []models.DockSummary) *int {
	var sum, count int
	for _, d := range docks {
		if d.Utilization.UtilizationPercent == nil {
			continue
		}
		sum += *d.Utilization.UtilizationPercent
		count++
	}
	if count == 0 {
		return nil
	}
	avg := int(math.Round(float64(sum) / float64(count)))
	return &avg
}
