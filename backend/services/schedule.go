// ABOUTME: Converts solver schedule snapshots into analytics assignments
// ABOUTME: Flattens dock, labor, and wave records and tracks unparsable ones

package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

// MaxShiftWindow is the longest window a snapshot may carry. Bucket counts
// scale with the window, so longer ones are refused.
const MaxShiftWindow = 24 * time.Hour

// ErrShiftWindowTooLong is returned for snapshots whose window exceeds MaxShiftWindow.
var ErrShiftWindowTooLong = errors.New("shift window too long")

// DockAssignments holds one dock's assignments along with its direction.
type DockAssignments struct {
	DockID      string
	Direction   string
	Assignments []models.Assignment
}

// NormalizedSchedule is a snapshot flattened into engine inputs.
type NormalizedSchedule struct {
	Docks       []DockAssignments
	Labor       []models.Assignment
	Workers     map[string][]models.Assignment
	Coworkers   map[string][]string
	Waves       []models.Assignment
	ShiftWindow *models.ShiftWindow
	Skipped     int
}

// Normalize flattens a snapshot. Zone-less timestamps are read in loc.
// Records with unparsable or inverted times are kept as degenerate
// assignments (so raw counts stay honest) and counted in Skipped.
func Normalize(snap models.ScheduleSnapshot, loc *time.Location) NormalizedSchedule {
	if loc == nil {
		loc = time.UTC
	}
	n := NormalizedSchedule{
		Workers:   make(map[string][]models.Assignment),
		Coworkers: make(map[string][]string),
	}

	n.ShiftWindow = snapshotWindow(snap, loc)

	for _, group := range []struct {
		direction string
		docks     []models.DockGroup
	}{
		{models.DirectionInbound, snap.DockSchedule.InboundDocks},
		{models.DirectionOutbound, snap.DockSchedule.OutboundDocks},
	} {
		for _, dock := range group.docks {
			dockID := strings.TrimSpace(dock.DockID)
			if dockID == "" {
				continue
			}
			da := DockAssignments{DockID: dockID, Direction: group.direction}
			for _, rec := range dock.Assignments {
				a := n.assignment(dockID, rec, loc)
				da.Assignments = append(da.Assignments, a)
			}
			n.Docks = append(n.Docks, da)
		}
	}

	coworkers := make(map[string]map[string]struct{})
	for _, group := range snap.LaborSchedule {
		for _, rec := range group.Tasks {
			resourceID := rec.TaskID
			if resourceID == "" {
				resourceID = group.GroupID
			}
			a := n.assignment(resourceID, rec, loc)
			if rec.TaskType == "" {
				a.Category = models.ParseCategory(group.GroupID)
			}
			n.Labor = append(n.Labor, a)

			workers := uniqueWorkers(rec.AssignedWorkers)
			for _, w := range workers {
				wa := a
				wa.ResourceID = w
				n.Workers[w] = append(n.Workers[w], wa)

				if coworkers[w] == nil {
					coworkers[w] = make(map[string]struct{})
				}
				for _, other := range workers {
					if other != w {
						coworkers[w][other] = struct{}{}
					}
				}
			}
		}
	}
	for w, set := range coworkers {
		list := make([]string, 0, len(set))
		for other := range set {
			list = append(list, other)
		}
		sort.Strings(list)
		n.Coworkers[w] = list
	}

	for _, wave := range snap.WaveSchedule {
		workers := wave.AssignedWorkersCount
		if workers < 0 {
			workers = 0
		}
		interval := models.NewInterval(wave.WaveStart, wave.WaveEnd, loc)
		if !interval.Valid() {
			n.Skipped++
		}
		n.Waves = append(n.Waves, models.Assignment{
			ResourceID:      wave.WaveID,
			Category:        models.CategoryPicking,
			Interval:        interval,
			RequiredWorkers: workers,
			RelatedEntityID: wave.WaveID,
		})
	}

	return n
}

// WorkerIDs returns the workers in the schedule in sorted order.
func (n NormalizedSchedule) WorkerIDs() []string {
	ids := make([]string, 0, len(n.Workers))
	for id := range n.Workers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (n *NormalizedSchedule) assignment(resourceID string, rec models.TaskRecord, loc *time.Location) models.Assignment {
	interval := models.NewInterval(rec.StartTime, rec.EndTime, loc)
	if !interval.Valid() {
		n.Skipped++
	}
	return models.Assignment{
		ResourceID:      resourceID,
		Category:        models.ParseCategory(rec.TaskType),
		Interval:        interval,
		RequiredWorkers: rec.Headcount(),
		RelatedEntityID: rec.EntityID(),
	}
}

// CheckShiftWindow rejects a snapshot whose own window is longer than
// MaxShiftWindow. Missing or unparsable windows pass; Build ignores them.
func CheckShiftWindow(snap models.ScheduleSnapshot, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	interval, ok := rawSnapshotWindow(snap, loc)
	if !ok {
		return nil
	}
	if d := interval.End.Sub(interval.Start); d > MaxShiftWindow {
		return fmt.Errorf("%w: %s exceeds %s", ErrShiftWindowTooLong, d, MaxShiftWindow)
	}
	return nil
}

// snapshotWindow returns the shift window carried by the snapshot, or nil
// when either bound is missing, the window is not positive, or it is longer
// than MaxShiftWindow.
func snapshotWindow(snap models.ScheduleSnapshot, loc *time.Location) *models.ShiftWindow {
	interval, ok := rawSnapshotWindow(snap, loc)
	if !ok || interval.End.Sub(interval.Start) > MaxShiftWindow {
		return nil
	}
	return &models.ShiftWindow{Start: interval.Start, End: interval.End}
}

func rawSnapshotWindow(snap models.ScheduleSnapshot, loc *time.Location) (models.TimeInterval, bool) {
	if snap.ShiftStart == nil || snap.ShiftEnd == nil {
		return models.TimeInterval{}, false
	}
	interval := models.NewInterval(*snap.ShiftStart, *snap.ShiftEnd, loc)
	return interval, interval.Valid()
}

func uniqueWorkers(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
