// ABOUTME: Tests for snapshot normalization
// ABOUTME: Verifies dock, labor, worker, and wave flattening and skipped record counts

package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

func TestNormalize_Docks(t *testing.T) {
	n := Normalize(loadSnapshot(t), time.UTC)

	if len(n.Docks) != 4 {
		t.Fatalf("Expected 4 docks, got %d", len(n.Docks))
	}
	wantDirections := map[string]string{
		"IB-01": models.DirectionInbound,
		"IB-02": models.DirectionInbound,
		"IB-03": models.DirectionInbound,
		"OB-01": models.DirectionOutbound,
	}
	for _, d := range n.Docks {
		if d.Direction != wantDirections[d.DockID] {
			t.Errorf("Dock %s: expected direction %s, got %s", d.DockID, wantDirections[d.DockID], d.Direction)
		}
		for _, a := range d.Assignments {
			if a.ResourceID != d.DockID {
				t.Errorf("Dock %s: assignment keyed to %s", d.DockID, a.ResourceID)
			}
		}
	}

	first := n.Docks[0].Assignments[0]
	if first.RelatedEntityID != "TRK-001" {
		t.Errorf("Expected truck id as entity, got %q", first.RelatedEntityID)
	}
	if !first.Interval.Start.Equal(fixtureTime(t, "08:00")) {
		t.Errorf("Expected start 08:00, got %v", first.Interval.Start)
	}
}

func TestNormalize_Labor(t *testing.T) {
	n := Normalize(loadSnapshot(t), time.UTC)

	if len(n.Labor) != 6 {
		t.Fatalf("Expected 6 labor tasks, got %d", len(n.Labor))
	}
	if n.Skipped != 1 {
		t.Errorf("Expected 1 skipped record, got %d", n.Skipped)
	}

	byID := make(map[string]models.Assignment)
	for _, a := range n.Labor {
		byID[a.ResourceID] = a
	}
	if got := byID["T5"].Category; got != models.CategoryPicking {
		t.Errorf("Expected category from group id, got %s", got)
	}
	if got := byID["T5"].RequiredWorkers; got != 1 {
		t.Errorf("Expected headcount from assigned workers, got %d", got)
	}
	if got := byID["T3"].RequiredWorkers; got != 1 {
		t.Errorf("Expected explicit required_workers, got %d", got)
	}
	if byID["T9"].Interval.Valid() {
		t.Error("Expected unparsable task to carry a degenerate interval")
	}
}

func TestNormalize_Workers(t *testing.T) {
	n := Normalize(loadSnapshot(t), time.UTC)

	wantIDs := []string{"W1", "W2", "W3", "W4", "W5"}
	if got := n.WorkerIDs(); !reflect.DeepEqual(got, wantIDs) {
		t.Errorf("Expected workers %v, got %v", wantIDs, got)
	}
	if len(n.Workers["W1"]) != 2 {
		t.Errorf("Expected W1 on 2 tasks, got %d", len(n.Workers["W1"]))
	}
	for _, a := range n.Workers["W3"] {
		if a.ResourceID != "W3" {
			t.Errorf("Expected worker copies keyed to W3, got %s", a.ResourceID)
		}
	}

	if got := n.Coworkers["W1"]; !reflect.DeepEqual(got, []string{"W2", "W3"}) {
		t.Errorf("Expected W1 coworkers [W2 W3], got %v", got)
	}
	if got := n.Coworkers["W5"]; len(got) != 0 {
		t.Errorf("Expected W5 to work alone, got %v", got)
	}
}

func TestNormalize_WavesAndWindow(t *testing.T) {
	n := Normalize(loadSnapshot(t), time.UTC)

	if len(n.Waves) != 2 {
		t.Fatalf("Expected 2 waves, got %d", len(n.Waves))
	}
	if n.Waves[0].Category != models.CategoryPicking || n.Waves[0].RequiredWorkers != 3 {
		t.Errorf("Unexpected wave assignment: %+v", n.Waves[0])
	}

	if n.ShiftWindow == nil {
		t.Fatal("Expected shift window from snapshot")
	}
	if n.ShiftWindow.DurationMinutes() != 480 {
		t.Errorf("Expected 480 minute window, got %v", n.ShiftWindow.DurationMinutes())
	}
}

func TestNormalize_MissingWindow(t *testing.T) {
	snap := loadSnapshot(t)
	snap.ShiftEnd = nil

	if n := Normalize(snap, time.UTC); n.ShiftWindow != nil {
		t.Errorf("Expected nil window when shift_end is absent, got %+v", n.ShiftWindow)
	}

	bad := "2024-08-26T07:00:00"
	snap.ShiftEnd = &bad
	if n := Normalize(snap, time.UTC); n.ShiftWindow != nil {
		t.Errorf("Expected nil window when end precedes start, got %+v", n.ShiftWindow)
	}
}

func TestCheckShiftWindow(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		start   *string
		end     *string
		wantErr bool
	}{
		{"eight hour shift", str("2024-08-26T23:00:00"), str("2024-08-27T07:00:00"), false},
		{"exactly one day", str("2024-08-26T07:00:00"), str("2024-08-27T07:00:00"), false},
		{"one minute over", str("2024-08-26T07:00:00"), str("2024-08-27T07:01:00"), true},
		{"ten years", str("2000-01-01T00:00:00"), str("2010-01-01T00:00:00"), true},
		{"missing end", str("2024-08-26T07:00:00"), nil, false},
		{"unparsable", str("yesterday"), str("today"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := models.ScheduleSnapshot{ShiftStart: tt.start, ShiftEnd: tt.end}
			err := CheckShiftWindow(snap, time.UTC)
			if tt.wantErr && !errors.Is(err, ErrShiftWindowTooLong) {
				t.Errorf("Expected ErrShiftWindowTooLong, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestNormalize_IgnoresOverlongWindow(t *testing.T) {
	snap := loadSnapshot(t)
	start, end := "2000-01-01T00:00:00", "2010-01-01T00:00:00"
	snap.ShiftStart, snap.ShiftEnd = &start, &end

	if n := Normalize(snap, time.UTC); n.ShiftWindow != nil {
		t.Errorf("Expected overlong window to be ignored, got %+v", n.ShiftWindow)
	}

	resp := NewDashboardBuilder().Build(snap, DashboardOptions{BucketWidthMinutes: 1})
	if len(resp.HourlyBuckets) != 0 {
		t.Errorf("Expected no buckets, got %d", len(resp.HourlyBuckets))
	}
}

func TestNormalize_EmptySnapshot(t *testing.T) {
	n := Normalize(models.ScheduleSnapshot{}, nil)

	if len(n.Docks) != 0 || len(n.Labor) != 0 || len(n.Waves) != 0 {
		t.Errorf("Expected empty schedule, got %+v", n)
	}
	if n.Workers == nil || n.Coworkers == nil {
		t.Error("Expected initialized maps")
	}
}
