// ABOUTME: Tests for terminal report rendering
// ABOUTME: Checks widgets and that reports carry the key figures

package render

import (
	"strings"
	"testing"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/cli/internal/client"
)

func intPtr(v int) *int { return &v }

func at(hh, mm int) time.Time {
	return time.Date(2024, 8, 26, hh, mm, 0, 0, time.UTC)
}

func TestUtilizationBar(t *testing.T) {
	tests := []struct {
		name    string
		percent *int
		filled  int
		label   string
	}{
		{"half", intPtr(50), 10, "50%"},
		{"empty", intPtr(0), 0, "0%"},
		{"overbooked caps the bar", intPtr(125), 20, "125%"},
		{"unknown", nil, 0, "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := UtilizationBar(tt.percent, 20)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("Expected %d filled cells, got %d in %q", tt.filled, got, bar)
			}
			if !strings.Contains(bar, tt.label) {
				t.Errorf("Expected label %q in %q", tt.label, bar)
			}
		})
	}
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{0, 60, 120})
	runes := []rune(line)

	var blocks []rune
	for _, r := range runes {
		if r >= '▁' && r <= '█' {
			blocks = append(blocks, r)
		}
	}
	if len(blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d in %q", len(blocks), line)
	}
	if blocks[0] != '▁' || blocks[2] != '█' {
		t.Errorf("Expected idle bucket lowest and peak highest, got %q", string(blocks))
	}
	if Sparkline(nil) != "" {
		t.Error("Expected empty sparkline for no values")
	}
}

func TestSparkline_AllIdle(t *testing.T) {
	if line := Sparkline([]float64{0, 0}); strings.Count(line, "▁") != 2 {
		t.Errorf("Expected idle blocks, got %q", line)
	}
}

func TestDashboard(t *testing.T) {
	start, end := at(8, 0), at(16, 0)
	next := at(9, 30)
	d := &models.DashboardResponse{
		ShiftWindow:        &models.ShiftWindow{Start: start, End: end},
		BucketWidthMinutes: 60,
		Docks: []models.DockSummary{
			{
				DockID:      "IB-01",
				Direction:   models.DirectionInbound,
				Status:      models.ResourceStatus{State: models.StatusReserved, NextStart: &next},
				Utilization: models.UtilizationResult{UtilizationPercent: intPtr(25)},
			},
			{
				DockID:      "IB-02",
				Direction:   models.DirectionInbound,
				Status:      models.ResourceStatus{State: models.StatusOccupied},
				Utilization: models.UtilizationResult{UtilizationPercent: intPtr(125)},
				Overbooked:  true,
			},
		},
		Workload: []models.TaskTypeWorkload{{Category: "Unloading", TaskCount: 2, TotalWorkerMinutes: 240}},
		HourlyBuckets: []models.HourlyBucket{
			{BucketStart: at(8, 0), BucketEnd: at(9, 0), WorkerMinutes: 120, ActiveTaskCount: 1},
			{BucketStart: at(9, 0), BucketEnd: at(10, 0), WorkerMinutes: 60, ActiveTaskCount: 1},
		},
		Summary:  models.DashboardSummary{TotalLaborWorkerMinutes: 240, AvgDockUtilizationPercent: intPtr(75)},
		Metadata: models.DashboardMetadata{Scenario: "1a", Source: models.SourceLive, Cached: true, SkippedRecords: 1},
	}

	out := Dashboard(d)

	for _, want := range []string{
		"scenario 1a",
		"08:00-16:00",
		"(cached)",
		"1 record(s)",
		"IB-02",
		"OVERBOOKED",
		"09:30",
		"Avg utilization: 75%",
		"Total labor: 240 worker-minutes",
		"peak 120 at 08:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestDashboard_UnknownWindow(t *testing.T) {
	out := Dashboard(&models.DashboardResponse{Metadata: models.DashboardMetadata{Source: models.SourceUpload}})

	if !strings.Contains(out, "Window: unknown") {
		t.Errorf("Expected unknown window, got\n%s", out)
	}
	if !strings.Contains(out, "Avg utilization: n/a") {
		t.Errorf("Expected n/a average, got\n%s", out)
	}
}

func TestComparison(t *testing.T) {
	out := Comparison(&models.ComparisonResponse{Scenarios: []models.ScenarioComparison{
		{
			ScenarioID:              "1a",
			Shift:                   "A",
			Source:                  models.SourceLive,
			OverbookedDocks:         []string{"IB-02"},
			TotalLaborWorkerMinutes: 495,
			PeakBucket:              &models.HourlyBucket{BucketStart: at(8, 0), WorkerMinutes: 120},
			Waves:                   2,
		},
		{ScenarioID: "2c", Shift: "C", Source: models.SourceArchive},
	}})

	for _, want := range []string{"1a", "2c", "IB-02", "495", "08:00 (120)", "archive"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestScenarios_MarksDefault(t *testing.T) {
	out := Scenarios(&client.ScenarioList{
		DefaultScenario: "2c",
		Scenarios: []client.Scenario{
			{ID: "1a", Shift: "A"},
			{ID: "2c", Shift: "C", ShiftWindow: &models.ShiftWindow{Start: at(23, 0), End: at(23, 0).Add(8 * time.Hour)}},
		},
	})

	if !strings.Contains(out, "2c *") {
		t.Errorf("Expected default marker on 2c\n%s", out)
	}
	if !strings.Contains(out, "23:00-07:00") {
		t.Errorf("Expected overnight window\n%s", out)
	}
}
