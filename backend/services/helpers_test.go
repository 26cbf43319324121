// ABOUTME: Shared fixtures for service tests
// ABOUTME: Loads the sample schedule snapshot and builds fixture times

package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

func loadSnapshot(t *testing.T) models.ScheduleSnapshot {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "schedule.json"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	var snap models.ScheduleSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return snap
}

// fixtureTime returns hh:mm on the fixture day (2024-08-26 UTC).
func fixtureTime(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", "2024-08-26 "+hhmm)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", hhmm, err)
	}
	return ts
}
