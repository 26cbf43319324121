// ABOUTME: Tests for the shift analyzer API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{
			Status:       "ok",
			SchedulerAPI: "configured",
			Archive:      "ok",
			CacheStatus:  CacheStatus{SchedulesCached: 2},
		})
	}))
	defer server.Close()

	c := New(server.URL + "/")
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SchedulerAPI != "configured" {
		t.Errorf("expected scheduler configured, got %s", resp.SchedulerAPI)
	}
	if resp.CacheStatus.SchedulesCached != 2 {
		t.Errorf("expected 2 cached schedules, got %d", resp.CacheStatus.SchedulesCached)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestHealth_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Health(ctx)
	if err == nil || err.Error() != "request canceled" {
		t.Errorf("expected request canceled, got %v", err)
	}
}

func TestDashboard_QueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/dashboard" {
			t.Errorf("expected path /api/v1/dashboard, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("scenario") != "2c" || q.Get("now") != "2024-08-27T23:30:00Z" || q.Get("bucket_width") != "30" || q.Get("refresh") != "true" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.DashboardResponse{
			BucketWidthMinutes: 30,
			Metadata:           models.DashboardMetadata{Scenario: "2c", Source: models.SourceLive},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	dash, err := c.Dashboard(context.Background(), DashboardQuery{
		Scenario:    "2c",
		Now:         "2024-08-27T23:30:00Z",
		BucketWidth: 30,
		Refresh:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.Metadata.Scenario != "2c" || dash.BucketWidthMinutes != 30 {
		t.Errorf("unexpected dashboard %+v", dash.Metadata)
	}
}

func TestDashboard_EmptyQueryOmitsParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query, got %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.DashboardResponse{})
	}))
	defer server.Close()

	if _, err := New(server.URL).Dashboard(context.Background(), DashboardQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDashboard_ErrorDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Schedule unavailable", Details: "no archived copy", Code: 503})
	}))
	defer server.Close()

	_, err := New(server.URL).Dashboard(context.Background(), DashboardQuery{Scenario: "1a"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if want := "backend error: Schedule unavailable (no archived copy)"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestCompare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "1a,2c" {
			t.Errorf("expected ids 1a,2c, got %s", got)
		}
		json.NewEncoder(w).Encode(models.ComparisonResponse{
			Scenarios: []models.ScenarioComparison{{ScenarioID: "1a"}, {ScenarioID: "2c"}},
		})
	}))
	defer server.Close()

	resp, err := New(server.URL).Compare(context.Background(), []string{"1a", "2c"}, DashboardQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Scenarios) != 2 {
		t.Errorf("expected 2 scenarios, got %d", len(resp.Scenarios))
	}
}

func TestAnalyze_PostsDocument(t *testing.T) {
	document := []byte(`{"dock_schedule": {}}`)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != string(document) {
			t.Errorf("expected document to be forwarded, got %s", body)
		}
		if r.URL.Query().Get("bucket_width") != "15" {
			t.Errorf("expected bucket_width 15, got %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.DashboardResponse{
			Metadata: models.DashboardMetadata{Source: models.SourceUpload},
		})
	}))
	defer server.Close()

	dash, err := New(server.URL).Analyze(context.Background(), document, DashboardQuery{BucketWidth: 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.Metadata.Source != models.SourceUpload {
		t.Errorf("expected upload source, got %s", dash.Metadata.Source)
	}
}

func TestScenarios(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"default_scenario":"2c","shifts":[{"code":"A","start":"07:00","end":"15:00"}],"scenarios":[{"id":"1a","shift":"A","date":"2024-08-26"}]}`))
	}))
	defer server.Close()

	list, err := New(server.URL).Scenarios(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.DefaultScenario != "2c" || len(list.Scenarios) != 1 || list.Shifts[0].Code != "A" {
		t.Errorf("unexpected scenario list %+v", list)
	}
}

func TestInvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := New(server.URL).Scenarios(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid response") {
		t.Errorf("expected invalid response error, got %v", err)
	}
}
