// ABOUTME: Shared fixtures for handler tests
// ABOUTME: Builds handlers over a stub optimization service, a temp archive, and a cache

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/cache"
	"github.com/markalston/warehouse-shift-analyzer/backend/config"
	"github.com/markalston/warehouse-shift-analyzer/backend/services"
	"github.com/markalston/warehouse-shift-analyzer/backend/store"
)

type testEnv struct {
	handler *Handler
	mux     *http.ServeMux
	calls   *atomic.Int32
}

func fixtureBody(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "schedule.json"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	return data
}

func testConfig() *config.Config {
	return &config.Config{
		BucketWidthMinutes: 60,
		ShiftTimezone:      "UTC",
		Location:           time.UTC,
	}
}

// newTestEnv wires a handler to a stub scheduler (when withScheduler) and
// an archive (when withArchive).
func newTestEnv(t *testing.T, withScheduler, withArchive bool) testEnv {
	t.Helper()
	body := fixtureBody(t)
	env := testEnv{calls: &atomic.Int32{}}

	var scheduler *services.SchedulerClient
	if withScheduler {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env.calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
		}))
		t.Cleanup(server.Close)
		scheduler = services.NewSchedulerClient(server.URL, nil)
	}

	var archive services.SnapshotArchive
	if withArchive {
		st, err := store.Open(filepath.Join(t.TempDir(), "snapshots.db"))
		if err != nil {
			t.Fatalf("store.Open failed: %v", err)
		}
		t.Cleanup(func() { st.Close() })
		archive = st
	}

	c := cache.New[services.FetchedSchedule](time.Minute)
	t.Cleanup(c.Close)

	presets, err := services.LoadPresets("")
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}

	env.handler = NewHandler(testConfig(), services.NewScheduleSource(presets, scheduler, archive, c, time.Second))
	env.mux = http.NewServeMux()
	Register(env.mux, env.handler.Routes(nil))
	return env
}

func (env testEnv) do(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v (body %q)", err, rec.Body.String())
	}
}

func newRequest(method, target, body, contentType string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
