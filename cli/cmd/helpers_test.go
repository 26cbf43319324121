// ABOUTME: Shared fixtures for command tests
// ABOUTME: Points the CLI at a stub backend and captures JSON output

package cmd

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

var fixturePath = filepath.Join("testdata", "schedule.json")

// withBackend points the CLI at a test server for the duration of the test.
func withBackend(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })
}

func withJSONOutput(t *testing.T) {
	t.Helper()
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
}

func localAnalysis() analysisOptions {
	return analysisOptions{now: "2024-08-26T09:15:00Z", timezone: "UTC", bucketWidth: 60}
}
