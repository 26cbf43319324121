// ABOUTME: HTTP client for the schedule optimization service
// ABOUTME: Requests shift schedules with request coalescing and concurrent multi-scenario fetches

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

// ErrSchedulerNotConfigured is returned when no optimization service URL is set.
var ErrSchedulerNotConfigured = errors.New("scheduler API URL not configured")

// maxConcurrentFetches bounds FetchMany's parallelism; the solver is CPU heavy.
const maxConcurrentFetches = 4

const defaultFetchTimeout = 30 * time.Second

// ScheduleParams selects a solver input set. Zero values defer to the
// service's own defaults.
type ScheduleParams struct {
	Prefix            string `json:"prefix,omitempty"`
	Date              string `json:"date,omitempty"`
	Shift             string `json:"shift,omitempty"`
	DocksInbound      int    `json:"docks_inbound,omitempty"`
	DocksOutbound     int    `json:"docks_outbound,omitempty"`
	MaxWorkersPerWave int    `json:"max_workers_per_wave,omitempty"`
}

// ParamsForScenario builds request parameters for a preset scenario.
func ParamsForScenario(sc Scenario) ScheduleParams {
	return ScheduleParams{Prefix: sc.Prefix, Date: sc.Date, Shift: sc.Shift}
}

// SchedulerClient talks to the optimization service.
// Concurrent identical requests share one upstream call.
type SchedulerClient struct {
	baseURL    string
	httpClient *http.Client
	sfGroup    singleflight.Group
}

// NewSchedulerClient creates a client for baseURL.
// If httpClient is nil, a default client with 30s timeout is used.
func NewSchedulerClient(baseURL string, httpClient *http.Client) *SchedulerClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultFetchTimeout,
		}
	}
	return &SchedulerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Configured reports whether the client has somewhere to send requests.
func (c *SchedulerClient) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Fetch requests one schedule.
func (c *SchedulerClient) Fetch(ctx context.Context, params ScheduleParams) (*models.ScheduleSnapshot, error) {
	if !c.Configured() {
		return nil, ErrSchedulerNotConfigured
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule request: %w", err)
	}

	ch := c.sfGroup.DoChan(string(body), func() (interface{}, error) {
		// The flight outlives any one waiter; the client timeout bounds it
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout())
		defer cancel()
		return c.fetch(flightCtx, body)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		slog.Debug("Shared in-flight schedule request", "prefix", params.Prefix, "date", params.Date, "shift", params.Shift)
	}

	// Waiters on one flight share the snapshot; it is read-only
	return res.Val.(*models.ScheduleSnapshot), nil
}

func (c *SchedulerClient) flightTimeout() time.Duration {
	if c.httpClient.Timeout > 0 {
		return c.httpClient.Timeout
	}
	return defaultFetchTimeout
}

// FetchMany requests several schedules concurrently. Results are in the
// order of params; the first failure cancels the rest.
func (c *SchedulerClient) FetchMany(ctx context.Context, params []ScheduleParams) ([]*models.ScheduleSnapshot, error) {
	results := make([]*models.ScheduleSnapshot, len(params))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, p := range params {
		g.Go(func() error {
			snap, err := c.Fetch(ctx, p)
			if err != nil {
				return fmt.Errorf("schedule %s %s %s: %w", p.Prefix, p.Date, p.Shift, err)
			}
			results[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *SchedulerClient) fetch(ctx context.Context, body []byte) (*models.ScheduleSnapshot, error) {
	url := c.baseURL + "/api/v1/schedule"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule from %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("scheduler returned status %d: %s", resp.StatusCode, errorDetail(data))
	}

	var snap models.ScheduleSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse schedule response: %w", err)
	}

	slog.Debug("Fetched schedule", "duration_ms", time.Since(start).Milliseconds(), "bytes", len(data))
	return &snap, nil
}

// errorDetail pulls the service's "detail" message out of an error body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var msg string
		if json.Unmarshal(payload.Detail, &msg) == nil {
			return msg
		}
		// Validation errors arrive as a list of objects
		return string(payload.Detail)
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		return "no response body"
	}
	return text
}
