// ABOUTME: HTTP client for the shift analyzer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

// Client is the API client for the shift analyzer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status       string      `json:"status"`
	SchedulerAPI string      `json:"scheduler_api"`
	Archive      string      `json:"archive"`
	CacheStatus  CacheStatus `json:"cache_status"`
	Timezone     string      `json:"timezone"`
	Scenarios    int         `json:"scenarios"`
}

// CacheStatus represents cache state in health response
type CacheStatus struct {
	SchedulesCached int `json:"schedules_cached"`
}

// Scenario is a predefined solver run with its shift window.
type Scenario struct {
	ID          string              `json:"id"`
	Label       string              `json:"label"`
	Prefix      string              `json:"prefix"`
	Date        string              `json:"date"`
	Shift       string              `json:"shift"`
	Notes       string              `json:"notes,omitempty"`
	ShiftWindow *models.ShiftWindow `json:"shift_window"`
}

// ScenarioList represents the /api/v1/scenarios endpoint response
type ScenarioList struct {
	DefaultScenario string `json:"default_scenario"`
	Shifts          []struct {
		Code  string `json:"code"`
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"shifts"`
	Scenarios []Scenario `json:"scenarios"`
}

// DashboardQuery selects and parameterizes a scenario dashboard.
type DashboardQuery struct {
	Scenario    string // empty = server default
	Now         string // ISO-8601; empty = server clock
	BucketWidth int    // minutes; 0 = server default
	Refresh     bool

	// Shift and Date override an uploaded document's window
	Shift string
	Date  string
}

func (q DashboardQuery) values() url.Values {
	v := url.Values{}
	if q.Scenario != "" {
		v.Set("scenario", q.Scenario)
	}
	if q.Now != "" {
		v.Set("now", q.Now)
	}
	if q.BucketWidth > 0 {
		v.Set("bucket_width", strconv.Itoa(q.BucketWidth))
	}
	if q.Refresh {
		v.Set("refresh", "true")
	}
	if q.Shift != "" {
		v.Set("shift", q.Shift)
	}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	return v
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Scenarios calls GET /api/v1/scenarios
func (c *Client) Scenarios(ctx context.Context) (*ScenarioList, error) {
	var list ScenarioList
	if err := c.get(ctx, "/api/v1/scenarios", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Dashboard calls GET /api/v1/dashboard
func (c *Client) Dashboard(ctx context.Context, q DashboardQuery) (*models.DashboardResponse, error) {
	var dash models.DashboardResponse
	if err := c.get(ctx, "/api/v1/dashboard", q.values(), &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// Compare calls GET /api/v1/scenarios/compare
func (c *Client) Compare(ctx context.Context, ids []string, q DashboardQuery) (*models.ComparisonResponse, error) {
	v := q.values()
	v.Set("ids", strings.Join(ids, ","))

	var comparison models.ComparisonResponse
	if err := c.get(ctx, "/api/v1/scenarios/compare", v, &comparison); err != nil {
		return nil, err
	}
	return &comparison, nil
}

// Analyze calls POST /api/v1/schedule/analyze with a schedule document
func (c *Client) Analyze(ctx context.Context, document []byte, q DashboardQuery) (*models.DashboardResponse, error) {
	path := "/api/v1/schedule/analyze"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var dash models.DashboardResponse
	if err := c.do(ctx, req, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s (%s)", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
