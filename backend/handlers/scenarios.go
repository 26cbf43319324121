// ABOUTME: HTTP handlers for predefined scenarios
// ABOUTME: Lists presets with their shift windows and compares scenarios side by side

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/backend/services"
)

// maxCompareScenarios bounds one comparison request.
const maxCompareScenarios = 6

// ScenarioInfo is a preset scenario with its derived shift window.
type ScenarioInfo struct {
	services.Scenario
	ShiftWindow *models.ShiftWindow `json:"shift_window"`
}

// ScenariosResponse lists the shift table and scenarios.
type ScenariosResponse struct {
	DefaultScenario string                     `json:"default_scenario"`
	Shifts          []services.ShiftDefinition `json:"shifts"`
	Scenarios       []ScenarioInfo             `json:"scenarios"`
}

// ListScenarios returns the predefined scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	presets := h.source.Presets()
	resp := ScenariosResponse{
		DefaultScenario: presets.DefaultScenario,
		Shifts:          presets.Shifts,
		Scenarios:       make([]ScenarioInfo, 0, len(presets.Scenarios)),
	}
	for _, sc := range presets.Scenarios {
		window, err := presets.Window(sc.Shift, sc.Date, h.cfg.Location)
		if err != nil {
			slog.Warn("Scenario has no shift window", "scenario", sc.ID, "error", err)
		}
		resp.Scenarios = append(resp.Scenarios, ScenarioInfo{Scenario: sc, ShiftWindow: window})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// CompareScenarios analyzes several scenarios at once (?ids=1a,2c).
func (h *Handler) CompareScenarios(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		h.writeError(w, "ids query parameter is required (e.g. ids=1a,2c)", http.StatusBadRequest)
		return
	}
	if len(ids) > maxCompareScenarios {
		h.writeError(w, "Too many scenarios to compare", http.StatusBadRequest)
		return
	}

	opts, err := h.analysisOptions(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fetched, err := h.source.GetMany(r.Context(), ids)
	if err != nil {
		h.writeSourceError(w, err)
		return
	}

	resp := models.ComparisonResponse{
		Scenarios:   make([]models.ScenarioComparison, 0, len(fetched)),
		EvaluatedAt: h.clock().UTC(),
	}
	for _, fs := range fetched {
		dash := h.builder.Build(fs.Snapshot, h.scenarioOptions(opts, fs))
		resp.Scenarios = append(resp.Scenarios, services.Summarize(fs, dash))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// scenarioOptions fills in the scenario-specific parts of opts.
func (h *Handler) scenarioOptions(opts services.DashboardOptions, fs services.FetchedSchedule) services.DashboardOptions {
	opts.Scenario = fs.Scenario.ID
	opts.Source = fs.Source
	fetchedAt := fs.FetchedAt
	opts.FetchedAt = &fetchedAt

	window, err := h.source.Presets().Window(fs.Scenario.Shift, fs.Scenario.Date, h.cfg.Location)
	if err == nil {
		opts.FallbackWindow = window
	}
	return opts
}

// writeSourceError maps schedule lookup failures to status codes.
func (h *Handler) writeSourceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownScenario):
		h.writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrScheduleUnavailable):
		slog.Error("Schedule unavailable", "error", err)
		h.writeErrorDetails(w, "Schedule unavailable", err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("Schedule lookup failed", "error", err)
		h.writeError(w, "Failed to retrieve schedule", http.StatusBadGateway)
	}
}
