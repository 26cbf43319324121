// ABOUTME: HTTP handler for scenario dashboards
// ABOUTME: Resolves a scenario's schedule and analyzes it at the requested instant

package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// Dashboard returns the analyzed schedule for ?scenario= (default preset
// when omitted). ?refresh=true bypasses the cache.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scenarioID := strings.TrimSpace(q.Get("scenario"))
	if scenarioID == "" {
		scenarioID = h.source.Presets().DefaultScenario
	}
	refresh, _ := strconv.ParseBool(q.Get("refresh"))

	opts, err := h.analysisOptions(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fs, err := h.source.Get(r.Context(), scenarioID, refresh)
	if err != nil {
		h.writeSourceError(w, err)
		return
	}

	resp := h.builder.Build(fs.Snapshot, h.scenarioOptions(opts, fs))
	resp.Metadata.Cached = fs.Cached
	h.writeJSON(w, http.StatusOK, resp)
}
