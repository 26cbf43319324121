// ABOUTME: HTTP handler for the snapshot archive
// ABOUTME: Lists archived schedule fetches, newest first

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// ListSnapshots returns archived fetches (?scenario=2c&limit=20).
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	archive := h.source.Archive()
	if archive == nil {
		h.writeError(w, "Snapshot archive is disabled", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	limit := 20
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			h.writeError(w, "limit must be between 1 and 200", http.StatusBadRequest)
			return
		}
		limit = n
	}

	scenarioID := strings.TrimSpace(q.Get("scenario"))
	if scenarioID != "" {
		sc, err := h.source.Presets().Scenario(scenarioID)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusNotFound)
			return
		}
		scenarioID = sc.ID
	}

	infos, err := archive.List(r.Context(), scenarioID, limit)
	if err != nil {
		slog.Error("Failed to list snapshots", "error", err)
		h.writeError(w, "Failed to read snapshot archive", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"snapshots": infos})
}
