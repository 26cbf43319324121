// ABOUTME: HTTP handler for service health
// ABOUTME: Reports optimization service, archive, and cache status

package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health returns API health including scheduler, archive, and cache status.
// An unreachable archive is reported but does not fail the check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":        "ok",
		"scheduler_api": "not_configured",
		"archive":       "disabled",
		"cache_status": map[string]int{
			"schedules_cached": h.source.CacheEntries(),
		},
		"timezone":  h.cfg.Location.String(),
		"scenarios": len(h.source.Presets().Scenarios),
	}

	if h.source.SchedulerConfigured() {
		resp["scheduler_api"] = "configured"
	}

	if archive := h.source.Archive(); archive != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := archive.Ping(ctx); err != nil {
			resp["archive"] = "error"
			resp["status"] = "degraded"
		} else {
			resp["archive"] = "ok"
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}
