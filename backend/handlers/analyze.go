// ABOUTME: HTTP handler for analyzing uploaded schedules
// ABOUTME: Accepts a solver schedule document and returns its dashboard

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/backend/services"
)

// AnalyzeSchedule analyzes a schedule posted as the request body.
// ?shift=B&date=2024-08-26 overrides the window carried by the document.
func (h *Handler) AnalyzeSchedule(w http.ResponseWriter, r *http.Request) {
	opts, err := h.analysisOptions(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts.Source = models.SourceUpload

	q := r.URL.Query()
	shift, date := strings.TrimSpace(q.Get("shift")), strings.TrimSpace(q.Get("date"))
	if shift != "" || date != "" {
		if shift == "" || date == "" {
			h.writeError(w, "shift and date must be given together", http.StatusBadRequest)
			return
		}
		window, err := h.source.Presets().Window(shift, date, h.cfg.Location)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.ShiftWindow = window
	}

	var snap models.ScheduleSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.writeErrorDetails(w, "Invalid schedule document", err.Error(), http.StatusBadRequest)
		return
	}
	if err := services.CheckShiftWindow(snap, h.cfg.Location); err != nil {
		h.writeErrorDetails(w, "Invalid schedule document", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, h.builder.Build(snap, opts))
}
