// ABOUTME: HTTP handlers for the shift analyzer API
// ABOUTME: Shared handler state plus JSON response and query parsing helpers

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/config"
	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/backend/services"
)

// maxUploadBytes bounds POST /api/v1/schedule/analyze bodies.
const maxUploadBytes = 5 << 20

type Handler struct {
	cfg     *config.Config
	source  *services.ScheduleSource
	builder *services.DashboardBuilder
	clock   func() time.Time
}

// NewHandler creates handlers over source. Both arguments may be nil, in
// which case defaults apply and only uploads can be analyzed.
func NewHandler(cfg *config.Config, source *services.ScheduleSource) *Handler {
	if cfg == nil {
		cfg = &config.Config{
			BucketWidthMinutes: models.DefaultBucketWidthMinutes,
			ShiftTimezone:      "UTC",
		}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if source == nil {
		presets, err := services.LoadPresets("")
		if err != nil {
			slog.Error("Embedded presets invalid", "error", err)
			presets = &services.Presets{}
		}
		source = services.NewScheduleSource(presets, nil, nil, nil, 0)
	}

	return &Handler{
		cfg:     cfg,
		source:  source,
		builder: services.NewDashboardBuilder(),
		clock:   time.Now,
	}
}

// writeJSON writes v as JSON with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes an ErrorResponse.
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{Error: message, Code: code})
}

// writeErrorDetails writes an ErrorResponse with details.
func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{Error: message, Details: details, Code: code})
}

// analysisOptions reads the now and bucket_width query parameters shared by
// the dashboard and upload endpoints.
func (h *Handler) analysisOptions(r *http.Request) (services.DashboardOptions, error) {
	opts := services.DashboardOptions{
		Location:           h.cfg.Location,
		BucketWidthMinutes: h.cfg.BucketWidthMinutes,
	}
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("now")); raw != "" {
		now := models.ParseTimestampIn(raw, h.cfg.Location)
		if now.IsZero() {
			return opts, fmt.Errorf("invalid now %q: expected an ISO-8601 timestamp", raw)
		}
		opts.Now = now
	}

	if raw := strings.TrimSpace(q.Get("bucket_width")); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil || width < 1 || width > 1440 {
			return opts, fmt.Errorf("invalid bucket_width %q: expected minutes between 1 and 1440", raw)
		}
		opts.BucketWidthMinutes = width
	}

	return opts, nil
}
