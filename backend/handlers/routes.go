// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods, handlers, and per-route guards

package handlers

import (
	"net/http"

	"github.com/markalston/warehouse-shift-analyzer/backend/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	// Middleware wraps only this route, inside the global chain
	Middleware []func(http.HandlerFunc) http.HandlerFunc
}

// Routes returns all API routes for registration. uploadLimiter may be nil
// to disable rate limiting.
func (h *Handler) Routes(uploadLimiter *middleware.RateLimiter) []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Scenarios
		{Method: http.MethodGet, Path: "/api/v1/scenarios", Handler: h.ListScenarios},
		{Method: http.MethodGet, Path: "/api/v1/scenarios/compare", Handler: h.CompareScenarios},
		{Method: http.MethodGet, Path: "/api/v1/dashboard", Handler: h.Dashboard},
		{Method: http.MethodGet, Path: "/api/v1/snapshots", Handler: h.ListSnapshots},

		// Uploads
		{
			Method:  http.MethodPost,
			Path:    "/api/v1/schedule/analyze",
			Handler: h.AnalyzeSchedule,
			Middleware: []func(http.HandlerFunc) http.HandlerFunc{
				middleware.RateLimit(uploadLimiter, middleware.ClientIP),
				middleware.RequireJSON,
				middleware.MaxBodyBytes(maxUploadBytes),
			},
		},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}

// Register mounts routes on mux using Go 1.22 method patterns, wrapping
// each in global (outermost first) and then its own middleware. Every path
// also answers OPTIONS through global so CORS preflights reach it.
func Register(mux *http.ServeMux, routes []Route, global ...func(http.HandlerFunc) http.HandlerFunc) {
	preflight := make(map[string]bool)
	for _, route := range routes {
		handler := middleware.Chain(route.Handler, route.Middleware...)
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(handler, global...))

		if !preflight[route.Path] {
			preflight[route.Path] = true
			mux.HandleFunc(http.MethodOptions+" "+route.Path, middleware.Chain(noContent, global...))
		}
	}
}

func noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
