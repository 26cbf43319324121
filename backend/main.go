// ABOUTME: Entry point for the warehouse shift analyzer backend service
// ABOUTME: Provides HTTP API for dock, labor, and wave analytics over solver schedules

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/markalston/warehouse-shift-analyzer/backend/cache"
	"github.com/markalston/warehouse-shift-analyzer/backend/config"
	"github.com/markalston/warehouse-shift-analyzer/backend/handlers"
	"github.com/markalston/warehouse-shift-analyzer/backend/logger"
	"github.com/markalston/warehouse-shift-analyzer/backend/middleware"
	"github.com/markalston/warehouse-shift-analyzer/backend/services"
	"github.com/markalston/warehouse-shift-analyzer/backend/store"
)

func main() {
	envErr := godotenv.Load()

	// Initialize structured logging
	logger.Init()
	if envErr != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Warehouse Shift Analyzer Backend", "timezone", cfg.ShiftTimezone)

	presets, err := services.LoadPresets(cfg.ShiftsFile)
	if err != nil {
		slog.Error("Failed to load shift presets", "error", err)
		os.Exit(1)
	}
	slog.Info("Shift presets loaded", "shifts", len(presets.Shifts), "scenarios", len(presets.Scenarios), "default", presets.DefaultScenario)

	var scheduler *services.SchedulerClient
	if cfg.SchedulerConfigured() {
		scheduler = services.NewSchedulerClient(cfg.SchedulerAPIURL, &http.Client{
			Timeout: time.Duration(cfg.SchedulerTimeout) * time.Second,
		})
		slog.Info("Optimization service configured", "url", cfg.SchedulerAPIURL)
	} else {
		slog.Warn("Optimization service not configured, serving archive and uploads only")
	}

	// The interface stays nil when archiving is off
	var archive services.SnapshotArchive
	if cfg.ArchiveEnabled() {
		st, err := store.Open(cfg.ArchivePath)
		if err != nil {
			slog.Error("Failed to open snapshot archive", "path", cfg.ArchivePath, "error", err)
			os.Exit(1)
		}
		defer st.Close()
		st.SetRetain(cfg.ArchiveRetain)
		archive = st
		slog.Info("Snapshot archive opened", "path", st.Path(), "retain", cfg.ArchiveRetain)
	}

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New[services.FetchedSchedule](cacheTTL)
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	source := services.NewScheduleSource(presets, scheduler, archive, c, time.Duration(cfg.SchedulerTimeout)*time.Second)

	var refresher *services.Refresher
	if cfg.ScheduleRefreshCron != "" {
		refresher, err = services.NewRefresher(cfg.ScheduleRefreshCron, cfg.Location, 2*time.Duration(cfg.SchedulerTimeout)*time.Second, source.Warm)
		if err != nil {
			slog.Error("Invalid refresh schedule", "error", err)
			os.Exit(1)
		}
		refresher.Start()
	}

	// Initialize handlers
	h := handlers.NewHandler(cfg, source)

	var uploadLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		uploadLimiter = middleware.NewRateLimiter(cfg.RateLimitAnalyze, time.Minute)
		slog.Info("Rate limiting enabled", "analyze_per_minute", cfg.RateLimitAnalyze)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	// Register routes; CORS runs inside logging so preflights are logged too
	mux := http.NewServeMux()
	handlers.Register(mux, h.Routes(uploadLimiter),
		middleware.LogRequest,
		middleware.CORSWithConfig(cfg.CORSAllowedOrigins),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Duration(cfg.SchedulerTimeout)*time.Second + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if refresher != nil {
		refresher.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
