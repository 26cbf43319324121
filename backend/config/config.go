// ABOUTME: Configuration loader for backend service
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, for fetched schedules (default 300)
	CORSAllowedOrigins []string // allowed CORS origins (empty = any origin)

	// Optimization service (optional; uploads work without it)
	SchedulerAPIURL  string
	SchedulerTimeout int // seconds per fetch (default 30)

	// Analytics
	ShiftTimezone      string // IANA name for zone-less solver timestamps
	Location           *time.Location
	BucketWidthMinutes int    // default 60
	ShiftsFile         string // YAML shift table override (empty = embedded)

	// Snapshot archive
	ArchivePath   string // SQLite file (empty disables)
	ArchiveRetain int    // snapshots kept per scenario (default 50)

	// Cache warming
	ScheduleRefreshCron string // 5-field cron (empty disables)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAnalyze int  // Uploads per minute per client (default: 30)
}

// SchedulerConfigured returns true if an optimization service URL is set
func (c *Config) SchedulerConfigured() bool {
	return c.SchedulerAPIURL != ""
}

// ArchiveEnabled returns true if snapshots should be archived
func (c *Config) ArchiveEnabled() bool {
	return c.ArchivePath != ""
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		SchedulerAPIURL:  strings.TrimRight(ensureScheme(os.Getenv("SCHEDULER_API_URL")), "/"),
		SchedulerTimeout: getEnvInt("SCHEDULER_TIMEOUT", 30),

		ShiftTimezone:      getEnv("SHIFT_TIMEZONE", "UTC"),
		BucketWidthMinutes: getEnvInt("BUCKET_WIDTH_MINUTES", 60),
		ShiftsFile:         os.Getenv("SHIFTS_FILE"),

		ArchivePath:   getEnvAllowEmpty("ARCHIVE_PATH", "data/snapshots.db"),
		ArchiveRetain: getEnvInt("ARCHIVE_RETAIN", 50),

		ScheduleRefreshCron: strings.TrimSpace(os.Getenv("SCHEDULE_REFRESH_CRON")),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAnalyze: getEnvInt("RATE_LIMIT_ANALYZE", 30),
	}

	loc, err := time.LoadLocation(cfg.ShiftTimezone)
	if err != nil {
		return nil, fmt.Errorf("SHIFT_TIMEZONE %q is not a valid time zone: %w", cfg.ShiftTimezone, err)
	}
	cfg.Location = loc

	if cfg.BucketWidthMinutes < 1 || cfg.BucketWidthMinutes > 1440 {
		return nil, fmt.Errorf("BUCKET_WIDTH_MINUTES must be between 1 and 1440, got %d", cfg.BucketWidthMinutes)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	if cfg.SchedulerTimeout < 1 {
		return nil, fmt.Errorf("SCHEDULER_TIMEOUT must be at least 1, got %d", cfg.SchedulerTimeout)
	}
	if cfg.RateLimitAnalyze < 1 || cfg.RateLimitAnalyze > 10000 {
		return nil, fmt.Errorf("RATE_LIMIT_ANALYZE must be between 1 and 10000, got %d", cfg.RateLimitAnalyze)
	}

	if cfg.ScheduleRefreshCron != "" {
		if cfg.SchedulerAPIURL == "" {
			return nil, fmt.Errorf("SCHEDULE_REFRESH_CRON requires SCHEDULER_API_URL")
		}
		if _, err := cron.ParseStandard(cfg.ScheduleRefreshCron); err != nil {
			return nil, fmt.Errorf("SCHEDULE_REFRESH_CRON %q is invalid: %w", cfg.ScheduleRefreshCron, err)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable (default) from one
// explicitly set to "" (disabled).
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds http:// prefix if the URL has no scheme; the
// optimization service usually runs beside the backend without TLS
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
