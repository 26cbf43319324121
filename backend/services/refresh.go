// ABOUTME: Cron-driven dashboard cache warmer
// ABOUTME: Re-runs a refresh job on a standard 5-field cron schedule

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// RefreshFunc rebuilds whatever the refresher keeps warm.
type RefreshFunc func(ctx context.Context) error

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ParseSchedule validates a 5-field cron expression
// ("0 6 * * *" daily at 06:00, "*/15 * * * *" every quarter hour).
func ParseSchedule(expr string) (cron.Schedule, error) {
	sched, err := cronParser.Parse(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	return sched, nil
}

// Refresher runs a job on a cron schedule. Runs never overlap: a tick that
// fires while the previous run is still going is skipped.
type Refresher struct {
	cron     *cron.Cron
	schedule cron.Schedule
	expr     string
	job      RefreshFunc
	timeout  time.Duration
}

// NewRefresher schedules job on expr, evaluated in loc. Each run gets its
// own context bounded by timeout.
func NewRefresher(expr string, loc *time.Location, timeout time.Duration, job RefreshFunc) (*Refresher, error) {
	sched, err := ParseSchedule(expr)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	if timeout <= 0 {
		timeout = time.Minute
	}

	r := &Refresher{
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		schedule: sched,
		expr:     strings.TrimSpace(expr),
		job:      job,
		timeout:  timeout,
	}
	r.cron.Schedule(sched, cron.FuncJob(r.tick))
	return r, nil
}

// Start begins running the schedule in the background.
func (r *Refresher) Start() {
	slog.Info("Schedule refresh enabled", "cron", r.expr, "next", r.NextAfter(time.Now()).Format(time.RFC3339))
	r.cron.Start()
}

// Stop halts the schedule and waits for a running job, bounded by ctx.
func (r *Refresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		slog.Warn("Schedule refresh still running at shutdown")
	}
}

// NextAfter returns the first run time after t.
func (r *Refresher) NextAfter(t time.Time) time.Time {
	return r.schedule.Next(t)
}

// RunNow executes the job once, outside the schedule.
func (r *Refresher) RunNow(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.job(ctx)
}

func (r *Refresher) tick() {
	start := time.Now()
	if err := r.RunNow(context.Background()); err != nil {
		slog.Error("Scheduled refresh failed", "error", err)
		return
	}
	slog.Info("Scheduled refresh complete", "duration_ms", time.Since(start).Milliseconds())
}
