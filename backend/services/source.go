// ABOUTME: Resolves scenario schedules from cache, the optimization service, or the archive
// ABOUTME: Archives live fetches and falls back to the newest archived copy when the service fails

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/markalston/warehouse-shift-analyzer/backend/cache"
	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/backend/store"
)

// ErrScheduleUnavailable means neither the service nor the archive had a schedule.
var ErrScheduleUnavailable = errors.New("schedule unavailable")

// fallbackTTL bounds how long an archived copy stands in for a live one.
const fallbackTTL = 30 * time.Second

// SnapshotArchive stores fetched schedules. *store.SnapshotStore implements it.
type SnapshotArchive interface {
	Save(ctx context.Context, scenarioID string, fetchedAt time.Time, snap models.ScheduleSnapshot) (int64, error)
	Latest(ctx context.Context, scenarioID string) (*store.Record, error)
	List(ctx context.Context, scenarioID string, limit int) ([]store.Info, error)
	Ping(ctx context.Context) error
}

// FetchedSchedule is a scenario's schedule and where it came from.
type FetchedSchedule struct {
	Scenario  Scenario
	Snapshot  models.ScheduleSnapshot
	FetchedAt time.Time
	Source    string
	Cached    bool
}

// ScheduleSource resolves scenario ids to schedules.
type ScheduleSource struct {
	presets   *Presets
	scheduler *SchedulerClient
	archive   SnapshotArchive
	cache     *cache.Cache[FetchedSchedule]
	timeout   time.Duration
	clock     func() time.Time
}

// NewScheduleSource wires the lookup chain. scheduler, archive, and c may be nil.
func NewScheduleSource(presets *Presets, scheduler *SchedulerClient, archive SnapshotArchive, c *cache.Cache[FetchedSchedule], timeout time.Duration) *ScheduleSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ScheduleSource{
		presets:   presets,
		scheduler: scheduler,
		archive:   archive,
		cache:     c,
		timeout:   timeout,
		clock:     time.Now,
	}
}

// Presets returns the shift table and scenario list.
func (s *ScheduleSource) Presets() *Presets {
	return s.presets
}

// SchedulerConfigured reports whether live fetches are possible.
func (s *ScheduleSource) SchedulerConfigured() bool {
	return s.scheduler.Configured()
}

// Archive returns the snapshot archive, or nil when archiving is disabled.
func (s *ScheduleSource) Archive() SnapshotArchive {
	return s.archive
}

// Get resolves one scenario. refresh skips the cache.
func (s *ScheduleSource) Get(ctx context.Context, scenarioID string, refresh bool) (FetchedSchedule, error) {
	sc, err := s.presets.Scenario(scenarioID)
	if err != nil {
		return FetchedSchedule{}, err
	}

	if !refresh {
		if fs, ok := s.cached(sc.ID); ok {
			return fs, nil
		}
	}

	var fetchErr error
	if s.scheduler.Configured() {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		snap, err := s.scheduler.Fetch(fetchCtx, ParamsForScenario(sc))
		cancel()
		if err == nil {
			return s.store(ctx, sc, *snap), nil
		}
		fetchErr = err
		slog.Warn("Live schedule fetch failed, trying archive", "scenario", sc.ID, "error", err)
	} else {
		fetchErr = ErrSchedulerNotConfigured
	}

	return s.fromArchive(ctx, sc, fetchErr)
}

// GetMany resolves several scenarios. Cache misses are fetched from the
// service concurrently; if that fails each miss falls back to the archive.
func (s *ScheduleSource) GetMany(ctx context.Context, scenarioIDs []string) ([]FetchedSchedule, error) {
	results := make([]FetchedSchedule, len(scenarioIDs))
	var (
		missIdx    []int
		missParams []ScheduleParams
		scenarios  = make([]Scenario, len(scenarioIDs))
	)

	for i, id := range scenarioIDs {
		sc, err := s.presets.Scenario(id)
		if err != nil {
			return nil, err
		}
		scenarios[i] = sc
		if fs, ok := s.cached(sc.ID); ok {
			results[i] = fs
			continue
		}
		missIdx = append(missIdx, i)
		missParams = append(missParams, ParamsForScenario(sc))
	}
	if len(missIdx) == 0 {
		return results, nil
	}

	fetchErr := ErrSchedulerNotConfigured
	if s.scheduler.Configured() {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		snaps, err := s.scheduler.FetchMany(fetchCtx, missParams)
		cancel()
		if err == nil {
			for j, i := range missIdx {
				results[i] = s.store(ctx, scenarios[i], *snaps[j])
			}
			return results, nil
		}
		fetchErr = err
		slog.Warn("Live comparison fetch failed, trying archive", "scenarios", len(missIdx), "error", err)
	}

	for _, i := range missIdx {
		fs, err := s.fromArchive(ctx, scenarios[i], fetchErr)
		if err != nil {
			return nil, err
		}
		results[i] = fs
	}
	return results, nil
}

// Warm refetches the default scenario, replacing its cache entry.
func (s *ScheduleSource) Warm(ctx context.Context) error {
	if s.presets.DefaultScenario == "" {
		return nil
	}
	fs, err := s.Get(ctx, s.presets.DefaultScenario, true)
	if err != nil {
		return err
	}
	if fs.Source != models.SourceLive {
		return fmt.Errorf("warm %s: served from %s", fs.Scenario.ID, fs.Source)
	}
	return nil
}

// CacheEntries counts cached schedules.
func (s *ScheduleSource) CacheEntries() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

func (s *ScheduleSource) cached(scenarioID string) (FetchedSchedule, bool) {
	if s.cache == nil {
		return FetchedSchedule{}, false
	}
	fs, ok := s.cache.Get(cacheKey(scenarioID))
	if !ok {
		return FetchedSchedule{}, false
	}
	fs.Cached = true
	return fs, true
}

// store archives and caches a live snapshot. Archive failures only log;
// the live data is still good.
func (s *ScheduleSource) store(ctx context.Context, sc Scenario, snap models.ScheduleSnapshot) FetchedSchedule {
	fs := FetchedSchedule{
		Scenario:  sc,
		Snapshot:  snap,
		FetchedAt: s.clock().UTC(),
		Source:    models.SourceLive,
	}
	if s.archive != nil {
		if _, err := s.archive.Save(ctx, sc.ID, fs.FetchedAt, snap); err != nil {
			slog.Error("Failed to archive schedule", "scenario", sc.ID, "error", err)
		}
	}
	if s.cache != nil {
		s.cache.Set(cacheKey(sc.ID), fs)
	}
	return fs
}

func (s *ScheduleSource) fromArchive(ctx context.Context, sc Scenario, fetchErr error) (FetchedSchedule, error) {
	if s.archive == nil {
		return FetchedSchedule{}, fmt.Errorf("%w: %v", ErrScheduleUnavailable, fetchErr)
	}

	rec, err := s.archive.Latest(ctx, sc.ID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return FetchedSchedule{}, fmt.Errorf("%w: %v; no archived copy", ErrScheduleUnavailable, fetchErr)
		}
		return FetchedSchedule{}, fmt.Errorf("%w: %v; archive: %v", ErrScheduleUnavailable, fetchErr, err)
	}

	fs := FetchedSchedule{
		Scenario:  sc,
		Snapshot:  rec.Snapshot,
		FetchedAt: rec.FetchedAt,
		Source:    models.SourceArchive,
	}
	if s.cache != nil {
		s.cache.SetWithTTL(cacheKey(sc.ID), fs, fallbackTTL)
	}
	slog.Info("Serving archived schedule", "scenario", sc.ID, "fetched_at", rec.FetchedAt)
	return fs, nil
}

func cacheKey(scenarioID string) string {
	return "schedule:" + scenarioID
}
