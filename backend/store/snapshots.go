// ABOUTME: SQLite archive of fetched schedule snapshots
// ABOUTME: Keeps recent solver output per scenario for degraded-mode dashboards

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

// ErrSnapshotNotFound is returned when a scenario has no archived snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// DefaultRetain is how many snapshots Save keeps per scenario.
const DefaultRetain = 50

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario_id TEXT    NOT NULL,
	fetched_at  INTEGER NOT NULL,
	payload     BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_scenario ON snapshots (scenario_id, fetched_at DESC);
`

// Record is one archived snapshot.
type Record struct {
	ID         int64                   `json:"id"`
	ScenarioID string                  `json:"scenario_id"`
	FetchedAt  time.Time               `json:"fetched_at"`
	Snapshot   models.ScheduleSnapshot `json:"snapshot"`
}

// Info describes an archived snapshot without its payload.
type Info struct {
	ID         int64     `json:"id"`
	ScenarioID string    `json:"scenario_id"`
	FetchedAt  time.Time `json:"fetched_at"`
	SizeBytes  int       `json:"size_bytes"`
}

// SnapshotStore persists snapshots in a SQLite database.
type SnapshotStore struct {
	db     *sql.DB
	path   string
	retain int
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*SnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open snapshot store: create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store %q: %w", path, err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: coherent
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open snapshot store: enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("open snapshot store: migrate: %w", err)
	}

	slog.Info("Snapshot archive opened", "path", path)
	return &SnapshotStore{db: db, path: path, retain: DefaultRetain}, nil
}

// SetRetain changes how many snapshots per scenario survive a Save.
// Values below 1 disable pruning.
func (s *SnapshotStore) SetRetain(n int) {
	s.retain = n
}

// Save archives snap for scenarioID and prunes old entries.
func (s *SnapshotStore) Save(ctx context.Context, scenarioID string, fetchedAt time.Time, snap models.ScheduleSnapshot) (int64, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("save snapshot: encode: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (scenario_id, fetched_at, payload) VALUES (?, ?, ?)`,
		scenarioID, fetchedAt.UTC().UnixMilli(), payload)
	if err != nil {
		return 0, fmt.Errorf("save snapshot: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save snapshot: last insert id: %w", err)
	}

	if s.retain > 0 {
		if _, err := s.db.ExecContext(ctx, `
			DELETE FROM snapshots
			WHERE scenario_id = ? AND id NOT IN (
				SELECT id FROM snapshots WHERE scenario_id = ?
				ORDER BY fetched_at DESC, id DESC LIMIT ?
			)`, scenarioID, scenarioID, s.retain); err != nil {
			return id, fmt.Errorf("save snapshot: prune: %w", err)
		}
	}

	return id, nil
}

// Latest returns the most recently fetched snapshot for scenarioID.
func (s *SnapshotStore) Latest(ctx context.Context, scenarioID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario_id, fetched_at, payload FROM snapshots
		WHERE scenario_id = ?
		ORDER BY fetched_at DESC, id DESC LIMIT 1`, scenarioID)

	var (
		rec     Record
		millis  int64
		payload []byte
	)
	if err := row.Scan(&rec.ID, &rec.ScenarioID, &millis, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: scenario %q", ErrSnapshotNotFound, scenarioID)
		}
		return nil, fmt.Errorf("latest snapshot: scan: %w", err)
	}
	if err := json.Unmarshal(payload, &rec.Snapshot); err != nil {
		return nil, fmt.Errorf("latest snapshot: decode %d: %w", rec.ID, err)
	}
	rec.FetchedAt = time.UnixMilli(millis).UTC()
	return &rec, nil
}

// List returns up to limit snapshots, newest first. An empty scenarioID
// lists every scenario.
func (s *SnapshotStore) List(ctx context.Context, scenarioID string, limit int) ([]Info, error) {
	if limit <= 0 {
		limit = DefaultRetain
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario_id, fetched_at, length(payload) FROM snapshots
		WHERE ? = '' OR scenario_id = ?
		ORDER BY fetched_at DESC, id DESC LIMIT ?`, scenarioID, scenarioID, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: query: %w", err)
	}
	defer rows.Close()

	infos := make([]Info, 0, limit)
	for rows.Next() {
		var (
			info   Info
			millis int64
		)
		if err := rows.Scan(&info.ID, &info.ScenarioID, &millis, &info.SizeBytes); err != nil {
			return nil, fmt.Errorf("list snapshots: scan row: %w", err)
		}
		info.FetchedAt = time.UnixMilli(millis).UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: row iteration: %w", err)
	}
	return infos, nil
}

// Ping checks the database connection.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Path returns the database file location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
