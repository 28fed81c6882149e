/*
Package sqlite provides a SQLite-backed record of completed resample runs.

PURPOSE:
  Every computation served over the API is recorded: which spec was
  resolved, which reducer ran, how many periods came out. The record is
  APPEND-ONLY - runs are facts about computations that happened, never
  edited after the fact.

KEY TABLE:
  runs: one row per completed computation

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/runs.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - api/handlers.go: records a run per compute request
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one completed resample computation.
type Run struct {
	ID          string
	Spec        string // the raw specification as submitted
	Frequency   string // resolved description
	Rule        string // resolved base rule
	Reducer     string
	SeriesName  string
	Calendar    string
	PeriodCount int
	CreatedAt   time.Time
}

// Store persists runs. Append-only: no Update, no Delete.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) a run store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id           TEXT PRIMARY KEY,
		spec         TEXT NOT NULL,
		frequency    TEXT NOT NULL,
		rule         TEXT NOT NULL,
		reducer      TEXT NOT NULL,
		series_name  TEXT NOT NULL,
		calendar     TEXT NOT NULL,
		period_count INTEGER NOT NULL,
		created_at   TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a completed run.
func (s *Store) Append(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, spec, frequency, rule, reducer, series_name, calendar, period_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Spec, run.Frequency, run.Rule, run.Reducer,
		run.SeriesName, run.Calendar, run.PeriodCount, run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, spec, frequency, rule, reducer, series_name, calendar, period_count, created_at
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Spec, &r.Frequency, &r.Rule, &r.Reducer,
			&r.SeriesName, &r.Calendar, &r.PeriodCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
