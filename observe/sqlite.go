package observe

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/cellmesh/core"
)

const createStepsTable = `
CREATE TABLE IF NOT EXISTS steps (
    step        INTEGER PRIMARY KEY,
    time        REAL NOT NULL,
    size        INTEGER NOT NULL,
    deaths      INTEGER NOT NULL,
    divisions   INTEGER NOT NULL,
    births      INTEGER NOT NULL,
    recorded_at DATETIME NOT NULL
)`

// StepRow is one persisted trajectory point.
type StepRow struct {
	Step      uint64
	Time      core.Time
	Size      int
	Deaths    int
	Divisions int
	Births    int
}

// Recorder persists the population trajectory to a SQLite database, one row
// per tick. Because OnStep cannot return an error, write failures are
// retained and surfaced through Err; callers driving long runs should check
// it when the run finishes (or in an after-apply hook for fail-fast needs).
type Recorder struct {
	db *sql.DB

	mu      sync.Mutex
	lastErr error
}

// NewRecorder opens (or creates) the SQLite database at dbPath and runs
// migrations. Use ":memory:" for a throwaway in-process database.
func NewRecorder(dbPath string) (*Recorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps :memory: databases alive and serializes
	// writes, which is all SQLite supports anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(createStepsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create steps table: %w", err)
	}

	return &Recorder{db: db}, nil
}

// OnStep inserts one row for the completed tick.
func (r *Recorder) OnStep(view core.PopulationView, t core.Time) {
	stats := view.LastStepStats()

	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO steps (step, time, size, deaths, divisions, births, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stats.Step, float64(t), view.Size(), stats.Deaths, stats.Divisions, stats.Births, time.Now().UTC(),
	)
	if err != nil {
		r.mu.Lock()
		r.lastErr = fmt.Errorf("record step %d: %w", stats.Step, err)
		r.mu.Unlock()
	}
}

// Err returns the most recent write failure, or nil.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Rows reads back the persisted trajectory in tick order.
func (r *Recorder) Rows(ctx context.Context) ([]StepRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT step, time, size, deaths, divisions, births FROM steps ORDER BY step`)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var out []StepRow
	for rows.Next() {
		var row StepRow
		var simTime float64
		if err := rows.Scan(&row.Step, &simTime, &row.Size, &row.Deaths, &row.Divisions, &row.Births); err != nil {
			return nil, fmt.Errorf("scan step row: %w", err)
		}
		row.Time = core.Time(simTime)
		out = append(out, row)
	}

	return out, rows.Err()
}

// Close releases the underlying database handle.
func (r *Recorder) Close() error {
	return r.db.Close()
}
