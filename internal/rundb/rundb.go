// Package rundb is the sqlite-backed audit ledger of every solve: one
// row per run, whether it succeeded, was infeasible, or failed to
// invoke the solver at all. A *sql.DB over database/sql's generic
// interface, INSERT on start, UPDATE ... SET status, report on
// completion, with github.com/mattn/go-sqlite3 as the concrete driver.
package rundb

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS run (
	id            TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	finished_at   TEXT,
	status        TEXT NOT NULL,
	model_path    TEXT,
	solution_path TEXT,
	report        TEXT
);`

// Status is the lifecycle state of one recorded run.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusFailed     Status = "failed"
)

// Run is one row of the ledger.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   *time.Time
	Status       Status
	ModelPath    string
	SolutionPath string
	Report       string
}

// DB wraps the sqlite connection used by cmd/planner and cmd/plannerd
// to record solves.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if absent) the sqlite database at dsn and
// ensures the run table exists.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("rundb: failed to open %s: %w", dsn, err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("rundb: failed to apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Start records a new in-progress run.
func (d *DB) Start(id, modelPath string, startedAt time.Time) error {
	_, err := d.conn.Exec(
		`INSERT INTO run (id, started_at, status, model_path) VALUES (?, ?, ?, ?)`,
		id, startedAt.Format(time.RFC3339), StatusInProgress, modelPath,
	)
	if err != nil {
		return fmt.Errorf("rundb: failed to insert run %s: %w", id, err)
	}
	return nil
}

// Finish updates a run with its terminal status, report text, and
// solution artifact path (empty if none was produced).
func (d *DB) Finish(id string, status Status, solutionPath, report string, finishedAt time.Time) error {
	_, err := d.conn.Exec(
		`UPDATE run SET status = ?, solution_path = ?, report = ?, finished_at = ? WHERE id = ?`,
		status, solutionPath, report, finishedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("rundb: failed to finish run %s: %w", id, err)
	}
	return nil
}

// Get returns the row for id.
func (d *DB) Get(id string) (*Run, error) {
	row := d.conn.QueryRow(
		`SELECT id, started_at, finished_at, status, model_path, solution_path, report FROM run WHERE id = ?`, id)

	var r Run
	var startedAt string
	var finishedAt sql.NullString
	if err := row.Scan(&r.ID, &startedAt, &finishedAt, &r.Status, &r.ModelPath, &r.SolutionPath, &r.Report); err != nil {
		return nil, fmt.Errorf("rundb: failed to fetch run %s: %w", id, err)
	}
	t, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("rundb: malformed started_at for run %s: %w", id, err)
	}
	r.StartedAt = t
	if finishedAt.Valid {
		ft, err := time.Parse(time.RFC3339, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("rundb: malformed finished_at for run %s: %w", id, err)
		}
		r.FinishedAt = &ft
	}
	return &r, nil
}

// List returns every recorded run, most recent first.
func (d *DB) List() ([]Run, error) {
	rows, err := d.conn.Query(`SELECT id, started_at, finished_at, status, model_path, solution_path, report FROM run ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("rundb: failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &startedAt, &finishedAt, &r.Status, &r.ModelPath, &r.SolutionPath, &r.Report); err != nil {
			return nil, fmt.Errorf("rundb: failed to scan run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		if finishedAt.Valid {
			if ft, err := time.Parse(time.RFC3339, finishedAt.String); err == nil {
				r.FinishedAt = &ft
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
