// Package runlog keeps the run-history ledger in SQLite: one row per
// pipeline run with its status and a short detail line, so an operator can
// see what happened without digging through logs.
package runlog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Status values recorded per run.
const (
	StatusOK  = "OK"
	StatusNOK = "NOK"
)

// Entry is one recorded run.
type Entry struct {
	RunDate   string // the report date the run processed
	Timestamp string // when the run executed
	Status    string
	Details   string
}

// Store is an open run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_date TEXT NOT NULL,
		run_timestamp TEXT NOT NULL,
		status TEXT NOT NULL,
		details TEXT
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record appends one run outcome.
func (s *Store) Record(runDate, status, details string) error {
	ts := time.Now().Format("2006-01-02 15:04:05")
	_, err := s.db.Exec(
		`INSERT INTO runs (run_date, run_timestamp, status, details) VALUES (?, ?, ?, ?)`,
		runDate, ts, status, details)
	return err
}

// History returns recorded runs, newest first.
func (s *Store) History() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT run_date, run_timestamp, status, details FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RunDate, &e.Timestamp, &e.Status, &e.Details); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
