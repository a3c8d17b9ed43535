// Package database keeps an sqlite journal of runs: one row per run and one
// row per classified image, including which file was deleted.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"dupsweep/logging"
	"dupsweep/types"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		delete_enabled INTEGER NOT NULL,
		threshold INTEGER NOT NULL,
		duplicates INTEGER NOT NULL DEFAULT 0,
		similar INTEGER NOT NULL DEFAULT 0,
		uniq INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		reclaimed_bytes INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		seq INTEGER NOT NULL,
		path TEXT NOT NULL,
		hash TEXT NOT NULL,
		classification TEXT NOT NULL,
		matched_path TEXT,
		distance INTEGER NOT NULL DEFAULT 0,
		kept_path TEXT,
		discarded_path TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_hash ON events(hash);`

// InitDatabase initializes and returns a database connection
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection also keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema: %w", err)
	}
	return db, nil
}

// RunInfo describes a run when it starts
type RunInfo struct {
	Root          string
	DeleteEnabled bool
	Threshold     int
}

// Journal records the events of one run
type Journal struct {
	db    *sql.DB
	runID string
	stmt  *sql.Stmt
}

// BeginRun inserts a run row and prepares the event insert statement
func BeginRun(db *sql.DB, info RunInfo) (*Journal, error) {
	runID := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (id, root, started_at, delete_enabled, threshold) VALUES (?, ?, ?, ?, ?)`,
		runID, info.Root, time.Now().Format(time.RFC3339), info.DeleteEnabled, info.Threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot insert run: %w", err)
	}

	stmt, err := db.Prepare(`
		INSERT INTO events (
			run_id, seq, path, hash, classification, matched_path, distance, kept_path, discarded_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare event statement: %w", err)
	}

	logging.DebugLog("Journal run %s started for %s", runID, info.Root)
	return &Journal{db: db, runID: runID, stmt: stmt}, nil
}

// RunID returns the identifier of the journaled run
func (j *Journal) RunID() string {
	return j.runID
}

// RecordEvent stores one classification event
func (j *Journal) RecordEvent(event types.Event) error {
	_, err := j.stmt.Exec(
		j.runID,
		event.Seq,
		event.Path,
		event.HashHex,
		event.Classification.String(),
		nullString(event.MatchedPath),
		event.Distance,
		nullString(event.KeptPath),
		nullString(event.DiscardedPath),
	)
	if err != nil {
		return fmt.Errorf("cannot insert event for %s: %w", event.Path, err)
	}
	return nil
}

// FinishRun stores the final counters and releases the prepared statement
func (j *Journal) FinishRun(summary types.Summary) error {
	defer j.stmt.Close()

	_, err := j.db.Exec(`
		UPDATE runs SET finished_at = ?, duplicates = ?, similar = ?, uniq = ?, skipped = ?, reclaimed_bytes = ?
		WHERE id = ?`,
		time.Now().Format(time.RFC3339),
		summary.Duplicates, summary.Similar, summary.Unique, summary.Skipped, summary.ReclaimedBytes,
		j.runID,
	)
	if err != nil {
		return fmt.Errorf("cannot finish run %s: %w", j.runID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// RunStats contains the counters stored for a run
type RunStats struct {
	Duplicates     int
	Similar        int
	Unique         int
	Skipped        int
	Events         int
	Deleted        int
	ReclaimedBytes int64
}

// GetRunStats retrieves statistics about a journaled run
func GetRunStats(db *sql.DB, runID string) (*RunStats, error) {
	var stats RunStats

	err := db.QueryRow(
		`SELECT duplicates, similar, uniq, skipped, reclaimed_bytes FROM runs WHERE id = ?`, runID,
	).Scan(&stats.Duplicates, &stats.Similar, &stats.Unique, &stats.Skipped, &stats.ReclaimedBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}

	err = db.QueryRow(
		`SELECT COUNT(*), COUNT(discarded_path) FROM events WHERE run_id = ?`, runID,
	).Scan(&stats.Events, &stats.Deleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count events for run %s: %w", runID, err)
	}

	return &stats, nil
}

// DeletedPaths lists the files a run discarded, in event order
func DeletedPaths(db *sql.DB, runID string) ([]string, error) {
	rows, err := db.Query(
		`SELECT discarded_path FROM events WHERE run_id = ? AND discarded_path IS NOT NULL ORDER BY seq`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query deleted paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
