// Package database persists the audit trail of completed dedupe runs.
// Clustering never reads this store; every run recomputes from the
// source directory. The store exists so past decisions stay queryable.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"imagededuper/types"
)

// InitDatabase initializes and returns a session database connection
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		source_directory TEXT NOT NULL,
		output_directory TEXT NOT NULL,
		trash_directory TEXT NOT NULL,
		total_scanned INTEGER,
		total_kept INTEGER,
		total_duplicates INTEGER,
		hash_method TEXT,
		hash_distance_threshold INTEGER
	);
	CREATE TABLE IF NOT EXISTS duplicate_edges (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		removed_path TEXT NOT NULL,
		kept_path TEXT NOT NULL,
		distance INTEGER,
		removed_resolution TEXT,
		kept_resolution TEXT,
		FOREIGN KEY(session_id) REFERENCES sessions(id)
	);
	CREATE INDEX IF NOT EXISTS idx_edges_session ON duplicate_edges(session_id);
	CREATE INDEX IF NOT EXISTS idx_edges_kept ON duplicate_edges(kept_path);`

	if _, err = db.Exec(createTableSQL); err != nil {
		return nil, err
	}

	return db, nil
}

// OpenDatabase opens an existing session database connection
func OpenDatabase(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite3", dbPath)
}

// StoreSession records one completed run and all of its duplicate
// decisions. Returns the new session id.
func StoreSession(db *sql.DB, summary types.SessionSummary, result *types.Result) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("cannot begin session transaction: %v", err)
	}

	res, err := tx.Exec(`
		INSERT INTO sessions (
			timestamp, source_directory, output_directory, trash_directory,
			total_scanned, total_kept, total_duplicates, hash_method, hash_distance_threshold
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.Timestamp,
		summary.SourceDirectory,
		summary.OutputDirectory,
		summary.TrashDirectory,
		summary.TotalScanned,
		summary.TotalKept,
		summary.TotalDuplicates,
		summary.HashMethod,
		summary.HashDistanceThreshold,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("cannot insert session: %v", err)
	}

	sessionID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("cannot read session id: %v", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO duplicate_edges (
			session_id, removed_path, kept_path, distance, removed_resolution, kept_resolution
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("cannot prepare edge statement: %v", err)
	}
	defer stmt.Close()

	for el := result.Duplicates.Front(); el != nil; el = el.Next() {
		removedRes := "unknown"
		if rec, ok := result.Record(el.Key); ok {
			removedRes = rec.ResolutionString()
		}
		keptRes := "unknown"
		if rec, ok := result.Record(el.Value.KeptPath); ok {
			keptRes = rec.ResolutionString()
		}

		if _, err := stmt.Exec(sessionID, el.Key, el.Value.KeptPath, el.Value.Distance, removedRes, keptRes); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("cannot insert edge for %s: %v", el.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cannot commit session: %v", err)
	}

	return sessionID, nil
}

// SessionRow is one recorded run, as listed by the sessions command.
type SessionRow struct {
	ID              int64
	Timestamp       string
	SourceDirectory string
	TotalScanned    int
	TotalKept       int
	TotalDuplicates int
}

// ListSessions returns all recorded runs, most recent first.
func ListSessions(db *sql.DB) ([]SessionRow, error) {
	rows, err := db.Query(`
		SELECT id, timestamp, source_directory, total_scanned, total_kept, total_duplicates
		FROM sessions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("cannot list sessions: %v", err)
	}
	defer rows.Close()

	var sessions []SessionRow
	for rows.Next() {
		var s SessionRow
		if err := rows.Scan(&s.ID, &s.Timestamp, &s.SourceDirectory, &s.TotalScanned, &s.TotalKept, &s.TotalDuplicates); err != nil {
			return nil, fmt.Errorf("cannot scan session row: %v", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SessionStats contains cumulative statistics across all recorded runs
type SessionStats struct {
	TotalSessions   int
	TotalDuplicates int
}

// GetSessionStats retrieves cumulative statistics about recorded runs
func GetSessionStats(db *sql.DB) (*SessionStats, error) {
	var stats SessionStats

	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&stats.TotalSessions); err != nil {
		return nil, fmt.Errorf("failed to count sessions: %v", err)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM duplicate_edges").Scan(&stats.TotalDuplicates); err != nil {
		return nil, fmt.Errorf("failed to count duplicate edges: %v", err)
	}

	return &stats, nil
}
