// Package history provides SQLite-backed persistence for fix runs.
// The ledger is stored in .resort/history.db and records what resort did
// to each file: how many declarations it processed, how many duplicates it
// dropped, and the content hashes before and after rewriting.
package history

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// History manages the .resort/history.db SQLite database.
type History struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the history database at the specified .resort
// directory. It initializes the schema if the database is new.
func Open(resortDir string) (*History, error) {
	dbPath := filepath.Join(resortDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	h := &History{db: db, dbPath: dbPath}

	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Clear removes all recorded runs.
func (h *History) Clear() error {
	_, err := h.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (h *History) Path() string {
	return h.dbPath
}

// DB returns the underlying database connection for advanced operations.
func (h *History) DB() *sql.DB {
	return h.db
}

// Stats returns history statistics.
type Stats struct {
	RunCount  int64
	FileCount int64
}

// GetStats returns statistics about the recorded runs.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&stats.RunCount)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	err = h.db.QueryRow("SELECT COUNT(DISTINCT file_path) FROM runs").Scan(&stats.FileCount)
	if err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}

	return &stats, nil
}
