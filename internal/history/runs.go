package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// hashLength is the number of hex characters in a truncated content hash.
const hashLength = 12

// HashContent computes a truncated content hash for change detection.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:hashLength]
}

// Run is one recorded fix of a file.
type Run struct {
	ID           int64
	FilePath     string
	InputHash    string
	OutputHash   string
	Declarations int
	Duplicates   int
	Cyclic       bool
	RanAt        time.Time
}

// RecordRun appends a run to the ledger. RanAt defaults to now when unset.
func (h *History) RecordRun(run Run) error {
	ranAt := run.RanAt
	if ranAt.IsZero() {
		ranAt = time.Now()
	}

	cyclic := 0
	if run.Cyclic {
		cyclic = 1
	}

	_, err := h.db.Exec(`
		INSERT INTO runs (file_path, input_hash, output_hash, declarations, duplicates, cyclic, ran_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.FilePath, run.InputHash, run.OutputHash,
		run.Declarations, run.Duplicates, cyclic,
		ranAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record run for %s: %w", run.FilePath, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, up to limit.
// A non-positive limit means no limit.
func (h *History) ListRuns(limit int) ([]Run, error) {
	query := "SELECT id, file_path, input_hash, output_hash, declarations, duplicates, cyclic, ran_at FROM runs ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// LastRun returns the most recent run for a file.
// Returns sql.ErrNoRows if the file has never been fixed.
func (h *History) LastRun(filePath string) (*Run, error) {
	row := h.db.QueryRow(`
		SELECT id, file_path, input_hash, output_hash, declarations, duplicates, cyclic, ran_at
		FROM runs WHERE file_path = ? ORDER BY id DESC LIMIT 1`, filePath)

	run, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("last run for %s: %w", filePath, err)
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var cyclic int
	var ranAt string

	err := row.Scan(&run.ID, &run.FilePath, &run.InputHash, &run.OutputHash,
		&run.Declarations, &run.Duplicates, &cyclic, &ranAt)
	if err != nil {
		return nil, err
	}

	run.Cyclic = cyclic != 0
	run.RanAt, _ = time.Parse(time.RFC3339, ranAt)
	return &run, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
