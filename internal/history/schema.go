package history

// schemaSQL defines the SQLite schema for the run ledger.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path TEXT NOT NULL,
    input_hash TEXT NOT NULL,             -- 12-char content hash before rewriting
    output_hash TEXT NOT NULL,            -- 12-char content hash after rewriting
    declarations INTEGER NOT NULL,        -- unique declarations processed
    duplicates INTEGER NOT NULL,          -- duplicate definitions removed
    cyclic INTEGER NOT NULL DEFAULT 0,    -- 1 when the dependency graph had a cycle
    ran_at TEXT NOT NULL                  -- RFC3339 timestamp
);

CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file_path, ran_at);
`

// initSchema creates the tables if they don't exist.
func (h *History) initSchema() error {
	_, err := h.db.Exec(schemaSQL)
	return err
}
