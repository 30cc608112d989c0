package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureIndexes(ctx context.Context) error {
	// All DDL runs in one call, which PostgreSQL executes inside an implicit
	// transaction. IF NOT EXISTS keeps repeated runs harmless.
	ddl := `
CREATE TABLE IF NOT EXISTS datasets (
    dataset_id         TEXT PRIMARY KEY,
    name               TEXT NOT NULL DEFAULT '',
    last_reconstructed TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS entries (
    entry_id           TEXT PRIMARY KEY,
    name               TEXT NOT NULL DEFAULT '',
    entry_type         TEXT NOT NULL DEFAULT '',
    formula            TEXT NOT NULL DEFAULT '',
    group_key          TEXT NOT NULL DEFAULT '',
    dataset_id         TEXT REFERENCES datasets(dataset_id) ON DELETE CASCADE,
    total_files        INTEGER NOT NULL DEFAULT 0,
    has_input_files    BOOLEAN NOT NULL DEFAULT FALSE,
    has_output_files   BOOLEAN NOT NULL DEFAULT FALSE,
    has_scripts        BOOLEAN NOT NULL DEFAULT FALSE,
    last_reconstructed TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS relationships (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    from_id    TEXT NOT NULL REFERENCES entries(entry_id) ON DELETE CASCADE,
    to_id      TEXT NOT NULL REFERENCES entries(entry_id) ON DELETE CASCADE,
    rel_type   TEXT NOT NULL,
    confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
    reasoning  TEXT NOT NULL DEFAULT '',
    provenance TEXT NOT NULL DEFAULT '',
    run_id     TEXT NOT NULL DEFAULT '',
    created    TIMESTAMPTZ DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_entries_dataset ON entries (dataset_id);
CREATE INDEX IF NOT EXISTS idx_entries_formula ON entries (formula);
CREATE INDEX IF NOT EXISTS idx_entries_type ON entries (entry_type);
CREATE INDEX IF NOT EXISTS idx_entries_group ON entries (group_key);
CREATE INDEX IF NOT EXISTS idx_relationships_from ON relationships (from_id);
CREATE INDEX IF NOT EXISTS idx_relationships_to ON relationships (to_id);
CREATE INDEX IF NOT EXISTS idx_relationships_type ON relationships (rel_type);
CREATE INDEX IF NOT EXISTS idx_relationships_triple ON relationships (from_id, to_id, rel_type);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
