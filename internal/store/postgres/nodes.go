package postgres

import (
	"context"
	"fmt"
	"strings"

	"nomadgraph/internal/store"
)

func (c *Client) UpsertDataset(ctx context.Context, d store.DatasetInput) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("dataset id is required")
	}

	query := `
INSERT INTO datasets (dataset_id, name, last_reconstructed)
VALUES ($1, $2, now())
ON CONFLICT (dataset_id) DO UPDATE SET
    name = EXCLUDED.name,
    last_reconstructed = now()
`

	if _, err := c.pool.Exec(ctx, query, d.ID, d.Name); err != nil {
		return fmt.Errorf("upserting dataset: %w", err)
	}
	return nil
}

func (c *Client) UpsertEntry(ctx context.Context, e store.EntryInput) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry id is required")
	}

	query := `
INSERT INTO entries (entry_id, name, entry_type, formula, group_key, dataset_id,
                     total_files, has_input_files, has_output_files, has_scripts, last_reconstructed)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, now())
ON CONFLICT (entry_id) DO UPDATE SET
    name = EXCLUDED.name,
    entry_type = EXCLUDED.entry_type,
    formula = EXCLUDED.formula,
    group_key = EXCLUDED.group_key,
    dataset_id = COALESCE(EXCLUDED.dataset_id, entries.dataset_id),
    total_files = EXCLUDED.total_files,
    has_input_files = EXCLUDED.has_input_files,
    has_output_files = EXCLUDED.has_output_files,
    has_scripts = EXCLUDED.has_scripts,
    last_reconstructed = now()
`

	_, err := c.pool.Exec(ctx, query,
		e.ID,
		e.Name,
		e.EntryType,
		e.Formula,
		e.GroupKey,
		e.DatasetID,
		e.TotalFiles,
		e.HasInputFiles,
		e.HasOutputFiles,
		e.HasScripts,
	)
	if err != nil {
		return fmt.Errorf("upserting entry: %w", err)
	}
	return nil
}
