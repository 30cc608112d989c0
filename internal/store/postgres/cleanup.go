package postgres

import (
	"context"
	"fmt"
)

// ClearDataset removes one dataset row and its entries. Edge rows go with
// the entries through the cascade.
func (c *Client) ClearDataset(ctx context.Context, datasetID string) (int64, error) {
	entries, err := c.pool.Exec(ctx, `DELETE FROM entries WHERE dataset_id = $1`, datasetID)
	if err != nil {
		return 0, fmt.Errorf("clearing dataset entries: %w", err)
	}
	if _, err := c.pool.Exec(ctx, `DELETE FROM datasets WHERE dataset_id = $1`, datasetID); err != nil {
		return 0, fmt.Errorf("clearing dataset: %w", err)
	}
	return entries.RowsAffected(), nil
}

// ClearAll removes every dataset and entry row. Callers gate this behind
// explicit confirmation; the store itself does not ask.
func (c *Client) ClearAll(ctx context.Context) (int64, error) {
	entries, err := c.pool.Exec(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("clearing entries: %w", err)
	}
	datasets, err := c.pool.Exec(ctx, `DELETE FROM datasets`)
	if err != nil {
		return 0, fmt.Errorf("clearing datasets: %w", err)
	}
	return entries.RowsAffected() + datasets.RowsAffected(), nil
}
