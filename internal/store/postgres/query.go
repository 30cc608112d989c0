package postgres

import (
	"context"
	"fmt"

	"nomadgraph/internal/store"
)

func (c *Client) Summary(ctx context.Context) (*store.GraphSummary, error) {
	summary := &store.GraphSummary{
		RelationshipTypes: make(map[string]int64),
		EntryTypes:        make(map[string]int64),
	}

	row := c.pool.QueryRow(ctx, `
SELECT (SELECT count(*) FROM datasets),
       (SELECT count(*) FROM entries),
       (SELECT count(*) FROM relationships)
`)
	if err := row.Scan(&summary.Datasets, &summary.Entries, &summary.Relationships); err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}

	relRows, err := c.pool.Query(ctx, `
SELECT rel_type, count(*) FROM relationships GROUP BY rel_type
`)
	if err != nil {
		return nil, fmt.Errorf("counting relationship types: %w", err)
	}
	defer relRows.Close()
	for relRows.Next() {
		var relType string
		var total int64
		if err := relRows.Scan(&relType, &total); err != nil {
			return nil, fmt.Errorf("scanning relationship type: %w", err)
		}
		summary.RelationshipTypes[relType] = total
	}
	if err := relRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relationship types: %w", err)
	}

	typeRows, err := c.pool.Query(ctx, `
SELECT entry_type, count(*) FROM entries GROUP BY entry_type
`)
	if err != nil {
		return nil, fmt.Errorf("counting entry types: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var entryType string
		var total int64
		if err := typeRows.Scan(&entryType, &total); err != nil {
			return nil, fmt.Errorf("scanning entry type: %w", err)
		}
		summary.EntryTypes[entryType] = total
	}
	if err := typeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry types: %w", err)
	}

	return summary, nil
}

func (c *Client) FormulaCounts(ctx context.Context, limit int) ([]store.FormulaCount, error) {
	rows, err := c.pool.Query(ctx, `
SELECT formula, count(*) AS total
FROM entries
WHERE formula <> ''
GROUP BY formula
ORDER BY total DESC, formula
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("counting formulas: %w", err)
	}
	defer rows.Close()

	counts := make([]store.FormulaCount, 0)
	for rows.Next() {
		var fc store.FormulaCount
		if err := rows.Scan(&fc.Formula, &fc.Count); err != nil {
			return nil, fmt.Errorf("scanning formula count: %w", err)
		}
		counts = append(counts, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating formula counts: %w", err)
	}

	return counts, nil
}

func (c *Client) EntryRelationships(ctx context.Context, entryID string) ([]store.RelationshipRecord, error) {
	rows, err := c.pool.Query(ctx, `
SELECT from_id, to_id, rel_type, confidence, reasoning, provenance, run_id,
       CASE WHEN from_id = $1 THEN 'out' ELSE 'in' END AS direction
FROM relationships
WHERE from_id = $1 OR to_id = $1
ORDER BY id
`, entryID)
	if err != nil {
		return nil, fmt.Errorf("listing entry relationships: %w", err)
	}
	defer rows.Close()

	records := make([]store.RelationshipRecord, 0)
	for rows.Next() {
		var record store.RelationshipRecord
		err := rows.Scan(
			&record.FromID,
			&record.ToID,
			&record.Type,
			&record.Confidence,
			&record.Reasoning,
			&record.Provenance,
			&record.RunID,
			&record.Direction,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relationships: %w", err)
	}

	return records, nil
}
