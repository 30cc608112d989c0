package postgres

import (
	"context"
	"fmt"

	"nomadgraph/internal/store"
)

func (c *Client) relationshipsWhere(ctx context.Context, predicate string) ([]store.RelationshipRecord, error) {
	rows, err := c.pool.Query(ctx, fmt.Sprintf(`
SELECT from_id, to_id, rel_type, confidence
FROM relationships
WHERE %s
ORDER BY id
`, predicate))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]store.RelationshipRecord, 0)
	for rows.Next() {
		var record store.RelationshipRecord
		if err := rows.Scan(&record.FromID, &record.ToID, &record.Type, &record.Confidence); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (c *Client) InvalidConfidences(ctx context.Context) ([]store.RelationshipRecord, error) {
	records, err := c.relationshipsWhere(ctx, `confidence < 0 OR confidence > 1`)
	if err != nil {
		return nil, fmt.Errorf("listing invalid confidences: %w", err)
	}
	return records, nil
}

func (c *Client) SelfLoops(ctx context.Context) ([]store.RelationshipRecord, error) {
	records, err := c.relationshipsWhere(ctx, `from_id = to_id`)
	if err != nil {
		return nil, fmt.Errorf("listing self loops: %w", err)
	}
	return records, nil
}

func (c *Client) entryIDsWhere(ctx context.Context, predicate string) ([]string, error) {
	rows, err := c.pool.Query(ctx, fmt.Sprintf(`
SELECT entry_id FROM entries WHERE %s ORDER BY entry_id
`, predicate))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *Client) EntriesWithoutFormula(ctx context.Context) ([]string, error) {
	ids, err := c.entryIDsWhere(ctx, `formula = ''`)
	if err != nil {
		return nil, fmt.Errorf("listing entries without formula: %w", err)
	}
	return ids, nil
}

func (c *Client) UntypedEntries(ctx context.Context) ([]string, error) {
	ids, err := c.entryIDsWhere(ctx, `entry_type = ''`)
	if err != nil {
		return nil, fmt.Errorf("listing untyped entries: %w", err)
	}
	return ids, nil
}
