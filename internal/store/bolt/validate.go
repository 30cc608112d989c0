package bolt

import (
	"context"
	"fmt"

	"nomadgraph/internal/store"
)

func recordsFromRows(rows []map[string]any) []store.RelationshipRecord {
	records := make([]store.RelationshipRecord, 0, len(rows))
	for _, row := range rows {
		var record store.RelationshipRecord
		record.FromID, _ = row["from_id"].(string)
		record.ToID, _ = row["to_id"].(string)
		record.Type, _ = row["rel_type"].(string)
		record.Confidence, _ = row["confidence"].(float64)
		records = append(records, record)
	}
	return records
}

func (c *Client) InvalidConfidences(ctx context.Context) ([]store.RelationshipRecord, error) {
	rows, err := c.readRows(ctx, `
MATCH (a:Entry)-[r]->(b:Entry)
WHERE r.confidence IS NOT NULL AND (r.confidence < 0 OR r.confidence > 1)
RETURN a.entry_id AS from_id, b.entry_id AS to_id, type(r) AS rel_type, r.confidence AS confidence
`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing invalid confidences: %w", err)
	}
	return recordsFromRows(rows), nil
}

func (c *Client) SelfLoops(ctx context.Context) ([]store.RelationshipRecord, error) {
	rows, err := c.readRows(ctx, `
MATCH (a:Entry)-[r]->(a)
RETURN a.entry_id AS from_id, a.entry_id AS to_id, type(r) AS rel_type, r.confidence AS confidence
`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing self loops: %w", err)
	}
	return recordsFromRows(rows), nil
}

func (c *Client) entryIDsWhere(ctx context.Context, predicate string) ([]string, error) {
	rows, err := c.readRows(ctx, fmt.Sprintf(`
MATCH (e:Entry)
WHERE %s
RETURN e.entry_id AS entry_id
ORDER BY entry_id
`, predicate), nil)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id, ok := row["entry_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (c *Client) EntriesWithoutFormula(ctx context.Context) ([]string, error) {
	ids, err := c.entryIDsWhere(ctx, `e.formula IS NULL OR e.formula = ''`)
	if err != nil {
		return nil, fmt.Errorf("listing entries without formula: %w", err)
	}
	return ids, nil
}

func (c *Client) UntypedEntries(ctx context.Context) ([]string, error) {
	ids, err := c.entryIDsWhere(ctx, `e.entry_type IS NULL OR e.entry_type = ''`)
	if err != nil {
		return nil, fmt.Errorf("listing untyped entries: %w", err)
	}
	return ids, nil
}
