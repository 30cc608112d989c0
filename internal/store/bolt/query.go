package bolt

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"nomadgraph/internal/store"
)

func (c *Client) readRows(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, 0)
		for res.Next(ctx) {
			record := res.Record()
			row := make(map[string]any, len(record.Keys))
			for _, key := range record.Keys {
				value, _ := record.Get(key)
				row[key] = value
			}
			rows = append(rows, row)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]map[string]any), nil
}

func (c *Client) Summary(ctx context.Context) (*store.GraphSummary, error) {
	counts, err := c.readRows(ctx, `
MATCH (d:Dataset)
WITH count(d) AS datasets
OPTIONAL MATCH (e:Entry)
RETURN datasets, count(e) AS entries
`, nil)
	if err != nil {
		return nil, fmt.Errorf("counting nodes: %w", err)
	}

	summary := &store.GraphSummary{
		RelationshipTypes: make(map[string]int64),
		EntryTypes:        make(map[string]int64),
	}
	if len(counts) > 0 {
		summary.Datasets, _ = counts[0]["datasets"].(int64)
		summary.Entries, _ = counts[0]["entries"].(int64)
	}

	relRows, err := c.readRows(ctx, `
MATCH (:Entry)-[r]->(:Entry)
RETURN type(r) AS rel_type, count(r) AS total
`, nil)
	if err != nil {
		return nil, fmt.Errorf("counting relationships: %w", err)
	}
	for _, row := range relRows {
		relType, _ := row["rel_type"].(string)
		total, _ := row["total"].(int64)
		summary.RelationshipTypes[relType] = total
		summary.Relationships += total
	}

	typeRows, err := c.readRows(ctx, `
MATCH (e:Entry)
RETURN coalesce(e.entry_type, '') AS entry_type, count(e) AS total
`, nil)
	if err != nil {
		return nil, fmt.Errorf("counting entry types: %w", err)
	}
	for _, row := range typeRows {
		entryType, _ := row["entry_type"].(string)
		total, _ := row["total"].(int64)
		summary.EntryTypes[entryType] = total
	}

	return summary, nil
}

func (c *Client) FormulaCounts(ctx context.Context, limit int) ([]store.FormulaCount, error) {
	rows, err := c.readRows(ctx, `
MATCH (e:Entry)
WHERE e.formula IS NOT NULL AND e.formula <> ''
RETURN e.formula AS formula, count(e) AS total
ORDER BY total DESC, formula
LIMIT $limit
`, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("counting formulas: %w", err)
	}

	counts := make([]store.FormulaCount, 0, len(rows))
	for _, row := range rows {
		formula, _ := row["formula"].(string)
		total, _ := row["total"].(int64)
		counts = append(counts, store.FormulaCount{Formula: formula, Count: total})
	}
	return counts, nil
}

func (c *Client) EntryRelationships(ctx context.Context, entryID string) ([]store.RelationshipRecord, error) {
	rows, err := c.readRows(ctx, `
MATCH (a:Entry {entry_id: $entry_id})-[r]->(b:Entry)
RETURN a.entry_id AS from_id, b.entry_id AS to_id, type(r) AS rel_type,
       r.confidence AS confidence, r.reasoning AS reasoning,
       r.provenance AS provenance, r.run_id AS run_id, 'out' AS direction
UNION ALL
MATCH (a:Entry {entry_id: $entry_id})<-[r]-(b:Entry)
RETURN b.entry_id AS from_id, a.entry_id AS to_id, type(r) AS rel_type,
       r.confidence AS confidence, r.reasoning AS reasoning,
       r.provenance AS provenance, r.run_id AS run_id, 'in' AS direction
`, map[string]any{"entry_id": entryID})
	if err != nil {
		return nil, fmt.Errorf("listing entry relationships: %w", err)
	}

	records := make([]store.RelationshipRecord, 0, len(rows))
	for _, row := range rows {
		var record store.RelationshipRecord
		record.FromID, _ = row["from_id"].(string)
		record.ToID, _ = row["to_id"].(string)
		record.Type, _ = row["rel_type"].(string)
		record.Confidence, _ = row["confidence"].(float64)
		record.Reasoning, _ = row["reasoning"].(string)
		record.Provenance, _ = row["provenance"].(string)
		record.RunID, _ = row["run_id"].(string)
		record.Direction, _ = row["direction"].(string)
		records = append(records, record)
	}
	return records, nil
}
