package bolt

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func (c *Client) deleteReturningCount(ctx context.Context, query string, params map[string]any) (int64, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			value, _ := res.Record().Get("deleted")
			if count, ok := value.(int64); ok {
				return count, nil
			}
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return int64(0), nil
	})
	if err != nil {
		return 0, err
	}

	return result.(int64), nil
}

// ClearDataset removes one dataset node and every entry it contains,
// together with all their edges.
func (c *Client) ClearDataset(ctx context.Context, datasetID string) (int64, error) {
	query := `
MATCH (d:Dataset {dataset_id: $dataset_id})
OPTIONAL MATCH (d)-[:CONTAINS]->(e:Entry)
DETACH DELETE d, e
RETURN count(e) AS deleted
`

	count, err := c.deleteReturningCount(ctx, query, map[string]any{"dataset_id": datasetID})
	if err != nil {
		return 0, fmt.Errorf("clearing dataset: %w", err)
	}
	return count, nil
}

// ClearAll removes every dataset and entry node. Callers gate this behind
// explicit confirmation; the store itself does not ask.
func (c *Client) ClearAll(ctx context.Context) (int64, error) {
	query := `
MATCH (n)
WHERE n:Dataset OR n:Entry
DETACH DELETE n
RETURN count(n) AS deleted
`

	count, err := c.deleteReturningCount(ctx, query, nil)
	if err != nil {
		return 0, fmt.Errorf("clearing graph: %w", err)
	}
	return count, nil
}
