package bolt

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"nomadgraph/internal/store"
)

var relTypePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

func validateRelationship(r store.RelationshipInput) error {
	if strings.TrimSpace(r.Type) == "" || !relTypePattern.MatchString(r.Type) {
		return fmt.Errorf("invalid relationship type: %s", r.Type)
	}
	if r.FromID == r.ToID {
		return fmt.Errorf("self-loop rejected for entry %s", r.FromID)
	}
	return nil
}

func relationshipParams(r store.RelationshipInput) map[string]any {
	return map[string]any{
		"from_id":    r.FromID,
		"to_id":      r.ToID,
		"confidence": r.Confidence,
		"reasoning":  r.Reasoning,
		"provenance": r.Provenance,
		"run_id":     r.RunID,
	}
}

// CreateRelationship writes a new edge unconditionally. Re-running a
// reconstruction with additive edges duplicates the triple at the store
// level, which the model tolerates.
func (c *Client) CreateRelationship(ctx context.Context, r store.RelationshipInput) error {
	if err := validateRelationship(r); err != nil {
		return err
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
MATCH (a:Entry {entry_id: $from_id})
MATCH (b:Entry {entry_id: $to_id})
CREATE (a)-[r:%s]->(b)
SET r.confidence = $confidence,
    r.reasoning = $reasoning,
    r.provenance = $provenance,
    r.run_id = $run_id,
    r.created = datetime()
`, r.Type)

	if _, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, relationshipParams(r))
		return nil, err
	}); err != nil {
		return fmt.Errorf("creating relationship: %w", err)
	}

	return nil
}

// MergeRelationship writes an edge only when no edge with the same
// (from, to, type) triple exists yet. It reports whether a new edge was
// created; an existing triple keeps its original properties.
func (c *Client) MergeRelationship(ctx context.Context, r store.RelationshipInput) (bool, error) {
	if err := validateRelationship(r); err != nil {
		return false, err
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
MATCH (a:Entry {entry_id: $from_id})
MATCH (b:Entry {entry_id: $to_id})
MERGE (a)-[r:%s]->(b)
ON CREATE SET r.confidence = $confidence,
    r.reasoning = $reasoning,
    r.provenance = $provenance,
    r.run_id = $run_id,
    r.created = datetime()
`, r.Type)

	created, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, relationshipParams(r))
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		return summary.Counters().RelationshipsCreated() > 0, nil
	})
	if err != nil {
		return false, fmt.Errorf("merging relationship: %w", err)
	}

	return created.(bool), nil
}
