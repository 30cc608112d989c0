package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"

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

// CreateRelationship inserts a new edge row unconditionally.
func (c *Client) CreateRelationship(ctx context.Context, r store.RelationshipInput) error {
	if err := validateRelationship(r); err != nil {
		return err
	}

	query := `
INSERT INTO relationships (from_id, to_id, rel_type, confidence, reasoning, provenance, run_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

	_, err := c.pool.Exec(ctx, query,
		r.FromID, r.ToID, r.Type, r.Confidence, r.Reasoning, r.Provenance, r.RunID)
	if err != nil {
		return fmt.Errorf("creating relationship: %w", err)
	}
	return nil
}

// MergeRelationship inserts an edge row only when no row with the same
// (from, to, type) triple exists, reporting whether a row was written.
func (c *Client) MergeRelationship(ctx context.Context, r store.RelationshipInput) (bool, error) {
	if err := validateRelationship(r); err != nil {
		return false, err
	}

	query := `
INSERT INTO relationships (from_id, to_id, rel_type, confidence, reasoning, provenance, run_id)
SELECT $1, $2, $3, $4, $5, $6, $7
WHERE NOT EXISTS (
    SELECT 1 FROM relationships
    WHERE from_id = $1 AND to_id = $2 AND rel_type = $3
)
`

	tag, err := c.pool.Exec(ctx, query,
		r.FromID, r.ToID, r.Type, r.Confidence, r.Reasoning, r.Provenance, r.RunID)
	if err != nil {
		return false, fmt.Errorf("merging relationship: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
