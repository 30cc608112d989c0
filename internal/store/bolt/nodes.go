package bolt

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"nomadgraph/internal/store"
)

func (c *Client) UpsertDataset(ctx context.Context, d store.DatasetInput) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("dataset id is required")
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	query := `
MERGE (d:Dataset {dataset_id: $dataset_id})
SET d.name = $name,
    d.last_reconstructed = datetime()
`

	params := map[string]any{
		"dataset_id": d.ID,
		"name":       d.Name,
	}

	if _, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, params)
		return nil, err
	}); err != nil {
		return fmt.Errorf("upserting dataset: %w", err)
	}

	return nil
}

func (c *Client) UpsertEntry(ctx context.Context, e store.EntryInput) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry id is required")
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	query := `
MERGE (e:Entry {entry_id: $entry_id})
SET e.name = $name,
    e.entry_type = $entry_type,
    e.formula = $formula,
    e.group_key = $group_key,
    e.total_files = $total_files,
    e.has_input_files = $has_input_files,
    e.has_output_files = $has_output_files,
    e.has_scripts = $has_scripts,
    e.last_reconstructed = datetime()
`

	params := map[string]any{
		"entry_id":         e.ID,
		"name":             e.Name,
		"entry_type":       e.EntryType,
		"formula":          e.Formula,
		"group_key":        e.GroupKey,
		"total_files":      e.TotalFiles,
		"has_input_files":  e.HasInputFiles,
		"has_output_files": e.HasOutputFiles,
		"has_scripts":      e.HasScripts,
	}

	if e.DatasetID != "" {
		query += `
WITH e
MERGE (d:Dataset {dataset_id: $dataset_id})
MERGE (d)-[:CONTAINS]->(e)
`
		params["dataset_id"] = e.DatasetID
	}

	if _, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, params)
		return nil, err
	}); err != nil {
		return fmt.Errorf("upserting entry: %w", err)
	}

	return nil
}
