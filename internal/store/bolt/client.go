package bolt

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"nomadgraph/internal/store"
)

var _ store.Store = (*Client)(nil)

type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

func New(ctx context.Context, uri, username, password, database string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verifying neo4j connectivity: %w", err)
	}

	return &Client{driver: driver, database: database}, nil
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	return c.driver.Close(ctx)
}

func (c *Client) EnsureIndexes(ctx context.Context) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	statements := []string{
		`CREATE CONSTRAINT dataset_unique_id IF NOT EXISTS
FOR (d:Dataset) REQUIRE d.dataset_id IS UNIQUE`,
		`CREATE CONSTRAINT entry_unique_id IF NOT EXISTS
FOR (e:Entry) REQUIRE e.entry_id IS UNIQUE`,
		`CREATE INDEX entry_formula IF NOT EXISTS FOR (e:Entry) ON (e.formula)`,
		`CREATE INDEX entry_type IF NOT EXISTS FOR (e:Entry) ON (e.entry_type)`,
		`CREATE INDEX entry_group_key IF NOT EXISTS FOR (e:Entry) ON (e.group_key)`,
	}

	for _, stmt := range statements {
		if _, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx, stmt, nil)
			return nil, err
		}); err != nil {
			return fmt.Errorf("ensuring indexes: %w", err)
		}
	}

	return nil
}
