package main

import (
	"context"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
	"nomadgraph/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	remote := openRemote(cfg, logger)

	server := mcp.NewServer(cfg, remote, db, logger, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
