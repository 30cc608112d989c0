package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
)

func queryRelationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relationships <entry-id>",
		Aliases: []string{"relations"},
		Short:   "List the relationships touching one entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryRelations(args[0])
		},
	}
	return cmd
}

func runQueryRelations(entryID string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	records, err := db.EntryRelationships(ctx, entryID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No relationships found.")
		return nil
	}

	for _, record := range records {
		arrow := "->"
		if record.Direction == "in" {
			arrow = "<-"
		}
		fmt.Fprintf(os.Stdout, "%s %s %s [%s, confidence %.2f]\n",
			record.FromID, arrow, record.ToID, record.Type, record.Confidence)
		if record.Reasoning != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", record.Reasoning)
		}
	}
	return nil
}
