package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
)

func querySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show node and relationship counts",
		RunE:  runQuerySummary,
	}
}

func runQuerySummary(cmd *cobra.Command, args []string) error {
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

	summary, err := db.Summary(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Datasets:      %d\n", summary.Datasets)
	fmt.Fprintf(os.Stdout, "Entries:       %d\n", summary.Entries)
	fmt.Fprintf(os.Stdout, "Relationships: %d\n", summary.Relationships)

	if len(summary.RelationshipTypes) > 0 {
		types := make([]string, 0, len(summary.RelationshipTypes))
		for relType := range summary.RelationshipTypes {
			types = append(types, relType)
		}
		sort.Strings(types)
		fmt.Fprintln(os.Stdout, "\nRelationship types:")
		for _, relType := range types {
			fmt.Fprintf(os.Stdout, "  %s: %d\n", relType, summary.RelationshipTypes[relType])
		}
	}

	if len(summary.EntryTypes) > 0 {
		types := make([]string, 0, len(summary.EntryTypes))
		for entryType := range summary.EntryTypes {
			types = append(types, entryType)
		}
		sort.Strings(types)
		fmt.Fprintln(os.Stdout, "\nEntry types:")
		for _, entryType := range types {
			label := entryType
			if label == "" {
				label = "(untyped)"
			}
			fmt.Fprintf(os.Stdout, "  %s: %d\n", label, summary.EntryTypes[entryType])
		}
	}

	return nil
}
