package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
	"nomadgraph/internal/reconstruct"
)

func reconstructCmd() *cobra.Command {
	var strategy string
	var maxEntries int
	var sampleThreshold int
	var additive bool
	cmd := &cobra.Command{
		Use:   "reconstruct <identifier>",
		Short: "Extract a dataset and persist its inferred workflow graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconstruct(args[0], strategy, maxEntries, sampleThreshold, additive)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", string(reconstruct.StrategyDatasetID),
		"Addressing strategy: dataset_id, upload_id, or upload_name")
	cmd.Flags().IntVar(&maxEntries, "max-entries", 0, "Hard cap on extracted entries (0 uses sampling rules)")
	cmd.Flags().IntVar(&sampleThreshold, "sample-threshold", 0, "Override the configured sampling threshold (0 keeps config)")
	cmd.Flags().BoolVar(&additive, "additive", false, "Write duplicate edges instead of merging by triple")
	return cmd
}

func runReconstruct(identifier, strategy string, maxEntries, sampleThreshold int, additive bool) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}
	if sampleThreshold > 0 {
		cfg.Extraction.SampleThreshold = sampleThreshold
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

	summary, err := reconstruct.Run(ctx, cfg, remote, db, logger, reconstruct.Options{
		Identifier:    identifier,
		Strategy:      reconstruct.Strategy(strategy),
		MaxEntries:    maxEntries,
		AdditiveEdges: additive,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Reconstruction complete.")
	fmt.Fprintf(os.Stdout, "  Run id:                %s\n", summary.RunID)
	fmt.Fprintf(os.Stdout, "  Entries processed:     %d\n", summary.EntriesProcessed)
	fmt.Fprintf(os.Stdout, "  Entries skipped:       %d\n", summary.EntriesSkipped)
	fmt.Fprintf(os.Stdout, "  Groups:                %d\n", summary.Groups)
	fmt.Fprintf(os.Stdout, "  Relationships created: %d\n", summary.RelationshipsCreated)
	fmt.Fprintf(os.Stdout, "  Relationships merged:  %d\n", summary.RelationshipsSkipped)
	fmt.Fprintf(os.Stdout, "  Relationships failed:  %d\n", summary.RelationshipsFailed)
	if summary.Sampled {
		fmt.Fprintf(os.Stdout, "  Sampled: extraction capped (estimated total %d)\n",
			summary.Retrieval.TotalEstimated)
	}

	if len(summary.EntryTypes) > 0 {
		types := make([]string, 0, len(summary.EntryTypes))
		for entryType := range summary.EntryTypes {
			types = append(types, entryType)
		}
		sort.Strings(types)
		fmt.Fprintln(os.Stdout, "  Entry types:")
		for _, entryType := range types {
			label := entryType
			if label == "" {
				label = "(untyped)"
			}
			fmt.Fprintf(os.Stdout, "    %s: %d\n", label, summary.EntryTypes[entryType])
		}
	}

	if len(summary.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(summary.Errors))
		for _, item := range summary.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
	}

	return nil
}
