package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
)

func clearCmd() *cobra.Command {
	var datasetID string
	var all bool
	var confirm bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove reconstructed data from the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(datasetID, all, confirm)
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset to remove")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every dataset and entry")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Actually delete; without it nothing is touched")
	return cmd
}

func runClear(datasetID string, all, confirm bool) error {
	if datasetID == "" && !all {
		return fmt.Errorf("either --dataset or --all is required")
	}
	if datasetID != "" && all {
		return fmt.Errorf("--dataset and --all are mutually exclusive")
	}
	if !confirm {
		return fmt.Errorf("refusing to delete without --confirm")
	}

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

	if all {
		removed, err := db.ClearAll(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Removed %d nodes.\n", removed)
		return nil
	}

	removed, err := db.ClearDataset(ctx, datasetID)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Removed dataset %s (%d entries).\n", datasetID, removed)
	return nil
}
