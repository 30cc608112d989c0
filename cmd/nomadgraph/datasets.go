package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
)

func datasetsCmd() *cobra.Command {
	var max int
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List datasets available in the archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasets(max)
		},
	}
	cmd.Flags().IntVar(&max, "max", 50, "Maximum number of datasets to list")
	return cmd
}

func runDatasets(max int) error {
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

	remote := openRemote(cfg, logger)

	datasets, err := remote.ListDatasets(ctx, max)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		fmt.Fprintln(os.Stdout, "No datasets found.")
		return nil
	}

	for _, dataset := range datasets {
		name := dataset.DatasetName
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(os.Stdout, "%s  %s  (%d entries)\n", dataset.DatasetID, name, dataset.EntryCount)
	}
	return nil
}
