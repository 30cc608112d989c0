package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
	"nomadgraph/internal/store/bolt"
	"nomadgraph/internal/store/postgres"
	"nomadgraph/internal/validate"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run consistency checks against the graph",
		RunE:  runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	var checker validate.GraphValidator
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		client, err := postgres.New(ctx, cfg.Store.DSN)
		if err != nil {
			return err
		}
		defer client.Close(ctx)
		checker = client
	default:
		client, err := bolt.New(ctx, cfg.Store.URI, cfg.Store.Username, cfg.Store.Password, cfg.Store.Database)
		if err != nil {
			return err
		}
		defer client.Close(ctx)
		checker = client
	}

	report, err := validate.Run(ctx, checker)
	if err != nil {
		return err
	}

	var errorIssues []validate.Issue
	var warnIssues []validate.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case validate.SeverityError:
			errorIssues = append(errorIssues, issue)
		case validate.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(out *os.File, issues []validate.Issue) {
	for _, issue := range issues {
		location := issue.EntryID
		if issue.RelType != "" {
			if location != "" {
				location = fmt.Sprintf("%s [%s]", location, issue.RelType)
			} else {
				location = issue.RelType
			}
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
