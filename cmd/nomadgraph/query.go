package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the reconstructed graph from the CLI",
	}
	cmd.AddCommand(querySummaryCmd())
	cmd.AddCommand(queryFormulasCmd())
	cmd.AddCommand(queryRelationsCmd())
	return cmd
}
