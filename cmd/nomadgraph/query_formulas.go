package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nomadgraph/internal/config"
	"nomadgraph/internal/formula"
)

func queryFormulasCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "formulas",
		Short: "Show the most common formulas in the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryFormulas(limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum number of formulas")
	return cmd
}

func runQueryFormulas(limit int) error {
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

	counts, err := db.FormulaCounts(ctx, limit)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Fprintln(os.Stdout, "No formulas found.")
		return nil
	}

	for _, count := range counts {
		composition := formula.Parse(count.Formula)
		detail := ""
		if element := composition.PrimaryElement(); element != "" {
			detail = fmt.Sprintf("  primary %s, %d atoms", element, composition.TotalAtoms())
			if family := formula.FamilyOf(element); family != nil {
				detail += fmt.Sprintf(", %s", family.Name)
			}
		}
		fmt.Fprintf(os.Stdout, "%-12s %4d%s\n", count.Formula, count.Count, detail)
	}
	return nil
}
