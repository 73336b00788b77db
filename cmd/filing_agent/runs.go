package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/filing-affiliations/internal/export"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved search runs",
	RunE:  runRunsList,
}

var runsExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a saved run's matches to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsExport,
}

var (
	runsLimit        int
	runsExportOutput string
)

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum runs to list")
	runsExportCmd.Flags().StringVarP(&runsExportOutput, "output", "o", "matches.csv", "Output CSV path")

	runsCmd.AddCommand(runsExportCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, _, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListSearchRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No saved runs")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(os.Stdout, "%s  %-10s  %4d matches  %s  %s\n",
			run.ID, run.Status, run.MatchCount,
			run.CreatedAt.Format("2006-01-02 15:04"), run.Description)
	}
	return nil
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", args[0], err)
	}

	ctx := context.Background()
	store, _, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetSearchRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}

	matches, err := store.ListMatches(ctx, runID)
	if err != nil {
		return err
	}
	if err := export.WriteCSVFile(runsExportOutput, matches); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %d matches to %s\n", len(matches), runsExportOutput)
	return nil
}
