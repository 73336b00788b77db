package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/filing-affiliations/internal/affiliation"
	"github.com/jonathan/filing-affiliations/internal/export"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a local filing document",
	Long:  "Scan a filing document already on disk, without touching EDGAR, and print the affiliations found in it.",
	RunE:  runScan,
}

var (
	scanFile   string
	scanOutput string
)

func init() {
	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "Path to the filing document (HTML or XML)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Optional CSV output path; default prints to stdout")

	_ = scanCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(scanFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", scanFile, err)
	}

	scanner, err := affiliation.NewScanner(affiliation.DefaultConfig())
	if err != nil {
		return err
	}

	matches, err := scanner.ScanFiling(context.Background(), string(data), nil)
	if err != nil {
		return err
	}
	matches = affiliation.Deduplicate(matches)

	if scanOutput != "" {
		if err := export.WriteCSVFile(scanOutput, matches); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d matches to %s\n", len(matches), scanOutput)
		return nil
	}

	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%s\n", m.PersonName, m.Type, m.Confidence, m.Organization)
	}
	return nil
}
