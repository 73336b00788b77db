// Package main provides the entry point for the filing affiliation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filing_agent",
	Short: "SEC filing affiliation search",
	Long:  "filing_agent downloads SEC filings, extracts director and officer biographies, and reports each person's affiliations with the configured organizations.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
