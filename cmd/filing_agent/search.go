package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/filing-affiliations/internal/affiliation"
	"github.com/jonathan/filing-affiliations/internal/config"
	"github.com/jonathan/filing-affiliations/internal/db"
	"github.com/jonathan/filing-affiliations/internal/edgar"
	"github.com/jonathan/filing-affiliations/internal/export"
	"github.com/jonathan/filing-affiliations/internal/ner"
	"github.com/jonathan/filing-affiliations/internal/observability"
	"github.com/jonathan/filing-affiliations/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search company filings for affiliations",
	Long:  "Search the filings of one or more companies for organization affiliations and write the matches to CSV.",
	RunE:  runSearch,
}

var (
	searchTicker      string
	searchTargetsFile string
	searchConfigFile  string
	searchOutput      string
	searchConcurrency int
	searchUseNER      bool
	searchSave        bool
	searchVerbose     bool
)

func init() {
	searchCmd.Flags().StringVar(&searchConfigFile, "config", "", "Path to JSON config file with flag defaults")
	searchCmd.Flags().StringVarP(&searchTicker, "ticker", "t", "", "Single ticker symbol to search")
	searchCmd.Flags().StringVarP(&searchTargetsFile, "targets", "f", "", "Path to JSON targets file")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "matches.csv", "Output CSV path")
	searchCmd.Flags().IntVarP(&searchConcurrency, "concurrency", "c", search.DefaultConcurrency, "Companies searched in parallel")
	searchCmd.Flags().BoolVar(&searchUseNER, "use-ner", false, "Use model-backed name extraction (requires GEMINI_API_KEY)")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "Persist the run and matches to the database (requires DATABASE_URL)")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print per-filing progress")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchConfigFile != "" {
		fileCfg, err := config.LoadFile(searchConfigFile)
		if err != nil {
			return err
		}
		applyFileConfig(cmd, fileCfg)
	}

	if searchTicker == "" && searchTargetsFile == "" {
		return fmt.Errorf("either --ticker or --targets must be provided")
	}
	if searchTicker != "" && searchTargetsFile != "" {
		return fmt.Errorf("--ticker and --targets are mutually exclusive; provide only one")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var targets []config.Target
	if searchTicker != "" {
		targets = []config.Target{{Ticker: searchTicker}}
	} else {
		targets, err = config.LoadTargets(searchTargetsFile)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()

	client, err := edgar.NewClient(cfg.UserAgent())
	if err != nil {
		return err
	}

	scanner, closeScanner, err := buildScanner(ctx, cfg, searchUseNER)
	if err != nil {
		return err
	}
	defer closeScanner()

	var store *db.DB
	if cfg.DatabaseURL != "" {
		store, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
	} else if searchSave {
		return fmt.Errorf("--save requires DATABASE_URL to be configured")
	}

	opts := search.Options{
		CacheTTL:    time.Duration(cfg.CacheTTLDays) * 24 * time.Hour,
		Concurrency: searchConcurrency,
	}
	if searchVerbose {
		opts.OnProgress = func(e search.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Ticker, e.Message)
		}
	}

	var filingStore search.FilingStore
	if store != nil {
		filingStore = store
	}
	searcher := search.New(client, scanner, filingStore, opts)

	results, err := searcher.SearchAll(ctx, targets)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	failed := 0
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Ticker, r.Err)
		}
		if searchVerbose {
			printer.PrintCompanyResult(r)
		} else if r.Err == nil {
			fmt.Fprintf(os.Stdout, "%s: %d matches from %d filings (%d skipped)\n",
				r.Ticker, len(r.Matches), r.FilingsScanned, r.FilingsSkipped)
		}
	}

	matches := search.MergeMatches(results)
	if searchVerbose {
		printer.PrintMatchSummary(matches)
	}
	if err := export.WriteCSVFile(searchOutput, matches); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %d matches to %s\n", len(matches), searchOutput)

	if searchSave {
		if err := saveRun(ctx, store, targets, matches); err != nil {
			return err
		}
	}

	if failed == len(results) {
		return fmt.Errorf("all %d companies failed", failed)
	}
	return nil
}

// applyFileConfig fills in flags the user did not set explicitly from the
// config file. Explicit flags always win.
func applyFileConfig(cmd *cobra.Command, fileCfg *config.FileConfig) {
	flags := cmd.Flags()

	if !flags.Changed("targets") && fileCfg.Targets != "" {
		searchTargetsFile = fileCfg.Targets
	}
	if !flags.Changed("output") && fileCfg.Output != "" {
		searchOutput = fileCfg.Output
	}
	if !flags.Changed("concurrency") && fileCfg.Concurrency > 0 {
		searchConcurrency = fileCfg.Concurrency
	}
	if !flags.Changed("use-ner") {
		searchUseNER = searchUseNER || fileCfg.UseNER
	}
	if !flags.Changed("save") {
		searchSave = searchSave || fileCfg.Save
	}
	if !flags.Changed("verbose") {
		searchVerbose = searchVerbose || fileCfg.Verbose
	}
}

// buildScanner assembles the scanner, optionally with the model-backed name
// extractor. The returned func releases the extractor's client.
func buildScanner(ctx context.Context, cfg *config.Config, useNER bool) (*affiliation.Scanner, func(), error) {
	noop := func() {}

	if !useNER {
		scanner, err := affiliation.NewScanner(affiliation.DefaultConfig())
		return scanner, noop, err
	}

	if cfg.GeminiAPIKey == "" {
		return nil, noop, fmt.Errorf("--use-ner requires GEMINI_API_KEY to be configured")
	}
	extractor, err := ner.NewGeminiExtractor(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, noop, err
	}

	scanner, err := affiliation.NewScanner(affiliation.DefaultConfig(), affiliation.WithExtractor(extractor))
	if err != nil {
		_ = extractor.Close()
		return nil, noop, err
	}
	return scanner, func() { _ = extractor.Close() }, nil
}

func saveRun(ctx context.Context, store *db.DB, targets []config.Target, matches []affiliation.Match) error {
	description := fmt.Sprintf("%d targets", len(targets))
	if len(targets) == 1 {
		description = targets[0].Ticker
	}

	runID, err := store.CreateSearchRun(ctx, description)
	if err != nil {
		return err
	}
	if err := store.SaveMatches(ctx, runID, matches); err != nil {
		_ = store.CompleteSearchRun(ctx, runID, db.RunStatusFailed, 0)
		return err
	}
	if err := store.CompleteSearchRun(ctx, runID, db.RunStatusCompleted, len(matches)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved run %s\n", runID)
	return nil
}
