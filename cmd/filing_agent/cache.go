package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/filing-affiliations/internal/config"
	"github.com/jonathan/filing-affiliations/internal/db"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the filing cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show filing cache statistics",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached filings",
	Long:  "Remove expired cached filings, or every cached filing with --all.",
	RunE:  runCacheClear,
}

var cacheClearAll bool

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "Remove every entry, not just expired ones")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func connectStore(ctx context.Context) (*db.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("cache commands require DATABASE_URL to be configured")
	}
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, _, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.FilingCacheStats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Entries:    %d\n", stats.TotalEntries)
	fmt.Fprintf(os.Stdout, "Total size: %.2f MB\n", float64(stats.TotalBytes)/(1024*1024))
	if stats.OldestEntry != nil {
		fmt.Fprintf(os.Stdout, "Oldest:     %s (%.1f days)\n",
			stats.OldestEntry.Format(time.RFC3339), time.Since(*stats.OldestEntry).Hours()/24)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, cfg, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var removed int64
	if cacheClearAll {
		removed, err = store.ClearAllFilings(ctx)
	} else {
		ttl := time.Duration(cfg.CacheTTLDays) * 24 * time.Hour
		removed, err = store.ClearExpiredFilings(ctx, ttl)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Removed %d entries\n", removed)
	return nil
}
