package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetFiling retrieves a cached filing by accession number. Expired entries
// are deleted on read and reported as a miss. A miss is (nil, nil).
func (db *DB) GetFiling(ctx context.Context, accessionNumber string, ttl time.Duration) (*CachedFiling, error) {
	if ttl <= 0 {
		ttl = DefaultFilingTTL
	}

	var f CachedFiling
	err := db.pool.QueryRow(ctx,
		`SELECT accession_number, content, size, downloaded_at
		 FROM cached_filings WHERE accession_number = $1`,
		accessionNumber,
	).Scan(&f.AccessionNumber, &f.Content, &f.Size, &f.DownloadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached filing: %w", err)
	}

	if time.Since(f.DownloadedAt) > ttl {
		_, err := db.pool.Exec(ctx,
			`DELETE FROM cached_filings WHERE accession_number = $1`, accessionNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to evict expired filing: %w", err)
		}
		return nil, nil
	}
	return &f, nil
}

// PutFiling stores a filing, replacing any previous entry for the same
// accession number.
func (db *DB) PutFiling(ctx context.Context, accessionNumber, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO cached_filings (accession_number, content, size, downloaded_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (accession_number) DO UPDATE SET
		     content = $2, size = $3, downloaded_at = NOW()`,
		accessionNumber, content, len(content),
	)
	if err != nil {
		return fmt.Errorf("failed to cache filing: %w", err)
	}
	return nil
}

// HasFiling reports whether a non-expired entry exists for the accession
// number.
func (db *DB) HasFiling(ctx context.Context, accessionNumber string, ttl time.Duration) (bool, error) {
	f, err := db.GetFiling(ctx, accessionNumber, ttl)
	if err != nil {
		return false, err
	}
	return f != nil, nil
}

// ClearExpiredFilings removes entries older than the TTL and returns how many
// were removed.
func (db *DB) ClearExpiredFilings(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		ttl = DefaultFilingTTL
	}
	result, err := db.pool.Exec(ctx,
		`DELETE FROM cached_filings WHERE downloaded_at < $1`,
		time.Now().Add(-ttl),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired filings: %w", err)
	}
	return result.RowsAffected(), nil
}

// ClearAllFilings empties the cache and returns how many entries were removed.
func (db *DB) ClearAllFilings(ctx context.Context) (int64, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM cached_filings`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear filing cache: %w", err)
	}
	return result.RowsAffected(), nil
}

// FilingCacheStats reports entry count, total content size, and the oldest
// entry's timestamp.
func (db *DB) FilingCacheStats(ctx context.Context) (*CacheStats, error) {
	var stats CacheStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(size), 0), MIN(downloaded_at)
		 FROM cached_filings`,
	).Scan(&stats.TotalEntries, &stats.TotalBytes, &stats.OldestEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return &stats, nil
}
