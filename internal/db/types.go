package db

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFilingTTL is how long a cached filing stays valid.
const DefaultFilingTTL = 30 * 24 * time.Hour

// CachedFiling is one stored filing document.
type CachedFiling struct {
	AccessionNumber string    `json:"accession_number"`
	Content         string    `json:"content"`
	Size            int       `json:"size"`
	DownloadedAt    time.Time `json:"downloaded_at"`
}

// CacheStats summarizes the filing cache.
type CacheStats struct {
	TotalEntries int64      `json:"total_entries"`
	TotalBytes   int64      `json:"total_bytes"`
	OldestEntry  *time.Time `json:"oldest_entry,omitempty"`
}

// SearchRun is one bulk affiliation search over a set of companies.
type SearchRun struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	MatchCount  int        `json:"match_count"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
