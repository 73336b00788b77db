package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/filing-affiliations/internal/affiliation"
)

// CreateSearchRun records the start of a bulk search and returns its ID.
func (db *DB) CreateSearchRun(ctx context.Context, description string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO search_runs (description, status)
		 VALUES ($1, $2)
		 RETURNING id`,
		description, RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create search run: %w", err)
	}
	return id, nil
}

// CompleteSearchRun marks a run finished with the given status and final
// match count.
func (db *DB) CompleteSearchRun(ctx context.Context, runID uuid.UUID, status string, matchCount int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE search_runs
		 SET status = $1, match_count = $2, completed_at = NOW()
		 WHERE id = $3`,
		status, matchCount, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete search run: %w", err)
	}
	return nil
}

// GetSearchRun retrieves one run by ID. A missing run is (nil, nil).
func (db *DB) GetSearchRun(ctx context.Context, runID uuid.UUID) (*SearchRun, error) {
	var run SearchRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, description, status, match_count, created_at, completed_at
		 FROM search_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Description, &run.Status, &run.MatchCount, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get search run: %w", err)
	}
	return &run, nil
}

// ListSearchRuns retrieves recent runs, newest first.
func (db *DB) ListSearchRuns(ctx context.Context, limit int) ([]SearchRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, description, status, match_count, created_at, completed_at
		 FROM search_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list search runs: %w", err)
	}
	defer rows.Close()

	var runs []SearchRun
	for rows.Next() {
		var run SearchRun
		if err := rows.Scan(&run.ID, &run.Description, &run.Status, &run.MatchCount, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// SaveMatches stores the deduplicated matches of one run.
func (db *DB) SaveMatches(ctx context.Context, runID uuid.UUID, matches []affiliation.Match) error {
	for _, m := range matches {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO matches (run_id, person_name, affiliation_type, organization, context, confidence,
			                      filing_type, filing_date, company_name, ticker)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			runID, m.PersonName, string(m.Type), m.Organization, m.Context, string(m.Confidence),
			m.FilingInfo["filing_type"], m.FilingInfo["filing_date"], m.FilingInfo["company_name"], m.FilingInfo["ticker"],
		)
		if err != nil {
			return fmt.Errorf("failed to save match for %s: %w", m.PersonName, err)
		}
	}
	return nil
}

// ListMatches retrieves the stored matches of one run in insertion order.
func (db *DB) ListMatches(ctx context.Context, runID uuid.UUID) ([]affiliation.Match, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT person_name, affiliation_type, organization, context, confidence,
		        filing_type, filing_date, company_name, ticker
		 FROM matches WHERE run_id = $1 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []affiliation.Match
	for rows.Next() {
		var m affiliation.Match
		var typ, confidence string
		var filingType, filingDate, companyName, ticker string
		if err := rows.Scan(&m.PersonName, &typ, &m.Organization, &m.Context, &confidence,
			&filingType, &filingDate, &companyName, &ticker); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Type = affiliation.Type(typ)
		m.Confidence = affiliation.Confidence(confidence)
		m.FilingInfo = map[string]string{
			"filing_type":  filingType,
			"filing_date":  filingDate,
			"company_name": companyName,
			"ticker":       ticker,
		}
		matches = append(matches, m)
	}
	return matches, nil
}
