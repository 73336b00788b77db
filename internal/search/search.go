// Package search orchestrates bulk affiliation searches: resolve each target
// company, fetch its filings through the cache, scan them, and merge the
// results.
package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/filing-affiliations/internal/affiliation"
	"github.com/jonathan/filing-affiliations/internal/config"
	"github.com/jonathan/filing-affiliations/internal/db"
	"github.com/jonathan/filing-affiliations/internal/edgar"
)

// DefaultFilingType is scanned when a target names no filing types. Proxy
// statements carry the director and officer biographies.
const DefaultFilingType = "DEF 14A"

// DefaultMaxFilings bounds how many filings per type are scanned for one
// company.
const DefaultMaxFilings = 5

// DefaultConcurrency is how many companies are searched at once.
const DefaultConcurrency = 4

// FilingStore is the cache the searcher reads through. *db.DB satisfies it;
// a nil store means every filing is downloaded.
type FilingStore interface {
	GetFiling(ctx context.Context, accessionNumber string, ttl time.Duration) (*db.CachedFiling, error)
	PutFiling(ctx context.Context, accessionNumber, content string) error
}

// ProgressEvent reports one step of a running search.
type ProgressEvent struct {
	Ticker  string
	Message string
}

// Options configures a search.
type Options struct {
	CacheTTL    time.Duration
	Concurrency int
	OnProgress  func(ProgressEvent)
}

// CompanyResult holds everything found for one target.
type CompanyResult struct {
	Ticker         string
	CompanyName    string
	CIK            string
	FilingsScanned int
	FilingsSkipped int
	Matches        []affiliation.Match
	Err            error
}

// Searcher wires the EDGAR client, the scanner, and an optional filing cache.
type Searcher struct {
	client  *edgar.Client
	scanner *affiliation.Scanner
	store   FilingStore
	opts    Options
}

// New builds a searcher. store may be nil.
func New(client *edgar.Client, scanner *affiliation.Scanner, store FilingStore, opts Options) *Searcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Searcher{client: client, scanner: scanner, store: store, opts: opts}
}

// SearchCompany scans one company's filings. Individual filing failures are
// counted and skipped; the error return is reserved for failures that stop
// the whole company, like an unknown ticker.
func (s *Searcher) SearchCompany(ctx context.Context, target config.Target) (*CompanyResult, error) {
	result := &CompanyResult{Ticker: target.Ticker, CompanyName: target.CompanyName}

	cik, err := s.client.GetCIK(ctx, target.Ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", target.Ticker, err)
	}
	result.CIK = cik
	s.progress(target.Ticker, "resolved CIK "+cik)

	filingTypes := target.FilingTypes
	if len(filingTypes) == 0 {
		filingTypes = []string{DefaultFilingType}
	}
	maxFilings := target.MaxFilings
	if maxFilings <= 0 {
		maxFilings = DefaultMaxFilings
	}

	for _, filingType := range filingTypes {
		filings, err := s.client.GetFilings(ctx, cik, filingType, maxFilings, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list %s filings for %s: %w", filingType, target.Ticker, err)
		}

		for _, filing := range filings {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			content, err := s.fetchFiling(ctx, filing.AccessionNumber)
			if err != nil {
				result.FilingsSkipped++
				s.progress(target.Ticker, "skipped "+filing.AccessionNumber+": "+err.Error())
				continue
			}

			matches, err := s.scanner.ScanFiling(ctx, content, map[string]string{
				"ticker":           target.Ticker,
				"company_name":     target.CompanyName,
				"filing_type":      filing.Type,
				"filing_date":      filing.Date,
				"accession_number": filing.AccessionNumber,
			})
			if err != nil {
				result.FilingsSkipped++
				s.progress(target.Ticker, "failed to scan "+filing.AccessionNumber+": "+err.Error())
				continue
			}

			result.FilingsScanned++
			result.Matches = append(result.Matches, matches...)
		}
	}

	result.Matches = affiliation.Deduplicate(result.Matches)
	s.progress(target.Ticker, fmt.Sprintf("%d matches from %d filings", len(result.Matches), result.FilingsScanned))
	return result, nil
}

// SearchAll searches every target concurrently. A failing company lands in
// its result's Err field; the search keeps going for the others. Results come
// back in target order.
func (s *Searcher) SearchAll(ctx context.Context, targets []config.Target) ([]CompanyResult, error) {
	results := make([]CompanyResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			r, err := s.SearchCompany(gctx, target)
			if err != nil {
				results[i] = CompanyResult{
					Ticker:      target.Ticker,
					CompanyName: target.CompanyName,
					Err:         err,
				}
				return nil
			}
			results[i] = *r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MergeMatches flattens company results into one deduplicated list, in
// result order.
func MergeMatches(results []CompanyResult) []affiliation.Match {
	var all []affiliation.Match
	for _, r := range results {
		all = append(all, r.Matches...)
	}
	return affiliation.Deduplicate(all)
}

// fetchFiling reads through the cache when one is configured.
func (s *Searcher) fetchFiling(ctx context.Context, accessionNumber string) (string, error) {
	if s.store != nil {
		cached, err := s.store.GetFiling(ctx, accessionNumber, s.opts.CacheTTL)
		if err == nil && cached != nil {
			return cached.Content, nil
		}
		// A cache read failure degrades to a download.
	}

	content, err := s.client.DownloadFiling(ctx, accessionNumber)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		if err := s.store.PutFiling(ctx, accessionNumber, content); err != nil {
			s.progress("", "failed to cache "+accessionNumber+": "+err.Error())
		}
	}
	return content, nil
}

func (s *Searcher) progress(ticker, message string) {
	if s.opts.OnProgress != nil {
		s.opts.OnProgress(ProgressEvent{Ticker: ticker, Message: message})
	}
}
