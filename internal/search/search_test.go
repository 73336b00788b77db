package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/filing-affiliations/internal/affiliation"
	"github.com/jonathan/filing-affiliations/internal/config"
	"github.com/jonathan/filing-affiliations/internal/db"
	"github.com/jonathan/filing-affiliations/internal/edgar"
)

const filingBody = `<html><body>
<p>PROPOSAL 1 - ELECTION OF DIRECTORS</p>
<p>John Smith, age 45. He received his M.B.A. from Boston University in 2005
and later served as Professor of Finance at another institution.</p>
</body></html>`

// fakeEdgar serves the three endpoints the client hits and counts filing
// downloads.
type fakeEdgar struct {
	downloads atomic.Int64
}

func (f *fakeEdgar) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case strings.Contains(r.URL.Path, "viewer"):
			f.downloads.Add(1)
			_, _ = w.Write([]byte(filingBody))
		case q.Get("company") != "":
			if q.Get("company") == "NOPE" {
				_, _ = w.Write([]byte(`<html><body>No matches.</body></html>`))
				return
			}
			_, _ = w.Write([]byte(`<span class="companyName">ACME CORP (0001234567)</span>`))
		default:
			_, _ = w.Write([]byte(`<table class="tableFile2">
<tr><th>Type</th><th>Format</th><th>Description</th><th>Date</th></tr>
<tr><td>DEF 14A</td>
<td><a id="documentsbutton" href="/cgi-bin/viewer?action=view&amp;cik=1234567&amp;accession_number=0001234567-24-000001">Documents</a></td>
<td></td><td>2024-03-15</td></tr>
</table>`))
		}
	}
}

// memStore is an in-memory FilingStore.
type memStore struct {
	mu      sync.Mutex
	filings map[string]string
}

func newMemStore() *memStore {
	return &memStore{filings: make(map[string]string)}
}

func (m *memStore) GetFiling(_ context.Context, accessionNumber string, _ time.Duration) (*db.CachedFiling, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.filings[accessionNumber]
	if !ok {
		return nil, nil
	}
	return &db.CachedFiling{AccessionNumber: accessionNumber, Content: content}, nil
}

func (m *memStore) PutFiling(_ context.Context, accessionNumber, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filings[accessionNumber] = content
	return nil
}

func newTestSearcher(t *testing.T, fake *fakeEdgar, store FilingStore) *Searcher {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client, err := edgar.NewClient("Test Suite test@example.com", edgar.WithBaseURL(srv.URL))
	require.NoError(t, err)

	scanner, err := affiliation.NewScanner(affiliation.DefaultConfig())
	require.NoError(t, err)

	return New(client, scanner, store, Options{})
}

func TestSearchCompany(t *testing.T) {
	s := newTestSearcher(t, &fakeEdgar{}, nil)

	result, err := s.SearchCompany(context.Background(), config.Target{
		Ticker:      "ACME",
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)

	assert.Equal(t, "0001234567", result.CIK)
	assert.Equal(t, 1, result.FilingsScanned)
	assert.Zero(t, result.FilingsSkipped)
	require.NotEmpty(t, result.Matches)

	m := result.Matches[0]
	assert.Equal(t, "John Smith", m.PersonName)
	assert.Equal(t, affiliation.TypeDegree, m.Type)
	assert.Equal(t, "ACME", m.FilingInfo["ticker"])
	assert.Equal(t, "DEF 14A", m.FilingInfo["filing_type"])
	assert.Equal(t, "2024-03-15", m.FilingInfo["filing_date"])
	assert.Equal(t, "0001234567-24-000001", m.FilingInfo["accession_number"])
}

func TestSearchCompany_UnknownTicker(t *testing.T) {
	s := newTestSearcher(t, &fakeEdgar{}, nil)

	_, err := s.SearchCompany(context.Background(), config.Target{Ticker: "NOPE"})
	require.Error(t, err)

	var nf *edgar.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSearchCompany_UsesCache(t *testing.T) {
	fake := &fakeEdgar{}
	store := newMemStore()
	s := newTestSearcher(t, fake, store)

	target := config.Target{Ticker: "ACME", CompanyName: "Acme Corp"}

	_, err := s.SearchCompany(context.Background(), target)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fake.downloads.Load())
	assert.Contains(t, store.filings, "0001234567-24-000001")

	// Second pass is served from the cache.
	_, err = s.SearchCompany(context.Background(), target)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fake.downloads.Load())
}

func TestSearchAll_ContinuesPastFailures(t *testing.T) {
	s := newTestSearcher(t, &fakeEdgar{}, nil)

	results, err := s.SearchAll(context.Background(), []config.Target{
		{Ticker: "NOPE"},
		{Ticker: "ACME", CompanyName: "Acme Corp"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "NOPE", results[0].Ticker)
	assert.Error(t, results[0].Err)

	assert.Equal(t, "ACME", results[1].Ticker)
	assert.NoError(t, results[1].Err)
	assert.NotEmpty(t, results[1].Matches)
}

func TestSearchAll_ReportsProgress(t *testing.T) {
	var mu sync.Mutex
	var events []ProgressEvent

	fake := &fakeEdgar{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client, err := edgar.NewClient("Test Suite test@example.com", edgar.WithBaseURL(srv.URL))
	require.NoError(t, err)
	scanner, err := affiliation.NewScanner(affiliation.DefaultConfig())
	require.NoError(t, err)

	s := New(client, scanner, nil, Options{
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		},
	})

	_, err = s.SearchAll(context.Background(), []config.Target{{Ticker: "ACME"}})
	require.NoError(t, err)
	assert.NotEmpty(t, events)
}

func TestMergeMatches(t *testing.T) {
	m := affiliation.Match{
		PersonName:   "John Smith",
		Type:         affiliation.TypeDegree,
		Organization: "Boston University",
		Context:      "shared context",
		Confidence:   affiliation.ConfidenceHigh,
	}

	merged := MergeMatches([]CompanyResult{
		{Matches: []affiliation.Match{m}},
		{Matches: []affiliation.Match{m}},
	})
	assert.Len(t, merged, 1)
}
