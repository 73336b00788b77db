// Package edgar is a client for the SEC EDGAR full-text filing system. EDGAR
// requires a User-Agent header carrying contact information and caps
// automated traffic at ten requests per second; the client enforces both.
package edgar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production EDGAR host.
const DefaultBaseURL = "https://www.sec.gov"

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// MaxFilingCount is the largest page size the browse endpoint serves.
const MaxFilingCount = 100

const browsePath = "/cgi-bin/browse-edgar"

// Filing is one row from a company's filing index.
type Filing struct {
	Type            string `json:"type"`
	Date            string `json:"date"`
	AccessionNumber string `json:"accession_number"`
	URL             string `json:"url"`
}

// Client issues rate-limited requests to EDGAR. Safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes client construction.
type Option func(*Client)

// WithBaseURL points the client at a different host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient validates the user agent and builds a client. EDGAR rejects
// requests without contact information, so the user agent must carry an
// email address.
func NewClient(userAgent string, opts ...Option) (*Client, error) {
	if userAgent == "" || !strings.Contains(userAgent, "@") {
		return nil, fmt.Errorf("user agent must include contact information, e.g. %q", "Your Name email@example.com")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetCIK resolves a ticker symbol to its zero-padded ten-digit Central Index
// Key. An unknown ticker is a NotFoundError.
func (c *Client) GetCIK(ctx context.Context, ticker string) (string, error) {
	params := url.Values{
		"action":  {"getcompany"},
		"company": {ticker},
		"type":    {""},
		"dateb":   {""},
		"owner":   {"exclude"},
		"count":   {"1"},
	}

	body, err := c.get(ctx, browsePath, params)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse company page: %w", err)
	}

	name := doc.Find("span.companyName").First()
	if name.Length() == 0 {
		return "", &NotFoundError{Resource: "company", Message: "no company matches ticker " + ticker}
	}

	// The element text reads like "APPLE INC (0000320193)".
	text := name.Text()
	open := strings.LastIndex(text, "(")
	if open < 0 {
		return "", &NotFoundError{Resource: "company", Message: "no CIK in company listing for " + ticker}
	}
	rest := text[open+1:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return "", &NotFoundError{Resource: "company", Message: "no CIK in company listing for " + ticker}
	}
	return padCIK(strings.TrimSpace(rest[:end])), nil
}

// GetFilings lists filings for a CIK, newest first, as the browse endpoint
// orders them. filingType filters by form ("DEF 14A", "10-K"); empty means
// all forms. beforeDate, when set, is a YYYYMMDD upper bound. count is
// clamped to MaxFilingCount. An empty index is an empty result, not an error.
func (c *Client) GetFilings(ctx context.Context, cik, filingType string, count int, beforeDate string) ([]Filing, error) {
	if count <= 0 || count > MaxFilingCount {
		count = MaxFilingCount
	}
	params := url.Values{
		"action":      {"getcompany"},
		"CIK":         {cik},
		"type":        {filingType},
		"dateb":       {beforeDate},
		"owner":       {"exclude"},
		"count":       {strconv.Itoa(count)},
		"search_text": {""},
	}

	body, err := c.get(ctx, browsePath, params)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse filing index: %w", err)
	}

	var filings []Filing
	doc.Find("table.tableFile2 tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cols := row.Find("td")
		if cols.Length() < 4 {
			return
		}

		link := cols.Eq(1).Find("a#documentsbutton")
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		docURL := href
		if strings.HasPrefix(docURL, "/") {
			docURL = c.baseURL + docURL
		}
		filings = append(filings, Filing{
			Type:            strings.TrimSpace(cols.Eq(0).Text()),
			Date:            strings.TrimSpace(cols.Eq(3).Text()),
			AccessionNumber: accessionFromURL(href),
			URL:             docURL,
		})
	})
	return filings, nil
}

// DownloadFiling fetches a filing document by accession number and returns
// its raw markup.
func (c *Client) DownloadFiling(ctx context.Context, accessionNumber string) (string, error) {
	params := url.Values{
		"action":           {"view"},
		"cik":              {"0"},
		"accession_number": {accessionNumber},
	}
	body, err := c.get(ctx, "/cgi-bin/viewer", params)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return "", &NotFoundError{Resource: "filing", Message: accessionNumber}
		}
		return "", err
	}
	return body, nil
}

// get performs one rate-limited GET and maps HTTP failures onto the package
// error types.
func (c *Client) get(ctx context.Context, path string, params url.Values) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransientError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &TransientError{Message: "rate limit exceeded"}
	case resp.StatusCode == http.StatusNotFound:
		return "", &NotFoundError{Resource: "document", Message: reqURL}
	case resp.StatusCode >= 500:
		return "", &TransientError{Message: fmt.Sprintf("server error %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, reqURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransientError{Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// accessionFromURL pulls the accession_number query parameter out of a
// documents-button href.
func accessionFromURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("accession_number")
}

// padCIK zero-pads a CIK to the canonical ten digits.
func padCIK(cik string) string {
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}
