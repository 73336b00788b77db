// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/filing-affiliations/internal/affiliation"
	"github.com/jonathan/filing-affiliations/internal/search"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCompanyResult outputs a human-readable summary of one company's search.
func (p *Printer) PrintCompanyResult(r *search.CompanyResult) {
	var sb strings.Builder

	if r.Err != nil {
		sb.WriteString(fmt.Sprintf("Failed: %v\n", r.Err))
		p.printBox(fmt.Sprintf("Company: %s", r.Ticker), strings.TrimRight(sb.String(), "\n"))
		return
	}

	sb.WriteString(fmt.Sprintf("CIK: %s\n", r.CIK))
	sb.WriteString(fmt.Sprintf("Filings scanned: %d (%d skipped)\n", r.FilingsScanned, r.FilingsSkipped))
	sb.WriteString(fmt.Sprintf("Matches: %d\n", len(r.Matches)))

	for i, m := range r.Matches {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(r.Matches)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s (%s, %s)\n", m.PersonName, m.Type, m.Confidence))
	}

	p.printBox(fmt.Sprintf("Company: %s", r.Ticker), strings.TrimRight(sb.String(), "\n"))
}

// PrintMatchSummary outputs the final deduplicated match counts by type and
// confidence.
func (p *Printer) PrintMatchSummary(matches []affiliation.Match) {
	byType := make(map[affiliation.Type]int)
	byConfidence := make(map[affiliation.Confidence]int)
	for _, m := range matches {
		byType[m.Type]++
		byConfidence[m.Confidence]++
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n", len(matches)))

	order := []affiliation.Type{
		affiliation.TypeDegree,
		affiliation.TypePosition,
		affiliation.TypeEducation,
		affiliation.TypeEmployment,
		affiliation.TypeMention,
	}
	for _, typ := range order {
		if n := byType[typ]; n > 0 {
			sb.WriteString(fmt.Sprintf("  %-12s %d\n", typ, n))
		}
	}

	sb.WriteString(fmt.Sprintf("High confidence: %d, medium: %d, low: %d",
		byConfidence[affiliation.ConfidenceHigh],
		byConfidence[affiliation.ConfidenceMedium],
		byConfidence[affiliation.ConfidenceLow]))

	p.printBox("Search Summary", sb.String())
}
