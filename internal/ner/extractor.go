// Package ner provides person-name extraction as an optional capability.
// Two implementations exist: a pattern-based extractor that is always
// available, and a Gemini-backed extractor available when an API key is
// configured. The choice is made once at scanner construction; when the
// model-backed extractor is unavailable, callers must fall back to the
// pattern path so results stay identical to a pattern-only run.
package ner

import (
	"context"
	"strings"
)

// Person is one extracted person name with its location in the scanned text.
type Person struct {
	Name  string
	Start int
	End   int
}

// Extractor is the person-name extraction capability. Implementations must be
// safe for concurrent use: they are constructed once per process and shared
// read-only across pipeline runs.
type Extractor interface {
	// ExtractPersonNames returns every person name found in text with
	// character offsets. An empty result is a valid outcome.
	ExtractPersonNames(ctx context.Context, text string) ([]Person, error)
	// Available reports whether this extractor can actually run.
	Available() bool
}

// False positives shared by both implementations: entity-shaped strings that
// are organizations, not people.
var organizationTokens = []string{
	"corporation", "inc", "llc", "ltd", "company",
	"securities", "exchange", "commission", "university",
	"college", "school", "institute", "department",
}

// validPersonName filters out acronyms, headings, and organization names.
func validPersonName(name string) bool {
	if len(name) < 4 {
		return false
	}
	lower := strings.ToLower(name)
	for _, token := range organizationTokens {
		if strings.Contains(lower, token) {
			return false
		}
	}
	if name == strings.ToUpper(name) {
		return false
	}
	return len(strings.Fields(name)) >= 2
}
