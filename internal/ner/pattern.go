package ner

import (
	"context"
	"regexp"
)

// personNameRe matches two-to-four capitalized tokens with an optional middle
// initial. Same shape the biography segmenter uses, kept local so the two
// packages stay independently tunable.
var personNameRe = regexp.MustCompile(
	`[A-Z][a-z]+(?:[-'][A-Z][a-z]+)?(?:\s+[A-Z]\.?)?\s+[A-Z][a-z]+(?:[-'][A-Z][a-z]+)?(?:\s+[A-Z][a-z]+)?`)

// PatternExtractor finds person names with capitalization heuristics. It is
// the always-available implementation.
type PatternExtractor struct{}

// NewPatternExtractor returns the pattern-based extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Available always reports true.
func (e *PatternExtractor) Available() bool {
	return true
}

// ExtractPersonNames returns every name-shaped token run that passes the
// person-name filter.
func (e *PatternExtractor) ExtractPersonNames(_ context.Context, text string) ([]Person, error) {
	var persons []Person
	for _, loc := range personNameRe.FindAllStringIndex(text, -1) {
		name := text[loc[0]:loc[1]]
		if !validPersonName(name) {
			continue
		}
		persons = append(persons, Person{Name: name, Start: loc[0], End: loc[1]})
	}
	return persons, nil
}
