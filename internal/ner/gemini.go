package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/filing-affiliations/internal/llm"
)

const extractionPrompt = `Extract every person name mentioned in the text below.
Return a JSON array of strings, one per distinct person, using the exact
spelling from the text. Return [] if no person is named. Do not include
company, exchange, or institution names.

Text:
%s`

// GeminiExtractor extracts person names with a Gemini model. It implements
// the same Extractor contract as the pattern extractor, so the scanner can
// swap between them at construction time.
type GeminiExtractor struct {
	client llm.Client
}

// NewGeminiExtractor builds a model-backed extractor. The client is created
// once and shared; callers own its lifetime via Close.
func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction client: %w", err)
	}
	return &GeminiExtractor{client: client}, nil
}

// NewGeminiExtractorWithClient wires an existing client, mainly for tests.
func NewGeminiExtractorWithClient(client llm.Client) *GeminiExtractor {
	return &GeminiExtractor{client: client}
}

// Available reports whether a client is wired.
func (e *GeminiExtractor) Available() bool {
	return e.client != nil
}

// ExtractPersonNames asks the model for the names and resolves each one back
// to character offsets in the source text. Names the model invents (no
// occurrence in the text) are dropped.
func (e *GeminiExtractor) ExtractPersonNames(ctx context.Context, text string) ([]Person, error) {
	if e.client == nil {
		return nil, fmt.Errorf("extractor unavailable: no client configured")
	}

	resp, err := e.client.GenerateJSON(ctx, fmt.Sprintf(extractionPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("name extraction failed: %w", err)
	}

	var names []string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &names); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	var persons []Person
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] || !validPersonName(name) {
			continue
		}
		seen[name] = true
		for idx := 0; idx < len(text); {
			pos := strings.Index(text[idx:], name)
			if pos < 0 {
				break
			}
			start := idx + pos
			persons = append(persons, Person{Name: name, Start: start, End: start + len(name)})
			idx = start + len(name)
		}
	}
	return persons, nil
}

// Close releases the underlying client.
func (e *GeminiExtractor) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}
