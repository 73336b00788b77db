// Package llm wraps the Gemini API for the optional NER-backed extraction
// path. Only one model is needed here: entity extraction is a simple task and
// runs on the lite tier.
package llm

import "strings"

// DefaultModel is the Gemini model used for entity extraction.
const DefaultModel = "gemini-2.5-flash-lite"

// Config holds the model configuration.
type Config struct {
	Model string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{Model: DefaultModel}
}

// CleanJSONBlock removes markdown code block wrappers from a model response.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
