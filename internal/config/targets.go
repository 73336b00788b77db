package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Target is one company to search: a ticker plus optional filing filters.
type Target struct {
	Ticker      string   `json:"ticker"`
	CompanyName string   `json:"company_name,omitempty"`
	FilingTypes []string `json:"filing_types,omitempty"`
	MaxFilings  int      `json:"max_filings,omitempty"`
}

// targetsSchema constrains the targets file before unmarshaling so a typo in
// one entry fails with a field path instead of a silently empty search.
const targetsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["ticker"],
    "additionalProperties": false,
    "properties": {
      "ticker": {"type": "string", "minLength": 1},
      "company_name": {"type": "string"},
      "filing_types": {
        "type": "array",
        "items": {"type": "string", "minLength": 1}
      },
      "max_filings": {"type": "integer", "minimum": 1, "maximum": 100}
    }
  }
}`

// LoadTargets reads and validates a JSON targets file.
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file %s: %w", path, err)
	}
	return ParseTargets(data)
}

// ParseTargets validates raw JSON against the targets schema and unmarshals
// it.
func ParseTargets(data []byte) ([]Target, error) {
	schemaLoader := gojsonschema.NewStringLoader(targetsSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate targets file: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("invalid targets file:\n")
		for i, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, field, desc.Description()))
		}
		return nil, fmt.Errorf("%s", sb.String())
	}

	var targets []Target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("failed to parse targets file: %w", err)
	}
	return targets, nil
}
