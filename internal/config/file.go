package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileConfig is the optional JSON file carrying defaults for search flags.
// All fields are optional; explicit flags win over file values.
type FileConfig struct {
	Targets     string `json:"targets,omitempty"`     // Path to JSON targets file
	Output      string `json:"output,omitempty"`      // CSV output path
	Concurrency int    `json:"concurrency,omitempty"` // Companies searched in parallel
	UseNER      bool   `json:"use_ner,omitempty"`     // Model-backed name extraction
	Save        bool   `json:"save,omitempty"`        // Persist runs to the database
	Verbose     bool   `json:"verbose,omitempty"`     // Per-filing progress output
}

// LoadFile reads and validates a JSON config file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if cfg.Targets != "" {
		if _, err := os.Stat(cfg.Targets); os.IsNotExist(err) {
			return nil, fmt.Errorf("config error: targets file not found: %s", cfg.Targets)
		}
	}
	return &cfg, nil
}
