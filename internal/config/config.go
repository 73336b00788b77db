// Package config provides environment-driven configuration for the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultCacheTTLDays is how long cached filings stay valid.
const DefaultCacheTTLDays = 30

// Config holds everything the CLI reads from the environment. EDGAR access
// requires contact information; the rest is optional and gates features
// (database persistence, model-backed name extraction).
type Config struct {
	UserName     string `validate:"required"`
	UserEmail    string `validate:"required,email"`
	GeminiAPIKey string
	DatabaseURL  string
	CacheTTLDays int `validate:"gte=1"`
}

// Load reads .env from the working directory when present, then builds the
// configuration from the environment. A missing .env file is not an error;
// missing required values are.
func Load() (*Config, error) {
	// Ignore the error: the file is optional and real environments set
	// variables directly.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		UserName:     os.Getenv("SEC_USER_NAME"),
		UserEmail:    os.Getenv("SEC_USER_EMAIL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		CacheTTLDays: DefaultCacheTTLDays,
	}

	if v := os.Getenv("CACHE_TTL_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL_DAYS must be an integer, got %q", v)
		}
		cfg.CacheTTLDays = days
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports the first problem with
// enough context to fix the .env file.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "UserName":
				return fmt.Errorf("SEC_USER_NAME is not set; EDGAR requires contact information")
			case "UserEmail":
				return fmt.Errorf("SEC_USER_EMAIL must be a valid email address; EDGAR requires contact information")
			case "CacheTTLDays":
				return fmt.Errorf("CACHE_TTL_DAYS must be at least 1, got %d", c.CacheTTLDays)
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UserAgent formats the contact information the way EDGAR expects it.
func (c *Config) UserAgent() string {
	return c.UserName + " " + c.UserEmail
}
