// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/travel-planner/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Catalog     string `json:"catalog,omitempty"`     // Path to candidate catalog JSON file
	Preferences string `json:"preferences,omitempty"` // Path to initial preferences JSON file

	// Limits
	TopK      int `json:"top_k,omitempty"`      // Items kept per category
	MaxPasses int `json:"max_passes,omitempty"` // Refinement pass cap

	// Behavior
	Strategy    string `json:"strategy,omitempty"`     // Initial scoring strategy
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed progress information
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for LLM recall
	RecallModel string `json:"recall_model,omitempty"` // Gemini model for LLM recall
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.MaxPasses < 0 {
		return fmt.Errorf("config error: 'max_passes' must be non-negative")
	}

	if c.Strategy != "" && !types.ValidStrategy(types.Strategy(c.Strategy)) {
		return fmt.Errorf("config error: unknown strategy %q", c.Strategy)
	}

	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}
	if c.Preferences != "" {
		if _, err := os.Stat(c.Preferences); os.IsNotExist(err) {
			return fmt.Errorf("config error: preferences file not found: %s", c.Preferences)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.Preferences == "" {
		result.Preferences = defaults.Preferences
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.RecallModel == "" {
		result.RecallModel = defaults.RecallModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.MaxPasses == 0 {
		result.MaxPasses = defaults.MaxPasses
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
