// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DataPath   string `json:"data_path,omitempty"`   // Directory holding profile.json and role files
	JobContext string `json:"job_context,omitempty"` // Path to the job context JSON
	Output     string `json:"output,omitempty"`      // Output path for the assembled document

	// Generation
	TargetBullets int  `json:"target_bullets,omitempty"` // Bullets to request per role
	WordBudget    int  `json:"word_budget,omitempty"`    // Total word budget (0 = unlimited)
	SkipImprove   bool `json:"skip_improve,omitempty"`   // Skip the improvement pass even on a failing grade

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for artifact persistence
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.TargetBullets < 0 {
		return fmt.Errorf("config error: 'target_bullets' must be non-negative")
	}
	if c.TargetBullets > 10 {
		return fmt.Errorf("config error: 'target_bullets' must be at most 10")
	}
	if c.WordBudget < 0 {
		return fmt.Errorf("config error: 'word_budget' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.DataPath != "" {
		if _, err := os.Stat(c.DataPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: data path not found: %s", c.DataPath)
		}
	}
	if c.JobContext != "" {
		if _, err := os.Stat(c.JobContext); os.IsNotExist(err) {
			return fmt.Errorf("config error: job context file not found: %s", c.JobContext)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataPath == "" {
		result.DataPath = defaults.DataPath
	}
	if result.JobContext == "" {
		result.JobContext = defaults.JobContext
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TargetBullets == 0 {
		result.TargetBullets = defaults.TargetBullets
	}
	if result.WordBudget == 0 {
		result.WordBudget = defaults.WordBudget
	}

	return result
}
