// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the tracker configuration that can be loaded from a JSON
// file. All fields are optional; missing values fall back to defaults or are
// provided via CLI flags.
type Config struct {
	// Feeds lists the RSS source URLs polled each run.
	Feeds []string `json:"feeds,omitempty" validate:"omitempty,min=1,dive,url"`
	// LookbackHours defines which entries count as recent.
	LookbackHours int `json:"lookback_hours,omitempty" validate:"min=0"`
	// IndexPath points at the tracker page to update.
	IndexPath string `json:"index_path,omitempty"`
	// Model overrides the generation model identifier.
	Model string `json:"model,omitempty"`
	// APIKey is the Gemini API key (usually supplied via env instead).
	APIKey string `json:"api_key,omitempty"`
	// DryRun computes the updated page without writing it.
	DryRun bool `json:"dry_run,omitempty"`
	// Verbose prints detailed debug information.
	Verbose bool `json:"verbose,omitempty"`
}

// Default returns the tracker's built-in configuration: the three UK
// politics feeds, an 8 hour lookback, and the page next to the binary.
func Default() Config {
	return Config{
		Feeds: []string{
			"https://feeds.bbci.co.uk/news/politics/rss.xml",
			"https://www.theguardian.com/politics/rss",
			"https://feeds.skynews.com/feeds/rss/politics.xml",
		},
		// Wider window than 4h to catch things between scheduled runs.
		LookbackHours: 8,
		IndexPath:     "index.html",
	}
}

// Load reads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks the configuration using struct tag validation.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flag overrides are applied by the caller before this.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Feeds) == 0 {
		result.Feeds = defaults.Feeds
	}
	if result.LookbackHours == 0 {
		result.LookbackHours = defaults.LookbackHours
	}
	if result.IndexPath == "" {
		result.IndexPath = defaults.IndexPath
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Lookback converts the configured hours into a duration.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.LookbackHours) * time.Hour
}
