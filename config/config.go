// Package config loads the widget configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog"`
	Search   SearchConfig   `yaml:"search"`
	Dropdown DropdownConfig `yaml:"dropdown"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CatalogConfig selects the document catalog.
type CatalogConfig struct {
	// Path to a YAML catalog. Empty uses the embedded default catalog.
	Path string `yaml:"path"`
}

// SearchConfig controls query results.
type SearchConfig struct {
	// MaxResults caps results per query. Zero means unlimited.
	MaxResults int `yaml:"maxResults"`
	// MinScore drops results scoring below it. Zero keeps every result.
	MinScore float64 `yaml:"minScore"`
}

// DropdownConfig controls listener lifecycle.
type DropdownConfig struct {
	// DetachKeysOnClose removes the key listeners when the dropdown closes.
	DetachKeysOnClose bool `yaml:"detachKeysOnClose"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file (if provided) and applies environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Dropdown: DropdownConfig{
			DetachKeysOnClose: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.maxResults must be >= 0, got %d", c.Search.MaxResults)
	}
	if c.Search.MinScore < 0 {
		return fmt.Errorf("search.minScore must be >= 0, got %g", c.Search.MinScore)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DOCSEARCH_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("DOCSEARCH_SEARCH_MAX_RESULTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DOCSEARCH_SEARCH_MAX_RESULTS: %w", err)
		}
		cfg.Search.MaxResults = n
	}
	if v := os.Getenv("DOCSEARCH_SEARCH_MIN_SCORE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("DOCSEARCH_SEARCH_MIN_SCORE: %w", err)
		}
		cfg.Search.MinScore = f
	}
	if v := os.Getenv("DOCSEARCH_DROPDOWN_DETACH_KEYS_ON_CLOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DOCSEARCH_DROPDOWN_DETACH_KEYS_ON_CLOSE: %w", err)
		}
		cfg.Dropdown.DetachKeysOnClose = b
	}
	if v := os.Getenv("DOCSEARCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DOCSEARCH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}
