package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docsearch.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func mustLoad(t *testing.T, path string) *Config {
	t.Helper()
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := mustLoad(t, "")

	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %q, want empty", cfg.Catalog.Path)
	}
	if cfg.Search.MaxResults != 0 {
		t.Errorf("Search.MaxResults = %d, want 0", cfg.Search.MaxResults)
	}
	if cfg.Search.MinScore != 0 {
		t.Errorf("Search.MinScore = %g, want 0", cfg.Search.MinScore)
	}
	if !cfg.Dropdown.DetachKeysOnClose {
		t.Error("Dropdown.DetachKeysOnClose should default to true")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: /srv/docs.yaml
search:
  maxResults: 5
  minScore: 0.25
dropdown:
  detachKeysOnClose: false
logging:
  level: debug
  format: json
`)
	cfg := mustLoad(t, path)

	want := Config{
		Catalog:  CatalogConfig{Path: "/srv/docs.yaml"},
		Search:   SearchConfig{MaxResults: 5, MinScore: 0.25},
		Dropdown: DropdownConfig{DetachKeysOnClose: false},
		Logging:  LoggingConfig{Level: "debug", Format: "json"},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg := mustLoad(t, writeConfig(t, "search:\n  maxResults: 3\n"))

	if cfg.Search.MaxResults != 3 {
		t.Errorf("Search.MaxResults = %d, want 3", cfg.Search.MaxResults)
	}
	if !cfg.Dropdown.DetachKeysOnClose {
		t.Error("Dropdown.DetachKeysOnClose default lost")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCSEARCH_CATALOG_PATH", "/env/docs.yaml")
	t.Setenv("DOCSEARCH_SEARCH_MAX_RESULTS", "7")
	t.Setenv("DOCSEARCH_SEARCH_MIN_SCORE", "0.5")
	t.Setenv("DOCSEARCH_DROPDOWN_DETACH_KEYS_ON_CLOSE", "false")
	t.Setenv("DOCSEARCH_LOG_LEVEL", "warn")
	t.Setenv("DOCSEARCH_LOG_FORMAT", "json")

	cfg := mustLoad(t, "")

	want := Config{
		Catalog:  CatalogConfig{Path: "/env/docs.yaml"},
		Search:   SearchConfig{MaxResults: 7, MinScore: 0.5},
		Dropdown: DropdownConfig{DetachKeysOnClose: false},
		Logging:  LoggingConfig{Level: "warn", Format: "json"},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path func(t *testing.T) string
	}{
		{
			name: "bad max results env",
			env:  map[string]string{"DOCSEARCH_SEARCH_MAX_RESULTS": "many"},
		},
		{
			name: "bad min score env",
			env:  map[string]string{"DOCSEARCH_SEARCH_MIN_SCORE": "high"},
		},
		{
			name: "bad bool env",
			env:  map[string]string{"DOCSEARCH_DROPDOWN_DETACH_KEYS_ON_CLOSE": "sometimes"},
		},
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name: "malformed file",
			path: func(t *testing.T) string { return writeConfig(t, "search: [") },
		},
		{
			name: "invalid value in file",
			path: func(t *testing.T) string { return writeConfig(t, "logging:\n  format: xml\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.path != nil {
				path = tt.path(t)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative max results", func(c *Config) { c.Search.MaxResults = -1 }},
		{"negative min score", func(c *Config) { c.Search.MinScore = -0.1 }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
