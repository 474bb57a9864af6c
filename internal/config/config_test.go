package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Matching.AutoApproveThreshold != 150 {
		t.Errorf("default threshold = %d, want 150", cfg.Matching.AutoApproveThreshold)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, path, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists = true for missing file")
	}
	if path != missing {
		t.Errorf("resolved path = %q, want %q", path, missing)
	}
	if cfg.TMDB.BaseURL != defaultTMDBBaseURL {
		t.Errorf("base URL = %q, want default", cfg.TMDB.BaseURL)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		"[tmdb]",
		`api_key = "  key  "`,
		`base_url = "https://example.test/v3/"`,
		"[matching]",
		"auto_approve_threshold = 200",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for present file")
	}
	if cfg.TMDB.APIKey != "key" {
		t.Errorf("api key not trimmed: %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BaseURL != "https://example.test/v3" {
		t.Errorf("base url not normalized: %q", cfg.TMDB.BaseURL)
	}
	if cfg.Matching.AutoApproveThreshold != 200 {
		t.Errorf("threshold = %d, want 200", cfg.Matching.AutoApproveThreshold)
	}
	if cfg.DatabasePath() != filepath.Join(dir, "data", "library.db") {
		t.Errorf("database path = %q", cfg.DatabasePath())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.Matching.AutoApproveThreshold = 0 }},
		{"negative delay", func(c *Config) { c.Import.LookupDelayMS = -1 }},
		{"zero timeout", func(c *Config) { c.Import.LookupTimeoutSeconds = 0 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"empty data dir", func(c *Config) { c.Paths.DataDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "auto_approve_threshold") {
		t.Error("sample config missing matching section")
	}
}
