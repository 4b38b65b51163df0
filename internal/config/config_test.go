package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"lente/internal/errs"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize default config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Matching.Window != 1 {
		t.Fatalf("expected window 1, got %d", cfg.Matching.Window)
	}
	if cfg.Annotation.PageSize != 100 {
		t.Fatalf("expected page size 100, got %d", cfg.Annotation.PageSize)
	}
}

func TestSampleConfigParses(t *testing.T) {
	cfg := Default()
	if err := toml.Unmarshal([]byte(sampleConfig), &cfg); err != nil {
		t.Fatalf("sample config should parse: %v", err)
	}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize sample config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load with missing file: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if path == "" {
		t.Fatal("expected resolved path even when file is missing")
	}
	if cfg.Matching.StringAlgorithm != "damerau_levenshtein" {
		t.Fatalf("expected default algorithm, got %q", cfg.Matching.StringAlgorithm)
	}
}

func TestLoadReadsFileAndDerivesPaths(t *testing.T) {
	dir := t.TempDir()
	workspace := filepath.Join(dir, "work")
	configPath := filepath.Join(dir, "lente.toml")
	content := `
[paths]
workspace_dir = "` + workspace + `"

[matching]
window = 5
batches = 3
score_threshold = 0.4
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, path, exists, err := Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !exists || path != configPath {
		t.Fatalf("expected to load %s, got %s (exists=%v)", configPath, path, exists)
	}
	if cfg.Matching.Window != 5 || cfg.Matching.Batches != 3 {
		t.Fatalf("matching settings not applied: %+v", cfg.Matching)
	}
	if cfg.Paths.AnnotationDir != filepath.Join(workspace, "annotation_files") {
		t.Fatalf("annotation dir not derived: %s", cfg.Paths.AnnotationDir)
	}
	if cfg.Paths.WarehousePath != filepath.Join(workspace, "warehouse.db") {
		t.Fatalf("warehouse path not derived: %s", cfg.Paths.WarehousePath)
	}
	if cfg.Paths.LogDir != filepath.Join(workspace, "logs") {
		t.Fatalf("log dir not derived: %s", cfg.Paths.LogDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"even window", func(c *Config) { c.Matching.Window = 2 }},
		{"zero window", func(c *Config) { c.Matching.Window = 0 }},
		{"negative window", func(c *Config) { c.Matching.Window = -3 }},
		{"zero batches", func(c *Config) { c.Matching.Batches = 0 }},
		{"threshold above one", func(c *Config) { c.Matching.ScoreThreshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.Matching.ScoreThreshold = -0.1 }},
		{"unknown algorithm", func(c *Config) { c.Matching.StringAlgorithm = "jaro" }},
		{"zero page size", func(c *Config) { c.Annotation.PageSize = 0 }},
		{"negative max", func(c *Config) { c.Annotation.NegativeMax = -1 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !errors.Is(err, errs.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	expanded, err := ExpandPath("~/lente-data")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !strings.HasPrefix(expanded, home) {
		t.Fatalf("expected %s under %s", expanded, home)
	}
}

func TestEnsureDirectories(t *testing.T) {
	cfg := Default()
	cfg.Paths.WorkspaceDir = filepath.Join(t.TempDir(), "ws")
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkspaceDir, cfg.Paths.AnnotationDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[matching]") {
		t.Fatal("sample config missing matching section")
	}
}
