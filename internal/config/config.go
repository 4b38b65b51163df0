package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the workspace directory layout.
type Paths struct {
	WorkspaceDir  string `toml:"workspace_dir" json:"workspace_dir"`
	AnnotationDir string `toml:"annotation_dir" json:"annotation_dir"`
	WarehousePath string `toml:"warehouse_path" json:"warehouse_path"`
	LogDir        string `toml:"log_dir" json:"log_dir"`
}

// Matching contains defaults for a matching run.
type Matching struct {
	// Window is the sorted-neighbourhood width; must be a positive odd
	// integer. 1 means exact blocking.
	Window int `toml:"window" json:"window"`
	// Batches partitions the candidate-pair list for comparison.
	Batches int `toml:"batches" json:"batches"`
	// ScoreThreshold censors computed scores below it to 0.0 when positive;
	// 0 disables censoring.
	ScoreThreshold float64 `toml:"score_threshold" json:"score_threshold"`
	// StringAlgorithm names the string-similarity metric.
	StringAlgorithm string `toml:"string_algorithm" json:"string_algorithm"`
	// RankLabels are the auxiliary rank columns merged after comparison.
	RankLabels []string `toml:"rank_labels" json:"rank_labels"`
}

// Annotation contains pagination settings for review exports.
type Annotation struct {
	PageSize      int `toml:"page_size" json:"page_size"`
	BulkBatchSize int `toml:"bulk_batch_size" json:"bulk_batch_size"`
	NegativeMax   int `toml:"negative_max" json:"negative_max"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" json:"format"`
	Level  string `toml:"level" json:"level"`
}

// Config encapsulates all configuration values for lente.
type Config struct {
	Paths      Paths      `toml:"paths" json:"paths"`
	Matching   Matching   `toml:"matching" json:"matching"`
	Annotation Annotation `toml:"annotation" json:"annotation"`
	Logging    Logging    `toml:"logging" json:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lente/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("lente.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the workspace directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkspaceDir, c.Paths.AnnotationDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
