package config

import (
	"fmt"

	"lente/internal/compare"
	"lente/internal/errs"
)

var logFormats = map[string]bool{"console": true, "json": true}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Paths.WorkspaceDir == "" {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate", "workspace_dir must be set", nil)
	}
	if c.Matching.Window < 1 || c.Matching.Window%2 == 0 {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("window must be a positive odd integer, got %d", c.Matching.Window), nil)
	}
	if c.Matching.Batches < 1 {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("batches must be at least 1, got %d", c.Matching.Batches), nil)
	}
	if c.Matching.ScoreThreshold < 0 || c.Matching.ScoreThreshold > 1 {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("score_threshold must be within [0, 1], got %g", c.Matching.ScoreThreshold), nil)
	}
	if _, err := compare.ParseAlgorithm(c.Matching.StringAlgorithm); err != nil {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("unknown string_algorithm %q", c.Matching.StringAlgorithm), nil)
	}
	if c.Annotation.PageSize < 1 {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("page_size must be at least 1, got %d", c.Annotation.PageSize), nil)
	}
	if c.Annotation.BulkBatchSize < 1 {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("bulk_batch_size must be at least 1, got %d", c.Annotation.BulkBatchSize), nil)
	}
	if c.Annotation.NegativeMax < 0 {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("negative_max must not be negative, got %d", c.Annotation.NegativeMax), nil)
	}
	if !logFormats[c.Logging.Format] {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("log format must be console or json, got %q", c.Logging.Format), nil)
	}
	if !logLevels[c.Logging.Level] {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("log level must be debug, info, warn, or error, got %q", c.Logging.Level), nil)
	}
	return nil
}
