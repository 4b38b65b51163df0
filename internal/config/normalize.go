package config

import (
	"path/filepath"
	"strings"
)

// normalize expands paths and fills derived defaults from the workspace
// directory.
func (c *Config) normalize() error {
	workspace, err := expandPath(c.Paths.WorkspaceDir)
	if err != nil {
		return err
	}
	c.Paths.WorkspaceDir = workspace

	if strings.TrimSpace(c.Paths.AnnotationDir) == "" {
		c.Paths.AnnotationDir = filepath.Join(workspace, "annotation_files")
	} else if c.Paths.AnnotationDir, err = expandPath(c.Paths.AnnotationDir); err != nil {
		return err
	}

	if strings.TrimSpace(c.Paths.WarehousePath) == "" {
		c.Paths.WarehousePath = filepath.Join(workspace, "warehouse.db")
	} else if c.Paths.WarehousePath, err = expandPath(c.Paths.WarehousePath); err != nil {
		return err
	}

	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(workspace, "logs")
	} else if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Matching.StringAlgorithm = strings.ToLower(strings.TrimSpace(c.Matching.StringAlgorithm))
	return nil
}
