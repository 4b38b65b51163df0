// Package testsupport provides shared fixtures for lente tests: temp
// workspace configs, record tables, and warehouse stores.
package testsupport

import (
	"path/filepath"
	"testing"

	"lente/internal/config"
)

// NewConfig produces a validated config rooted in a unique temp workspace.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.AnnotationDir = filepath.Join(base, "workspace", "annotation_files")
	cfg.Paths.WarehousePath = filepath.Join(base, "workspace", "warehouse.db")
	cfg.Paths.LogDir = filepath.Join(base, "workspace", "logs")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config should validate: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("create workspace directories: %v", err)
	}
	return &cfg
}
