package testsupport

import (
	"io"
	"log/slog"
	"testing"

	"lente/internal/config"
	"lente/internal/warehouse"
)

// MustOpenStore opens a warehouse store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *warehouse.Store {
	t.Helper()

	store, err := warehouse.Open(cfg.Paths.WarehousePath, SilentLogger())
	if err != nil {
		t.Fatalf("warehouse.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SilentLogger returns a logger that discards all output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
