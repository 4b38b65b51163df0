package matching

import "log/slog"

// logProgress reports comparison batches through a slog logger.
type logProgress struct {
	logger *slog.Logger
}

func (p logProgress) Batch(index, total, size int) {
	p.logger.Info("comparing batch",
		slog.Int("batch", index),
		slog.Int("batches", total),
		slog.Int("pairs", size),
	)
}
