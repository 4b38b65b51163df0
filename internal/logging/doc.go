// Package logging builds the slog loggers used across lente.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. When a log directory is configured,
// output is mirrored to a run log file in addition to stderr.
package logging
