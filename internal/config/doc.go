// Package config loads, normalizes, and validates lente configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: workspace layout, matching defaults, annotation pagination,
// and log output. Obtain settings through this package so downstream code
// receives sanitized paths and validated values.
package config
