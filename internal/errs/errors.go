// Package errs defines the sentinel error taxonomy shared by the matching
// pipeline and helpers for tagging errors with component context.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks invalid setup: missing identifier fields,
	// malformed rules, bad window sizes. Raised at construction, never deferred.
	ErrConfiguration = errors.New("configuration error")
	// ErrResource marks filesystem problems: missing working directories or
	// refusing to overwrite annotation files without an explicit override.
	ErrResource = errors.New("resource error")
	// ErrData marks malformed inputs discovered mid-run, such as candidate
	// pairs that reference unknown record identifiers.
	ErrData = errors.New("data error")
	// ErrStorage marks warehouse failures. Duplicate-ID history checks catch
	// and log this instead of propagating it.
	ErrStorage = errors.New("storage error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrData
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
