package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks malformed user input. It is the only error class
	// surfaced to callers as their own mistake.
	ErrValidation = errors.New("validation error")
	// ErrUpstream marks a failed generation or metadata call (network,
	// timeout, non-2xx). Stages recover from it via their fallbacks.
	ErrUpstream = errors.New("upstream failure")
	// ErrParse marks generation output that no parsing strategy accepted.
	ErrParse = errors.New("parse failure")
	// ErrNotFound marks a missing external resource (title, user, book).
	ErrNotFound = errors.New("not found")
	// ErrConfiguration marks unusable runtime settings.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrUpstream
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRecoverable reports whether the pipeline may continue on a deterministic
// fallback after this error. Validation and configuration problems are not
// recoverable; everything tagged upstream/parse/not-found is.
func IsRecoverable(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return false
	default:
		return true
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
