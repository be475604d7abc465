package contract

import (
	"errors"
	"fmt"
)

// Sentinel causes for pre-run configuration failures. Callers match them
// with errors.Is after unwrapping a ConfigurationError.
var (
	ErrDuplicateComponent  = errors.New("duplicate component name")
	ErrWeightSum           = errors.New("component weights must sum to 1.0")
	ErrEmptyRegistry       = errors.New("registry has no components")
	ErrUnknownPrerequisite = errors.New("unknown prerequisite component")
	ErrPrerequisiteCycle   = errors.New("prerequisite cycle")
)

// ErrMissingDeliverable marks a required artifact that is absent from the
// submission. Unlike configuration errors it never aborts the process; the
// run short-circuits to an all-zero report instead.
var ErrMissingDeliverable = errors.New("required artifact missing")

// ConfigurationError is a fatal pre-run failure: bad weights, duplicate
// names, an empty registry, unparseable definitions. It aborts before any
// check runs and is never represented as a score.
type ConfigurationError struct {
	Err error
}

// NewConfigurationError wraps a cause into a ConfigurationError.
func NewConfigurationError(err error) *ConfigurationError {
	return &ConfigurationError{Err: err}
}

// ConfigurationErrorf builds a ConfigurationError from a format string.
// Use %w to keep sentinel causes matchable.
func ConfigurationErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Err: fmt.Errorf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
