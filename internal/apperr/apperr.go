// Package apperr defines structured application error types, allowing for a
// clear distinction between error classes (declarative configuration
// mistakes vs. programmer mistakes) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with
// %w. Types implementing Unwrap() support errors.Is() and errors.As().
package apperr

import "fmt"

// Application exit codes for cmd/estimate, mirroring the standard statuses
// used across the estimator toolchain.
const (
	ExitSuccess      = 0
	ExitErrorGeneric = 1
	ExitErrorConfig  = 4
)

// ConfigError represents a declarative-layer mistake: an empty range after
// SetRange, an unknown enum value, an unrecognised tuning-parameter name.
// It is always returned, never panicked.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ProgrammerError represents a mistake in how the API is called: a negative
// problem parameter, a reference to an undeclared tuning parameter, a nil
// cost function. These are unrecoverable and are raised via panic, never
// returned as an error value.
type ProgrammerError struct {
	Message string
}

// Error returns the error message for a ProgrammerError.
func (e ProgrammerError) Error() string { return e.Message }

// Panic raises a ProgrammerError with a formatted message.
func Panic(format string, a ...any) {
	panic(ProgrammerError{Message: fmt.Sprintf(format, a...)})
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
