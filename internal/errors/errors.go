package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the
// command-line tool. These codes are used to signal the outcome of the
// program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorShape    = 2   // Indicates invalid input shape (lengths, mask).
	ExitErrorInternal = 3   // Indicates an internal invariant violation.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags
// or values. It indicates that the application cannot proceed due to
// incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ShapeError represents an invalid compile-request shape: unequal input
// lengths, a mask of the wrong length, or a length that is not a power of
// two. Shape errors are deterministic properties of the request and are
// never retried.
type ShapeError struct {
	// Field is the name of the request field that failed validation.
	Field string
	// Message explains the shape violation.
	Message string
}

// Error returns a formatted message describing the shape violation.
func (e ShapeError) Error() string {
	return fmt.Sprintf("invalid shape for %q: %s", e.Field, e.Message)
}

// NewShapeError creates a new ShapeError for the given request field.
//
// Parameters:
//   - field: The name of the offending request field.
//   - format: A format string for the explanation.
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ShapeError instance.
func NewShapeError(field, format string, a ...any) error {
	return ShapeError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// ConversionError represents an index element that cannot be interpreted as
// an integer, reported when textual index specifications are parsed.
type ConversionError struct {
	// Token is the input fragment that failed to convert.
	Token string
	// Position is the zero-based position of the token in its list.
	Position int
}

// Error returns a formatted message describing the failed conversion.
func (e ConversionError) Error() string {
	return fmt.Sprintf("cannot interpret %q at position %d as an integer index", e.Token, e.Position)
}

// InternalError represents an internal invariant violation, such as a
// scheduling deadlock over an acyclic graph. It should never occur given a
// correct graph builder.
type InternalError struct {
	// Message describes the violated invariant.
	Message string
}

// Error returns the error message for an InternalError.
func (e InternalError) Error() string { return "internal error: " + e.Message }

// NewInternalError creates a new InternalError with a formatted message.
func NewInternalError(format string, a ...any) error {
	return InternalError{Message: fmt.Sprintf(format, a...)}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code the CLI should return.
//
// Parameters:
//   - err: The error to classify (may be nil).
//
// Returns:
//   - int: The exit code corresponding to the error kind.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		shape      ShapeError
		conversion ConversionError
		internal   InternalError
		config     ConfigError
	)
	switch {
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.As(err, &shape), errors.As(err, &conversion):
		return ExitErrorShape
	case errors.As(err, &internal):
		return ExitErrorInternal
	case errors.As(err, &config):
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
