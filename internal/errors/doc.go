// Package apperrors defines the typed errors and exit codes shared across
// the plan compiler. Validation failures (shape, index conversion) are
// distinguished from internal invariant violations so callers can map them
// to distinct exit codes and HTTP statuses.
package apperrors
