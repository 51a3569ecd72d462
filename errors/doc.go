// Package errors provides structured error handling for runkit packages.
// It implements a single application error type with machine-readable
// codes and retryable detection.
package errors
