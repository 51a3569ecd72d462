package errors

import (
	"errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Internal creates a new AppError for an unexpected internal fault.
func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

// Validation creates a new AppError for invalid input.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// Timeout creates a new AppError for an operation that took too long.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, fmt.Sprintf("operation %s timed out", operation)).
		WithDetail("operation", operation)
}

// ConnectionFailed creates a new AppError for a failed connection.
func ConnectionFailed(target string) *AppError {
	return New(ErrCodeConnectionFailed, fmt.Sprintf("unable to connect to %s", target)).
		WithDetail("target", target)
}

// ExternalService wraps an error from an external service or tool.
func ExternalService(service string, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("%s reported an error", service)).
		WithDetail("service", service).
		WithCause(cause)
}

// ProcessFailed creates a new AppError for a child process that could not
// be launched.
func ProcessFailed(binary string, cause error) *AppError {
	return New(ErrCodeProcessFailed, fmt.Sprintf("failed to launch %s", binary)).
		WithDetail("binary", binary).
		WithCause(cause)
}

// AsAppError extracts an *AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Ensure converts an arbitrary fault value into an AppError. Errors that
// already carry an AppError in their chain are returned as-is; anything
// else is wrapped as an internal error.
func Ensure(v any) *AppError {
	switch fault := v.(type) {
	case *AppError:
		return fault
	case error:
		if appErr, ok := AsAppError(fault); ok {
			return appErr
		}
		return Internal(fault.Error()).WithCause(fault)
	default:
		return Internal(fmt.Sprintf("%v", v))
	}
}
