package errors

import (
	stderrors "errors"
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

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
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

// --- Constructors ---

// InvalidArgument creates an AppError for an argument outside its accepted range.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument: %s", reason),
		Details: details,
	}
}

// Validation creates an AppError for a set of failed field checks.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidArgument, Message: message}
}

// InvalidConfig creates an AppError for configuration that failed validation.
func InvalidConfig(section string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid %s configuration.", section),
		Details: map[string]any{"section": section}, Cause: cause,
	}
}

// EmptyCollection creates an AppError for an operation that needs at least one element.
func EmptyCollection(op string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyCollection, Message: fmt.Sprintf("%s called on an empty collection", op),
		Details: map[string]any{"operation": op},
	}
}

// StageFailed creates an AppError for a user function that failed inside a stage.
func StageFailed(stage string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStageFailed, Message: fmt.Sprintf("stage %s failed", stage),
		Details: map[string]any{"stage": stage}, Cause: cause,
	}
}

// ContextStopped creates an AppError for work submitted to a stopped context.
func ContextStopped(contextID string) *AppError {
	return &AppError{
		Code: ErrCodeContextStopped, Message: "the execution context has been stopped",
		Details: map[string]any{"context_id": contextID},
	}
}

// Canceled creates an AppError for a stage interrupted by context cancellation.
func Canceled(stage string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: fmt.Sprintf("stage %s was canceled", stage),
		Retryable: true, Details: map[string]any{"stage": stage}, Cause: cause,
	}
}

// Internal creates an AppError for an unexpected engine error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.", Cause: cause,
	}
}

// IsCode reports whether err, or any error it wraps, is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	for e := err; e != nil; {
		if !stderrors.As(e, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		e = appErr.Cause
	}
	return false
}
