package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Argument errors
const (
	// ErrCodeInvalidArgument indicates a caller passed an argument outside its domain,
	// such as a negative count or partition number.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidConfig indicates a configuration value failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Collection errors
const (
	// ErrCodeEmptyCollection indicates an operation needs at least one element.
	ErrCodeEmptyCollection ErrorCode = "EMPTY_COLLECTION"
	// ErrCodeStageFailed indicates a user function failed while a stage was evaluated.
	ErrCodeStageFailed ErrorCode = "STAGE_FAILED"
	// ErrCodeContextStopped indicates the execution context was stopped.
	ErrCodeContextStopped ErrorCode = "CONTEXT_STOPPED"
	// ErrCodeCanceled indicates the caller's context was canceled mid-stage.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected engine error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Nothing in a local engine is worth retrying except a canceled run.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeCanceled: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
