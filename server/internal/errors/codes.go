package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for conversation operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters (empty message).
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeConfiguration indicates a deployment error such as a missing
	// gateway credential. Raised before any network call.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeRateLimited indicates the upstream gateway reported throttling.
	// The caller may retry later; this service never retries internally.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodePaymentRequired indicates the upstream gateway reported a billing
	// failure. Terminal, not retryable.
	ErrCodePaymentRequired ErrorCode = "PAYMENT_REQUIRED"
	// ErrCodeUpstream indicates an unclassified upstream failure.
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrCodeStorage indicates a history read or write failure.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

// ChatError represents a structured error for conversation operations.
type ChatError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ChatError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *ChatError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ChatError {
	return &ChatError{Code: ErrCodeInvalidArgument, Message: msg}
}

// Configuration creates a configuration error.
func Configuration(msg string) *ChatError {
	return &ChatError{Code: ErrCodeConfiguration, Message: msg}
}

// RateLimited creates a rate limited error.
func RateLimited(msg string) *ChatError {
	return &ChatError{Code: ErrCodeRateLimited, Message: msg}
}

// PaymentRequired creates a payment required error.
func PaymentRequired(msg string) *ChatError {
	return &ChatError{Code: ErrCodePaymentRequired, Message: msg}
}

// Upstream creates an upstream error.
func Upstream(msg string, cause error) *ChatError {
	return &ChatError{Code: ErrCodeUpstream, Message: msg, Cause: cause}
}

// Storage creates a storage error.
func Storage(msg string, cause error) *ChatError {
	return &ChatError{Code: ErrCodeStorage, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *ChatError {
	return &ChatError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if chatErr, ok := err.(*ChatError); ok {
		return chatErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ChatError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if chatErr, ok := err.(*ChatError); ok {
		return chatErr.Code
	}
	return defaultCode
}
