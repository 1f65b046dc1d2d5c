package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure surfaced to the CLI layer
type ErrorCode string

// Error kinds. Every failure leaving the cache, config or paths packages
// carries exactly one of these.
const (
	// ErrUnknown is reported for errors that did not originate here
	ErrUnknown ErrorCode = "UNKNOWN"

	// ErrCache covers filesystem, extraction and general cache I/O failures
	ErrCache ErrorCode = "CACHE"

	// ErrConfig covers unresolvable cache/config directories and bad config files
	ErrConfig ErrorCode = "CONFIG"

	// ErrUpdate covers archive fetch and archive parse failures
	ErrUpdate ErrorCode = "UPDATE"
)

// TldrError represents a structured error with code and details
type TldrError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error returns the human-readable message, followed by the wrapped cause
func (e *TldrError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *TldrError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a TldrError with the same code
func (e *TldrError) Is(target error) bool {
	var targetErr *TldrError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TldrError with the given code and message
func New(code ErrorCode, message string) *TldrError {
	return &TldrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TldrError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TldrError {
	return &TldrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TldrError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *TldrError {
	if err == nil {
		return nil
	}
	return &TldrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TldrError {
	if err == nil {
		return nil
	}
	return &TldrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TldrError) WithDetail(key string, value interface{}) *TldrError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tldrErr *TldrError
	if errors.As(err, &tldrErr) {
		return tldrErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TldrError
func GetErrorCode(err error) ErrorCode {
	var tldrErr *TldrError
	if errors.As(err, &tldrErr) {
		return tldrErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TldrError
func GetErrorDetails(err error) map[string]interface{} {
	var tldrErr *TldrError
	if errors.As(err, &tldrErr) {
		return tldrErr.Details
	}
	return nil
}
