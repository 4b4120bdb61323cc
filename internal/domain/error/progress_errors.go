// Package error defines domain-specific errors for the personal finance application.
package error

import "errors"

// Progress computation errors.
var (
	// ErrInvalidTarget is returned when a progress target is zero or negative.
	ErrInvalidTarget = errors.New("target must be greater than zero")

	// ErrInvalidAmount is returned when an amount is negative, NaN or infinite.
	ErrInvalidAmount = errors.New("amount must be a finite, non-negative number")
)

// ProgressErrorCode defines error codes for progress errors.
// Format: PRG-XXYYYY where XX is category and YYYY is specific error.
type ProgressErrorCode string

const (
	// Input errors (01XXXX)
	ErrCodeInvalidTarget ProgressErrorCode = "PRG-010001"
	ErrCodeInvalidAmount ProgressErrorCode = "PRG-010002"
)

// ProgressError represents a progress computation error with code and message.
type ProgressError struct {
	Code    ProgressErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProgressError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProgressError) Unwrap() error {
	return e.Err
}

// NewProgressError creates a new ProgressError with the given code and message.
func NewProgressError(code ProgressErrorCode, message string, err error) *ProgressError {
	return &ProgressError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
