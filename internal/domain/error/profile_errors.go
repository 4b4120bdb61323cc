// Package error defines domain-specific errors for the personal finance application.
package error

import "errors"

// Profile domain errors.
var (
	// ErrInvalidFullName is returned when the full name is longer than allowed.
	ErrInvalidFullName = errors.New("invalid full name")

	// ErrInvalidSummaryAmount is returned when a financial summary field is negative or above the ceiling.
	ErrInvalidSummaryAmount = errors.New("invalid financial summary amount")
)

// ProfileErrorCode defines error codes for profile errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type ProfileErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidFullName      ProfileErrorCode = "USR-010001"
	ErrCodeInvalidSummaryAmount ProfileErrorCode = "USR-010002"
	ErrCodeMissingProfileFields ProfileErrorCode = "USR-010003"

	// Lookup errors (02XXXX)
	ErrCodeProfileNotFound ProfileErrorCode = "USR-020001"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
