// Package error defines domain-specific errors for the personal finance application.
package error

import "errors"

// Savings goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidGoalName is returned when the goal name is empty or too long.
	ErrInvalidGoalName = errors.New("invalid goal name")

	// ErrInvalidTargetAmount is returned when the target is zero, negative or above the goal ceiling.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidCurrentAmount is returned when the saved amount is negative or above the goal ceiling.
	ErrInvalidCurrentAmount = errors.New("invalid current amount")

	// ErrInvalidContribution is returned when a contribution is not positive or would overflow the ceiling.
	ErrInvalidContribution = errors.New("invalid contribution amount")

	// ErrMissingDeadline is returned when a goal has no deadline.
	ErrMissingDeadline = errors.New("deadline is required")

	// ErrInvalidGoalCategory is returned when the category is not in the goal catalog.
	ErrInvalidGoalCategory = errors.New("invalid goal category")

	// ErrGoalDescriptionTooLong is returned when the goal description exceeds the maximum length.
	ErrGoalDescriptionTooLong = errors.New("goal description too long")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound            GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalName         GoalErrorCode = "GOL-010002"
	ErrCodeInvalidTargetAmount     GoalErrorCode = "GOL-010003"
	ErrCodeInvalidCurrentAmount    GoalErrorCode = "GOL-010004"
	ErrCodeMissingDeadline         GoalErrorCode = "GOL-010005"
	ErrCodeInvalidGoalCategory     GoalErrorCode = "GOL-010006"
	ErrCodeGoalDescriptionTooLong  GoalErrorCode = "GOL-010007"
	ErrCodeUnauthorizedGoalAccess  GoalErrorCode = "GOL-010008"
	ErrCodeMissingGoalFields       GoalErrorCode = "GOL-010009"

	// Contribution errors (02XXXX)
	ErrCodeInvalidContribution GoalErrorCode = "GOL-020001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
