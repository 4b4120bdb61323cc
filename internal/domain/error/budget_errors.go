// Package error defines domain-specific errors for the personal finance application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when the user already has a budget for the category.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category")

	// ErrInvalidLimitAmount is returned when the limit amount is zero, negative or above the ceiling.
	ErrInvalidLimitAmount = errors.New("invalid limit amount")

	// ErrInvalidBudgetCategory is returned when the category is not in the budget catalog.
	ErrInvalidBudgetCategory = errors.New("invalid budget category")

	// ErrUnauthorizedBudgetAccess is returned when user is not authorized to access a budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")

	// ErrInvalidBudgetPeriod is returned when the budget period is invalid.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BUD-010001"
	ErrCodeBudgetAlreadyExists      BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidLimitAmount       BudgetErrorCode = "BUD-010003"
	ErrCodeInvalidBudgetCategory    BudgetErrorCode = "BUD-010004"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BUD-010005"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BUD-010006"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BUD-010007"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
