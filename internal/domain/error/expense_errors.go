// Package error defines domain-specific errors for the personal finance application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the system.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotAuthorizedToModifyExpense is returned when user does not own the expense.
	ErrNotAuthorizedToModifyExpense = errors.New("not authorized to modify expense")

	// ErrInvalidExpenseAmount is returned when the amount is zero, negative or above the ceiling.
	ErrInvalidExpenseAmount = errors.New("invalid expense amount")

	// ErrInvalidExpenseDescription is returned when the description is empty or longer than allowed.
	ErrInvalidExpenseDescription = errors.New("invalid expense description")

	// ErrInvalidExpenseCategory is returned when the category is not in the expense catalog.
	ErrInvalidExpenseCategory = errors.New("invalid expense category")

	// ErrInvalidExpenseDate is returned when the expense date cannot be parsed.
	ErrInvalidExpenseDate = errors.New("invalid expense date")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount      ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseDescription ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidExpenseCategory    ExpenseErrorCode = "EXP-010003"
	ErrCodeInvalidExpenseDate        ExpenseErrorCode = "EXP-010004"
	ErrCodeMissingExpenseFields      ExpenseErrorCode = "EXP-010005"

	// Access errors (02XXXX)
	ErrCodeExpenseNotFound      ExpenseErrorCode = "EXP-020001"
	ErrCodeNotAuthorizedExpense ExpenseErrorCode = "EXP-020002"

	// Suggestion errors (03XXXX)
	ErrCodeSuggestionUnavailable ExpenseErrorCode = "EXP-030001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
