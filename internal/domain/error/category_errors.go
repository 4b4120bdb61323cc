package error

import "errors"

var (
	// ErrInvalidCategoryKind is returned for a catalog other than expense or goal.
	ErrInvalidCategoryKind = errors.New("invalid category kind")

	ErrInvalidStatisticsRange = errors.New("invalid statistics range")
)

// CategoryErrorCode defines error codes for the category catalogs.
type CategoryErrorCode string

const (
	ErrCodeInvalidCategoryKind    CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidStatisticsRange CategoryErrorCode = "CAT-010002"
)

type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CategoryError) Unwrap() error { return e.Err }

func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{Code: code, Message: message, Err: err}
}
