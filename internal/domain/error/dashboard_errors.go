package error

import "errors"

// ErrInvalidTrendMonths is returned when the trend window is outside 1..24.
var ErrInvalidTrendMonths = errors.New("months must be between 1 and 24")

// DashboardErrorCode defines error codes for dashboard errors.
type DashboardErrorCode string

const ErrCodeInvalidTrendMonths DashboardErrorCode = "DSH-010001"

// DashboardError is a validation failure on a dashboard query.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

func (e *DashboardError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DashboardError) Unwrap() error { return e.Err }

func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{Code: code, Message: message, Err: err}
}
