package error

import "errors"

var (
	ErrEmailJobNotFound     = errors.New("email job not found")
	ErrTemplateRenderFailed = errors.New("failed to render email template")
)

// EmailErrorCode identifies why an email could not be queued, rendered or
// delivered. Format: EMAIL-XXYYYY.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// The worker retries temporary failures with backoff and gives up on
	// permanent ones immediately.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020002"

	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030001"
)

// EmailError is returned by the email service, the provider client and the
// worker's renderer.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error { return e.Err }

// Permanent reports whether retrying the send cannot succeed.
func (e *EmailError) Permanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeTemplateRenderFailed
}

func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
