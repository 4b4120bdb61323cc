// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names a template under the email templates directory.
type EmailTemplateType string

const (
	TemplatePasswordReset EmailTemplateType = "password_reset"
	TemplateBudgetAlert   EmailTemplateType = "budget_alert"
)

// DefaultEmailMaxAttempts is how many sends a job gets before it is failed.
const DefaultEmailMaxAttempts = 3

// emailRetryDelays is indexed by the number of attempts already made.
var emailRetryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailRecipient identifies who an email goes to.
type EmailRecipient struct {
	Email string
	Name  string
}

// EmailJob is an email waiting in the outbound queue.
type EmailJob struct {
	ID           uuid.UUID
	TemplateType EmailTemplateType
	Recipient    EmailRecipient
	Subject      string
	TemplateData map[string]any
	Status       EmailStatus
	Attempts     int
	MaxAttempts  int
	LastError    string
	ProviderID   string
	CreatedAt    time.Time
	ScheduledAt  time.Time
	ProcessedAt  *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(templateType EmailTemplateType, to EmailRecipient, subject string, data map[string]any) *EmailJob {
	now := time.Now().UTC()
	if data == nil {
		data = map[string]any{}
	}
	return &EmailJob{
		ID:           uuid.New(),
		TemplateType: templateType,
		Recipient:    to,
		Subject:      subject,
		TemplateData: data,
		Status:       EmailStatusPending,
		MaxAttempts:  DefaultEmailMaxAttempts,
		CreatedAt:    now,
		ScheduledAt:  now,
	}
}

// MarkProcessing claims the job for a worker.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery and the provider's message id.
func (e *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. Permanent failures and exhausted jobs
// move to failed; anything else is rescheduled.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	now := time.Now().UTC()
	if permanent || !e.CanRetry() {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(e.nextDelay())
}

func (e *EmailJob) nextDelay() time.Duration {
	if e.Attempts < len(emailRetryDelays) {
		return emailRetryDelays[e.Attempts]
	}
	return emailRetryDelays[len(emailRetryDelays)-1]
}

// CanRetry reports whether the job has attempts left.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}
