// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput is a rendered message ready for the provider.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the provider's message id.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender delivers a rendered email through an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService queues templated emails for the background worker.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
	QueueBudgetAlertEmail(ctx context.Context, input QueueBudgetAlertInput) error
}

// QueuePasswordResetInput is the data for a password reset email.
type QueuePasswordResetInput struct {
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// QueueBudgetAlertInput is the data for a budget threshold alert.
type QueueBudgetAlertInput struct {
	UserEmail  string
	UserName   string
	Category   string
	Period     string
	Spent      string
	Limit      string
	Percentage string
	Status     string
}
