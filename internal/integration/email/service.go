// Package email queues, renders and delivers transactional email.
package email

import (
	"context"
	"fmt"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// Template data keys shared by the service and the worker.
const (
	keyUserName   = "user_name"
	keyResetURL   = "reset_url"
	keyExpiresIn  = "expires_in"
	keyCategory   = "category"
	keyPeriod     = "period"
	keySpent      = "spent"
	keyLimit      = "limit"
	keyPercentage = "percentage"
	keyStatus     = "status"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		entity.EmailRecipient{Email: input.UserEmail, Name: input.UserName},
		"Reset your password - Personal Finance",
		map[string]any{
			keyUserName:  input.UserName,
			keyResetURL:  input.ResetURL,
			keyExpiresIn: input.ExpiresIn,
		},
	)

	return s.enqueue(ctx, job, "password reset")
}

// QueueBudgetAlertEmail queues a budget threshold alert.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	job := entity.NewEmailJob(
		entity.TemplateBudgetAlert,
		entity.EmailRecipient{Email: input.UserEmail, Name: input.UserName},
		fmt.Sprintf("Your %s budget is at %s%%", input.Category, input.Percentage),
		map[string]any{
			keyUserName:   input.UserName,
			keyCategory:   input.Category,
			keyPeriod:     input.Period,
			keySpent:      input.Spent,
			keyLimit:      input.Limit,
			keyPercentage: input.Percentage,
			keyStatus:     input.Status,
		},
	)

	return s.enqueue(ctx, job, "budget alert")
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob, kind string) error {
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", kind),
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
