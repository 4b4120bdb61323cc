package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// EmailQueueRepository persists the outbound email queue.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs claims up to limit pending jobs whose schedule has passed,
	// oldest schedule first, and returns them marked processing.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	Update(ctx context.Context, job *entity.EmailJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// DeleteOldSentJobs purges sent jobs processed more than olderThanDays ago.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
