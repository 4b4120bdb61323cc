// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserID retrieves all active budgets for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindByUserAndCategory retrieves the active budget for a user and category.
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Budget, error)

	// ExistsByUserAndCategory checks if a budget exists for the given user and category.
	ExistsByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (bool, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
