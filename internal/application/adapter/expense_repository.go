// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create stores a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByUser lists a user's expenses matching filter, newest first, and
	// returns the total number of matches ignoring paging.
	FindByUser(ctx context.Context, userID uuid.UUID, filter entity.ExpenseFilter) ([]*entity.Expense, int64, error)

	// Delete soft-deletes an expense.
	Delete(ctx context.Context, id uuid.UUID) error

	// SumByCategory returns the user's spending in category within [start, end).
	SumByCategory(ctx context.Context, userID uuid.UUID, category string, start, end time.Time) (decimal.Decimal, error)

	// TotalsByCategory groups the user's spending within [start, end) by category,
	// largest first.
	TotalsByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CategoryTotal, error)

	// MonthlyTotals returns one total per calendar month within [start, end),
	// oldest first. Months without expenses are omitted.
	MonthlyTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.MonthlyTotal, error)
}
