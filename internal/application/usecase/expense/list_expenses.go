// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID    uuid.UUID
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses   []*entity.Expense
	Pagination PaginationOutput
}

// ListExpensesUseCase lists a user's expenses, newest first.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute lists expenses matching the filter.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	filter := entity.ExpenseFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Page:      input.Page,
		Limit:     input.Limit,
	}

	if input.Category != "" {
		category, ok := entity.LookupCategory(entity.CategoryKindExpense, input.Category)
		if !ok {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidExpenseCategory,
				fmt.Sprintf("unknown expense category %q", input.Category),
				domainerror.ErrInvalidExpenseCategory,
			)
		}
		filter.Category = category.Key
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"end_date must not be before start_date",
			domainerror.ErrInvalidExpenseDate,
		)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	expenses, total, err := uc.expenseRepo.FindByUser(ctx, input.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &ListExpensesOutput{
		Expenses: expenses,
		Pagination: PaginationOutput{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
