package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetView
	Summary progress.Summary
}

// ListBudgetsUseCase lists budgets with their current spending and a rollup.
type ListBudgetsUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	now         func() time.Time
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository, expenseRepo adapter.ExpenseRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	now := uc.now()
	views := make([]*BudgetView, 0, len(budgets))
	entries := make([]progress.Entry, 0, len(budgets))

	for _, b := range budgets {
		view, err := buildView(ctx, uc.expenseRepo, b, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
		entries = append(entries, progress.EntryFromDecimal(view.Spent, b.LimitAmount))
	}

	summary, err := progress.Rollup(entries)
	if err != nil {
		return nil, err
	}

	return &ListBudgetsOutput{
		Budgets: views,
		Summary: summary,
	}, nil
}
