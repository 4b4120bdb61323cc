package budget

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
)

// GetBudgetInput represents the input for getting a budget.
type GetBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// GetBudgetOutput represents the output of getting a budget.
type GetBudgetOutput struct {
	Budget *BudgetView
}

// GetBudgetUseCase handles getting a budget by ID.
type GetBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	now         func() time.Time
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(budgetRepo adapter.BudgetRepository, expenseRepo adapter.ExpenseRepository) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

// Execute performs the budget retrieval.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	view, err := buildView(ctx, uc.expenseRepo, budget, uc.now())
	if err != nil {
		return nil, err
	}

	return &GetBudgetOutput{Budget: view}, nil
}
