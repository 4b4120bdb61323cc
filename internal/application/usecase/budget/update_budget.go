package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// UpdateBudgetInput represents the input for budget update.
// Nil fields are left unchanged.
type UpdateBudgetInput struct {
	BudgetID    uuid.UUID
	UserID      uuid.UUID
	LimitAmount *decimal.Decimal
	Period      *entity.BudgetPeriod
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *BudgetView
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	cache       adapter.SummaryCache
	now         func() time.Time
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	cache adapter.SummaryCache,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.LimitAmount != nil {
		limit, err := validateLimit(*input.LimitAmount)
		if err != nil {
			return nil, err
		}
		budget.LimitAmount = limit
	}

	if input.Period != nil {
		if err := validatePeriod(*input.Period); err != nil {
			return nil, err
		}
		budget.Period = *input.Period
	}

	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)

	view, err := buildView(ctx, uc.expenseRepo, budget, uc.now())
	if err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{Budget: view}, nil
}
