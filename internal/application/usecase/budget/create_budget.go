package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID      uuid.UUID
	Category    string
	LimitAmount decimal.Decimal
	Period      entity.BudgetPeriod // Optional, defaults to monthly
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *BudgetView
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	cache       adapter.SummaryCache
	now         func() time.Time
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	cache adapter.SummaryCache,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	category, ok := entity.LookupCategory(entity.CategoryKindBudget, input.Category)
	if !ok {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetCategory,
			fmt.Sprintf("unknown budget category %q", input.Category),
			domainerror.ErrInvalidBudgetCategory,
		)
	}

	limit, err := validateLimit(input.LimitAmount)
	if err != nil {
		return nil, err
	}

	period := entity.BudgetPeriodMonthly
	if input.Period != "" {
		if err := validatePeriod(input.Period); err != nil {
			return nil, err
		}
		period = input.Period
	}

	exists, err := uc.budgetRepo.ExistsByUserAndCategory(ctx, input.UserID, category.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget existence: %w", err)
	}
	if exists {
		return nil, budgetAlreadyExists()
	}

	budget := entity.NewBudget(input.UserID, category.Key, limit, period)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		// A concurrent create can pass the check above; the unique index catches it.
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return nil, budgetAlreadyExists()
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)

	view, err := buildView(ctx, uc.expenseRepo, budget, uc.now())
	if err != nil {
		return nil, err
	}

	return &CreateBudgetOutput{Budget: view}, nil
}

func budgetAlreadyExists() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetAlreadyExists,
		"a budget already exists for this category",
		domainerror.ErrBudgetAlreadyExists,
	)
}
