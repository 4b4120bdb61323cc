package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

// ContributeGoalInput represents a deposit toward a goal.
type ContributeGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Amount decimal.Decimal
}

// ContributeGoalOutput represents the goal after the deposit.
type ContributeGoalOutput struct {
	Goal *GoalView
}

// ContributeGoalUseCase adds money to a goal's saved amount.
type ContributeGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.SummaryCache
	now      func() time.Time
}

// NewContributeGoalUseCase creates a new ContributeGoalUseCase instance.
func NewContributeGoalUseCase(goalRepo adapter.GoalRepository, cache adapter.SummaryCache) *ContributeGoalUseCase {
	return &ContributeGoalUseCase{
		goalRepo: goalRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// Execute records the contribution. The new balance must stay below the goal ceiling.
func (uc *ContributeGoalUseCase) Execute(ctx context.Context, input ContributeGoalInput) (*ContributeGoalOutput, error) {
	amount, err := valueobject.NormalizeAmount(input.Amount, valueobject.GoalCeiling, false)
	if err != nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution must be greater than 0 and less than 100,000,000",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidContribution, err),
		)
	}

	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := valueobject.ValidateAmount(goal.CurrentAmount.Add(amount), valueobject.GoalCeiling, true); err != nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution would push the saved amount past 100,000,000",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidContribution, err),
		)
	}

	updated, err := uc.goalRepo.AddContribution(ctx, goal.ID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add contribution: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)

	view, err := buildView(updated, uc.now())
	if err != nil {
		return nil, err
	}

	return &ContributeGoalOutput{Goal: view}, nil
}
