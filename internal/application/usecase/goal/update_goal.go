package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update.
// Nil fields are left unchanged. The saved amount only moves through contributions.
type UpdateGoalInput struct {
	GoalID              uuid.UUID
	UserID              uuid.UUID
	Name                *string
	Description         *string
	Category            *string
	TargetAmount        *decimal.Decimal
	MonthlyContribution *decimal.Decimal
	Deadline            *time.Time
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *GoalView
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.SummaryCache
	now      func() time.Time
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, cache adapter.SummaryCache) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		goal.Name = name
	}

	if input.Description != nil {
		description, err := normalizeDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		goal.Description = description
	}

	if input.Category != nil {
		category, err := resolveCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		goal.Category = category
	}

	if input.TargetAmount != nil {
		target, err := validateTarget(*input.TargetAmount)
		if err != nil {
			return nil, err
		}
		goal.TargetAmount = target
	}

	if input.MonthlyContribution != nil {
		monthly, err := validateSaved(*input.MonthlyContribution, "monthly contribution")
		if err != nil {
			return nil, err
		}
		goal.MonthlyContribution = monthly
	}

	if input.Deadline != nil {
		if input.Deadline.IsZero() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingDeadline,
				"deadline is required",
				domainerror.ErrMissingDeadline,
			)
		}
		goal.Deadline = input.Deadline.UTC()
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)

	view, err := buildView(goal, uc.now())
	if err != nil {
		return nil, err
	}

	return &UpdateGoalOutput{Goal: view}, nil
}
