package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID              uuid.UUID
	Name                string
	Description         string
	Category            string // Optional, defaults to other
	TargetAmount        decimal.Decimal
	CurrentAmount       *decimal.Decimal // Optional pre-seeded balance
	MonthlyContribution *decimal.Decimal // Optional
	Deadline            *time.Time
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *GoalView
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.SummaryCache
	now      func() time.Time
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, cache adapter.SummaryCache) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	category, err := resolveCategory(input.Category)
	if err != nil {
		return nil, err
	}

	target, err := validateTarget(input.TargetAmount)
	if err != nil {
		return nil, err
	}

	if input.Deadline == nil || input.Deadline.IsZero() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingDeadline,
			"deadline is required",
			domainerror.ErrMissingDeadline,
		)
	}

	goal := entity.NewGoal(input.UserID, name, target, input.Deadline.UTC())
	goal.Description = description
	goal.Category = category

	if input.CurrentAmount != nil {
		current, err := validateSaved(*input.CurrentAmount, "current amount")
		if err != nil {
			return nil, err
		}
		goal.CurrentAmount = current
	}

	if input.MonthlyContribution != nil {
		monthly, err := validateSaved(*input.MonthlyContribution, "monthly contribution")
		if err != nil {
			return nil, err
		}
		goal.MonthlyContribution = monthly
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)

	view, err := buildView(goal, uc.now())
	if err != nil {
		return nil, err
	}

	return &CreateGoalOutput{Goal: view}, nil
}
