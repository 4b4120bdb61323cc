package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals   []*GoalView
	Summary progress.Summary
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	now      func() time.Time
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
		now:      time.Now,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	now := uc.now()
	output := &ListGoalsOutput{
		Goals: make([]*GoalView, 0, len(goals)),
	}
	entries := make([]progress.Entry, 0, len(goals))

	for _, g := range goals {
		view, err := buildView(g, now)
		if err != nil {
			return nil, err
		}
		output.Goals = append(output.Goals, view)
		entries = append(entries, progress.EntryFromDecimal(g.CurrentAmount, g.TargetAmount))
	}

	output.Summary, err = progress.Rollup(entries)
	if err != nil {
		return nil, err
	}

	return output, nil
}
