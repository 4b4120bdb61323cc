// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

// GoalView is a goal with its derived progress and deadline forecast.
type GoalView struct {
	Goal     *entity.Goal
	Progress progress.Result
	Label    string
	Forecast entity.GoalForecast
}

func buildView(goal *entity.Goal, now time.Time) (*GoalView, error) {
	result, err := progress.ComputeDecimal(goal.CurrentAmount, goal.TargetAmount)
	if err != nil {
		return nil, err
	}

	return &GoalView{
		Goal:     goal,
		Progress: result,
		Label:    progress.GoalLabels.Label(result),
		Forecast: goal.Forecast(now),
	}, nil
}

func findOwnedGoal(ctx context.Context, goalRepo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	return goal, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > entity.MaxGoalNameLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalName,
			"name must be between 1 and 100 characters",
			domainerror.ErrInvalidGoalName,
		)
	}
	return name, nil
}

func normalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > entity.MaxGoalDescriptionLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalDescriptionTooLong,
			"description must be at most 500 characters",
			domainerror.ErrGoalDescriptionTooLong,
		)
	}
	return description, nil
}

func resolveCategory(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return entity.GoalCategoryOther, nil
	}
	category, ok := entity.LookupCategory(entity.CategoryKindGoal, key)
	if !ok {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalCategory,
			fmt.Sprintf("unknown goal category %q", key),
			domainerror.ErrInvalidGoalCategory,
		)
	}
	return category.Key, nil
}

func validateTarget(target decimal.Decimal) (decimal.Decimal, error) {
	rounded, err := valueobject.NormalizeAmount(target, valueobject.GoalCeiling, false)
	if err != nil {
		return decimal.Zero, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than 0 and less than 100,000,000",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidTargetAmount, err),
		)
	}
	return rounded, nil
}

// validateSaved checks amounts that may be zero: the saved balance and the
// planned monthly contribution. Both validators return the value rounded to cents.
func validateSaved(amount decimal.Decimal, field string) (decimal.Decimal, error) {
	rounded, err := valueobject.NormalizeAmount(amount, valueobject.GoalCeiling, true)
	if err != nil {
		return decimal.Zero, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidCurrentAmount,
			field+" must be between 0 and 100,000,000",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidCurrentAmount, err),
		)
	}
	return rounded, nil
}

func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate cached summaries", "error", err, "userID", userID)
	}
}
