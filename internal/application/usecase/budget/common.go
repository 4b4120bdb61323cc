// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

// BudgetView is a budget with its spending in the current period window.
type BudgetView struct {
	Budget      *entity.Budget
	Spent       decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
	Progress    progress.Result
	Label       string
}

// buildView loads the spending for budget's current window and derives its progress.
func buildView(ctx context.Context, expenseRepo adapter.ExpenseRepository, budget *entity.Budget, now time.Time) (*BudgetView, error) {
	start, end := budget.Window(now)

	spent, err := expenseRepo.SumByCategory(ctx, budget.UserID, budget.Category, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum spending for budget %s: %w", budget.ID, err)
	}

	result, err := progress.ComputeDecimal(spent, budget.LimitAmount)
	if err != nil {
		return nil, err
	}

	return &BudgetView{
		Budget:      budget,
		Spent:       spent,
		PeriodStart: start,
		PeriodEnd:   end,
		Progress:    result,
		Label:       progress.BudgetLabels.Label(result),
	}, nil
}

// findOwnedBudget loads a budget and checks it belongs to userID.
func findOwnedBudget(ctx context.Context, budgetRepo adapter.BudgetRepository, budgetID, userID uuid.UUID) (*entity.Budget, error) {
	budget, err := budgetRepo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.UserID != userID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeUnauthorizedBudgetAccess,
			"not authorized to access this budget",
			domainerror.ErrUnauthorizedBudgetAccess,
		)
	}

	return budget, nil
}

// validateLimit returns the limit rounded to cents.
func validateLimit(limit decimal.Decimal) (decimal.Decimal, error) {
	rounded, err := valueobject.NormalizeAmount(limit, valueobject.TransactionCeiling, false)
	if err != nil {
		return decimal.Zero, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidLimitAmount,
			"limit amount must be greater than 0 and less than 10,000,000",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidLimitAmount, err),
		)
	}
	return rounded, nil
}

func validatePeriod(period entity.BudgetPeriod) error {
	if !period.IsValid() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'weekly', 'monthly', or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	return nil
}

func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate cached summaries", "error", err, "userID", userID)
	}
}
