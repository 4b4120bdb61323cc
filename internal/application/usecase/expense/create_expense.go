// Package expense contains expense-related use cases.
package expense

import (
	"context"
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
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

// BudgetAlertChecker re-evaluates a category budget after new spending.
type BudgetAlertChecker interface {
	CheckAfterExpense(ctx context.Context, expense *entity.Expense) error
}

// CreateExpenseInput represents the input for recording an expense.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        *time.Time
}

// CreateExpenseOutput represents the output of recording an expense.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase records an expense.
type CreateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	alertChecker BudgetAlertChecker
	cache        adapter.SummaryCache
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
// alertChecker and cache may be nil.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	alertChecker BudgetAlertChecker,
	cache adapter.SummaryCache,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo:  expenseRepo,
		alertChecker: alertChecker,
		cache:        cache,
	}
}

// Execute validates and stores the expense, then refreshes derived state.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" || utf8.RuneCountInString(description) > entity.MaxExpenseDescriptionLength {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDescription,
			"description must be between 1 and 500 characters",
			domainerror.ErrInvalidExpenseDescription,
		)
	}

	amount, err := valueobject.NormalizeAmount(input.Amount, valueobject.TransactionCeiling, false)
	if err != nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than 0 and less than 10,000,000",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidExpenseAmount, err),
		)
	}

	category, ok := entity.LookupCategory(entity.CategoryKindExpense, input.Category)
	if !ok {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			fmt.Sprintf("unknown expense category %q", input.Category),
			domainerror.ErrInvalidExpenseCategory,
		)
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	expense := entity.NewExpense(input.UserID, description, amount, category.Key, date)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)

	if uc.alertChecker != nil {
		if err := uc.alertChecker.CheckAfterExpense(ctx, expense); err != nil {
			slog.Warn("Budget alert check failed", "error", err, "userID", input.UserID, "category", expense.Category)
		}
	}

	return &CreateExpenseOutput{Expense: expense}, nil
}

func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate cached summaries", "error", err, "userID", userID)
	}
}
