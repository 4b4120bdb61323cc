package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

// UpdateFinancialSummaryInput replaces the user's declared figures.
type UpdateFinancialSummaryInput struct {
	UserID      uuid.UUID
	Balance     decimal.Decimal
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Savings     decimal.Decimal
	SavingsGoal decimal.Decimal
}

// UpdateFinancialSummaryOutput represents the stored summary.
type UpdateFinancialSummaryOutput struct {
	Summary entity.FinancialSummary
}

// UpdateFinancialSummaryUseCase stores the self-declared balance, income,
// expenses, savings and savings goal.
type UpdateFinancialSummaryUseCase struct {
	userRepo adapter.UserRepository
	cache    adapter.SummaryCache
}

// NewUpdateFinancialSummaryUseCase creates a new UpdateFinancialSummaryUseCase instance.
func NewUpdateFinancialSummaryUseCase(userRepo adapter.UserRepository, cache adapter.SummaryCache) *UpdateFinancialSummaryUseCase {
	return &UpdateFinancialSummaryUseCase{
		userRepo: userRepo,
		cache:    cache,
	}
}

// Execute validates every field against the summary ceiling and saves them together.
func (uc *UpdateFinancialSummaryUseCase) Execute(ctx context.Context, input UpdateFinancialSummaryInput) (*UpdateFinancialSummaryOutput, error) {
	var summary entity.FinancialSummary
	fields := []struct {
		name  string
		value decimal.Decimal
		dest  *decimal.Decimal
	}{
		{"balance", input.Balance, &summary.Balance},
		{"income", input.Income, &summary.Income},
		{"expenses", input.Expenses, &summary.Expenses},
		{"savings", input.Savings, &summary.Savings},
		{"savings_goal", input.SavingsGoal, &summary.SavingsGoal},
	}
	for _, f := range fields {
		rounded, err := valueobject.NormalizeAmount(f.value, valueobject.SummaryCeiling, true)
		if err != nil {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeInvalidSummaryAmount,
				f.name+" must be between 0 and 1,000,000,000",
				fmt.Errorf("%w: %w", domainerror.ErrInvalidSummaryAmount, err),
			)
		}
		*f.dest = rounded
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	user.Summary = summary
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update financial summary: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, user.ID); err != nil {
			slog.Warn("Failed to invalidate cached summaries", "error", err, "userID", user.ID)
		}
	}

	return &UpdateFinancialSummaryOutput{Summary: user.Summary}, nil
}
