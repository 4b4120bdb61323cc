package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
)

// AlertChecker queues a budget alert email when an expense pushes its
// category budget into the danger band.
type AlertChecker struct {
	budgetRepo   adapter.BudgetRepository
	expenseRepo  adapter.ExpenseRepository
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
	now          func() time.Time
}

// NewAlertChecker creates a new AlertChecker instance.
func NewAlertChecker(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *AlertChecker {
	return &AlertChecker{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		emailService: emailService,
		now:          time.Now,
	}
}

// CheckAfterExpense compares the budget status with and without expense and
// alerts only on the transition into danger. The expense must already be stored.
func (c *AlertChecker) CheckAfterExpense(ctx context.Context, expense *entity.Expense) error {
	budget, err := c.budgetRepo.FindByUserAndCategory(ctx, expense.UserID, expense.Category)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find budget for category: %w", err)
	}

	start, end := budget.Window(c.now())
	if expense.Date.Before(start) || !expense.Date.Before(end) {
		return nil
	}

	spent, err := c.expenseRepo.SumByCategory(ctx, expense.UserID, budget.Category, start, end)
	if err != nil {
		return fmt.Errorf("failed to sum budget spending: %w", err)
	}

	after, err := progress.ComputeDecimal(spent, budget.LimitAmount)
	if err != nil {
		return err
	}
	if after.Status != progress.StatusDanger {
		return nil
	}

	before, err := progress.ComputeDecimal(decimal.Max(spent.Sub(expense.Amount), decimal.Zero), budget.LimitAmount)
	if err != nil {
		return err
	}
	if before.Status == progress.StatusDanger {
		return nil
	}

	user, err := c.userRepo.FindByID(ctx, expense.UserID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !user.BudgetAlerts {
		return nil
	}

	label := budget.Category
	if category, ok := entity.LookupCategory(entity.CategoryKindBudget, budget.Category); ok {
		label = category.Label
	}

	ratio := spent.Mul(decimal.NewFromInt(100)).Div(budget.LimitAmount)

	err = c.emailService.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
		UserEmail:  user.Email,
		UserName:   user.Name,
		Category:   label,
		Period:     string(budget.Period),
		Spent:      spent.StringFixed(2),
		Limit:      budget.LimitAmount.StringFixed(2),
		Percentage: ratio.StringFixed(0),
		Status:     progress.BudgetLabels.Label(after),
	})
	if err != nil {
		return fmt.Errorf("failed to queue budget alert: %w", err)
	}

	slog.Info("Budget alert queued",
		"userID", user.ID,
		"budgetID", budget.ID,
		"spent", spent.String(),
		"limit", budget.LimitAmount.String(),
	)

	return nil
}
