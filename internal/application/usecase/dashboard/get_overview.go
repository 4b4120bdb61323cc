package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
)

const (
	overviewCacheKey = "overview"
	topCategoryLimit = 5
)

var hundred = decimal.NewFromInt(100)

// GetOverviewInput represents the input for the dashboard overview.
type GetOverviewInput struct {
	UserID uuid.UUID
}

// CategorySpending is one slice of this month's spending.
type CategorySpending struct {
	Category   string          `json:"category"`
	Label      string          `json:"label"`
	Color      string          `json:"color"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// GetOverviewOutput represents the dashboard overview.
type GetOverviewOutput struct {
	Month         time.Time          `json:"month"`
	MonthExpenses decimal.Decimal    `json:"month_expenses"`
	ExpenseCount  int                `json:"expense_count"`
	TopCategories []CategorySpending `json:"top_categories"`

	Budgets     progress.Summary `json:"budgets"`
	BudgetCount int              `json:"budget_count"`
	Goals       progress.Summary `json:"goals"`
	GoalCount   int              `json:"goal_count"`

	Financial entity.FinancialSummary `json:"financial"`
	// ExpenseToIncome is declared expenses as a percentage of declared income,
	// unclamped. Nil when no income is declared.
	ExpenseToIncome *float64 `json:"expense_to_income,omitempty"`
	// SavingsProgress is nil when no savings goal is declared.
	SavingsProgress *progress.Result `json:"savings_progress,omitempty"`
}

// GetOverviewUseCase builds the dashboard overview.
type GetOverviewUseCase struct {
	userRepo    adapter.UserRepository
	expenseRepo adapter.ExpenseRepository
	budgetRepo  adapter.BudgetRepository
	goalRepo    adapter.GoalRepository
	cache       adapter.SummaryCache
	now         func() time.Time
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance. cache may be nil.
func NewGetOverviewUseCase(
	userRepo adapter.UserRepository,
	expenseRepo adapter.ExpenseRepository,
	budgetRepo adapter.BudgetRepository,
	goalRepo adapter.GoalRepository,
	cache adapter.SummaryCache,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		goalRepo:    goalRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// Execute returns the cached overview or loads its parts concurrently.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	var cached GetOverviewOutput
	if loadCached(ctx, uc.cache, input.UserID, overviewCacheKey, &cached) {
		return &cached, nil
	}

	now := uc.now()
	monthStart := MonthStart(now)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var (
		user          *entity.User
		totals        []entity.CategoryTotal
		budgetEntries []progress.Entry
		goals         []*entity.Goal
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := uc.userRepo.FindByID(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		user = u
		return nil
	})

	g.Go(func() error {
		t, err := uc.expenseRepo.TotalsByCategory(gctx, input.UserID, monthStart, monthEnd)
		if err != nil {
			return fmt.Errorf("failed to load category totals: %w", err)
		}
		totals = t
		return nil
	})

	g.Go(func() error {
		budgets, err := uc.budgetRepo.FindByUserID(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}
		entries := make([]progress.Entry, 0, len(budgets))
		for _, b := range budgets {
			start, end := b.Window(now)
			spent, err := uc.expenseRepo.SumByCategory(gctx, input.UserID, b.Category, start, end)
			if err != nil {
				return fmt.Errorf("failed to sum spending for budget %s: %w", b.ID, err)
			}
			entries = append(entries, progress.EntryFromDecimal(spent, b.LimitAmount))
		}
		budgetEntries = entries
		return nil
	})

	g.Go(func() error {
		gs, err := uc.goalRepo.FindByUserID(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		goals = gs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	budgetSummary, err := progress.Rollup(budgetEntries)
	if err != nil {
		return nil, err
	}

	goalEntries := make([]progress.Entry, 0, len(goals))
	for _, goal := range goals {
		goalEntries = append(goalEntries, progress.EntryFromDecimal(goal.CurrentAmount, goal.TargetAmount))
	}
	goalSummary, err := progress.Rollup(goalEntries)
	if err != nil {
		return nil, err
	}

	output := &GetOverviewOutput{
		Month:       monthStart,
		Budgets:     budgetSummary,
		BudgetCount: len(budgetEntries),
		Goals:       goalSummary,
		GoalCount:   len(goals),
		Financial:   user.Summary,
	}
	output.MonthExpenses, output.ExpenseCount, output.TopCategories = topCategories(totals)

	if user.Summary.Income.IsPositive() {
		ratio := user.Summary.Expenses.Mul(hundred).Div(user.Summary.Income).Round(2).InexactFloat64()
		output.ExpenseToIncome = &ratio
	}

	if user.Summary.SavingsGoal.IsPositive() {
		savings, err := progress.ComputeDecimal(user.Summary.Savings, user.Summary.SavingsGoal)
		if err != nil {
			return nil, err
		}
		output.SavingsProgress = &savings
	}

	storeCached(ctx, uc.cache, input.UserID, overviewCacheKey, output)

	return output, nil
}

// topCategories returns the month total, the expense count and the largest
// categories with their share of the total.
func topCategories(totals []entity.CategoryTotal) (decimal.Decimal, int, []CategorySpending) {
	monthTotal := decimal.Zero
	count := 0
	for _, t := range totals {
		monthTotal = monthTotal.Add(t.Total)
		count += t.Count
	}

	sorted := make([]entity.CategoryTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Total.Equal(sorted[j].Total) {
			return sorted[i].Total.GreaterThan(sorted[j].Total)
		}
		return sorted[i].Category < sorted[j].Category
	})
	if len(sorted) > topCategoryLimit {
		sorted = sorted[:topCategoryLimit]
	}

	spending := make([]CategorySpending, 0, len(sorted))
	for _, t := range sorted {
		item := CategorySpending{
			Category: t.Category,
			Label:    t.Category,
			Amount:   t.Total,
			Count:    t.Count,
		}
		if c, ok := entity.LookupCategory(entity.CategoryKindExpense, t.Category); ok {
			item.Label = c.Label
			item.Color = c.Color
		}
		if monthTotal.IsPositive() {
			item.Percentage = t.Total.Mul(hundred).Div(monthTotal).Round(1).InexactFloat64()
		}
		spending = append(spending, item)
	}

	return monthTotal, count, spending
}

func loadCached(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID, key string, dest any) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Get(ctx, userID, key, dest)
	if err != nil {
		slog.Warn("Summary cache read failed", "error", err, "userID", userID, "key", key)
		return false
	}
	return hit
}

func storeCached(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID, key string, value any) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, userID, key, value); err != nil {
		slog.Warn("Summary cache write failed", "error", err, "userID", userID, "key", key)
	}
}
