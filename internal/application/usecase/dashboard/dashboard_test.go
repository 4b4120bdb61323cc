package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

var fixedNow = time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

type stubUserRepo struct {
	adapter.UserRepository
	user *entity.User
}

func (r *stubUserRepo) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return r.user, nil
}

type stubExpenseRepo struct {
	adapter.ExpenseRepository
	totals  []entity.CategoryTotal
	spent   map[string]decimal.Decimal
	monthly []entity.MonthlyTotal
	calls   int
}

func (r *stubExpenseRepo) TotalsByCategory(context.Context, uuid.UUID, time.Time, time.Time) ([]entity.CategoryTotal, error) {
	r.calls++
	return r.totals, nil
}

func (r *stubExpenseRepo) SumByCategory(_ context.Context, _ uuid.UUID, category string, _, _ time.Time) (decimal.Decimal, error) {
	return r.spent[category], nil
}

func (r *stubExpenseRepo) MonthlyTotals(context.Context, uuid.UUID, time.Time, time.Time) ([]entity.MonthlyTotal, error) {
	r.calls++
	return r.monthly, nil
}

type stubBudgetRepo struct {
	adapter.BudgetRepository
	budgets []*entity.Budget
}

func (r *stubBudgetRepo) FindByUserID(context.Context, uuid.UUID) ([]*entity.Budget, error) {
	return r.budgets, nil
}

type stubGoalRepo struct {
	adapter.GoalRepository
	goals []*entity.Goal
}

func (r *stubGoalRepo) FindByUserID(context.Context, uuid.UUID) ([]*entity.Goal, error) {
	return r.goals, nil
}

// memoryCache stores JSON like the Redis cache does.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	raw, ok := c.entries[userID.String()+":"+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[userID.String()+":"+key] = raw
	return nil
}

func (c *memoryCache) Invalidate(context.Context, uuid.UUID) error {
	c.entries = map[string][]byte{}
	return nil
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetOverview(t *testing.T) {
	user := entity.NewUser("sam@example.com", "Sam", "hash")
	user.Summary = entity.FinancialSummary{
		Income:      amount("4500"),
		Expenses:    amount("3250.75"),
		Savings:     amount("12800"),
		SavingsGoal: amount("15000"),
	}

	expenses := &stubExpenseRepo{
		totals: []entity.CategoryTotal{
			{Category: "transport", Total: amount("100"), Count: 4},
			{Category: "food", Total: amount("300"), Count: 10},
			{Category: "other", Total: amount("100"), Count: 1},
		},
		spent: map[string]decimal.Decimal{
			"food":      amount("300"),
			"transport": amount("150"),
		},
	}
	budgets := &stubBudgetRepo{budgets: []*entity.Budget{
		entity.NewBudget(user.ID, "food", amount("400"), entity.BudgetPeriodMonthly),
		entity.NewBudget(user.ID, "transport", amount("100"), entity.BudgetPeriodWeekly),
	}}
	goal := entity.NewGoal(user.ID, "Car", amount("1000"), fixedNow.AddDate(1, 0, 0))
	goal.CurrentAmount = amount("250")
	goals := &stubGoalRepo{goals: []*entity.Goal{goal}}

	uc := NewGetOverviewUseCase(&stubUserRepo{user: user}, expenses, budgets, goals, nil)
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.Execute(context.Background(), GetOverviewInput{UserID: user.ID})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), out.Month)
	assert.Equal(t, "500", out.MonthExpenses.String())
	assert.Equal(t, 15, out.ExpenseCount)

	require.Len(t, out.TopCategories, 3)
	assert.Equal(t, "food", out.TopCategories[0].Category)
	assert.Equal(t, "Food", out.TopCategories[0].Label)
	assert.Equal(t, 60.0, out.TopCategories[0].Percentage)
	assert.Equal(t, "other", out.TopCategories[1].Category)
	assert.Equal(t, 20.0, out.TopCategories[1].Percentage)

	assert.Equal(t, 2, out.BudgetCount)
	assert.Equal(t, "450", out.Budgets.TotalCurrent.String())
	assert.Equal(t, 90.0, out.Budgets.OverallPercentage)
	assert.Equal(t, 1, out.Budgets.OverCount)

	assert.Equal(t, 1, out.GoalCount)
	assert.Equal(t, 25.0, out.Goals.OverallPercentage)

	require.NotNil(t, out.ExpenseToIncome)
	assert.InDelta(t, 72.24, *out.ExpenseToIncome, 0.001)
	require.NotNil(t, out.SavingsProgress)
	assert.InDelta(t, 85.33, out.SavingsProgress.Percentage, 0.01)
}

func TestGetOverview_EmptyUser(t *testing.T) {
	user := entity.NewUser("new@example.com", "New", "hash")
	uc := NewGetOverviewUseCase(&stubUserRepo{user: user}, &stubExpenseRepo{}, &stubBudgetRepo{}, &stubGoalRepo{}, nil)

	out, err := uc.Execute(context.Background(), GetOverviewInput{UserID: user.ID})
	require.NoError(t, err)

	assert.True(t, out.MonthExpenses.IsZero())
	assert.Empty(t, out.TopCategories)
	assert.Equal(t, 0.0, out.Budgets.OverallPercentage)
	assert.Equal(t, 0.0, out.Goals.OverallPercentage)
	assert.Nil(t, out.ExpenseToIncome)
	assert.Nil(t, out.SavingsProgress)
}

func TestGetOverview_ServesFromCache(t *testing.T) {
	user := entity.NewUser("c@example.com", "C", "hash")
	expenses := &stubExpenseRepo{totals: []entity.CategoryTotal{{Category: "food", Total: amount("42.50"), Count: 2}}}
	cache := newMemoryCache()
	uc := NewGetOverviewUseCase(&stubUserRepo{user: user}, expenses, &stubBudgetRepo{}, &stubGoalRepo{}, cache)

	first, err := uc.Execute(context.Background(), GetOverviewInput{UserID: user.ID})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), GetOverviewInput{UserID: user.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, expenses.calls)
	assert.True(t, first.MonthExpenses.Equal(second.MonthExpenses))
	assert.Equal(t, first.TopCategories[0].Category, second.TopCategories[0].Category)

	require.NoError(t, cache.Invalidate(context.Background(), user.ID))
	_, err = uc.Execute(context.Background(), GetOverviewInput{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, expenses.calls)
}

func TestGetTrends(t *testing.T) {
	expenses := &stubExpenseRepo{monthly: []entity.MonthlyTotal{
		{Month: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Total: amount("120.10")},
		{Month: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Total: amount("80")},
	}}
	uc := NewGetTrendsUseCase(expenses, nil)
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.Execute(context.Background(), GetTrendsInput{UserID: uuid.New()})
	require.NoError(t, err)

	require.Len(t, out.Trends, DefaultTrendMonths)
	assert.Equal(t, "Nov 2025", out.Trends[0].PeriodLabel)
	assert.Equal(t, "Apr 2026", out.Trends[5].PeriodLabel)
	assert.True(t, out.Trends[2].Expenses.IsZero())
	assert.Equal(t, "120.1", out.Trends[3].Expenses.String())
	assert.Equal(t, "200.1", out.Total.String())
}

func TestGetTrends_RejectsOutOfRangeMonths(t *testing.T) {
	uc := NewGetTrendsUseCase(&stubExpenseRepo{}, nil)

	for _, months := range []int{-1, 25} {
		_, err := uc.Execute(context.Background(), GetTrendsInput{UserID: uuid.New(), Months: months})
		assert.ErrorIs(t, err, domainerror.ErrInvalidTrendMonths)
	}

	out, err := uc.Execute(context.Background(), GetTrendsInput{UserID: uuid.New(), Months: 24})
	require.NoError(t, err)
	assert.Len(t, out.Trends, 24)
}

func TestMonthSeries(t *testing.T) {
	series := MonthSeries(time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC), 3)

	assert.Equal(t, []time.Time{
		time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}, series)
}
