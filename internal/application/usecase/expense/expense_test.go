package expense

import (
	"context"
	"errors"
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

type fakeExpenseRepo struct {
	expenses   map[uuid.UUID]*entity.Expense
	lastFilter entity.ExpenseFilter
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: map[uuid.UUID]*entity.Expense{}}
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	if e, ok := r.expenses[id]; ok {
		return e, nil
	}
	return nil, domainerror.ErrExpenseNotFound
}

func (r *fakeExpenseRepo) FindByUser(_ context.Context, userID uuid.UUID, filter entity.ExpenseFilter) ([]*entity.Expense, int64, error) {
	r.lastFilter = filter
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) SumByCategory(context.Context, uuid.UUID, string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeExpenseRepo) TotalsByCategory(context.Context, uuid.UUID, time.Time, time.Time) ([]entity.CategoryTotal, error) {
	return nil, nil
}

func (r *fakeExpenseRepo) MonthlyTotals(context.Context, uuid.UUID, time.Time, time.Time) ([]entity.MonthlyTotal, error) {
	return nil, nil
}

type countingCache struct {
	invalidated []uuid.UUID
}

func (c *countingCache) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }
func (c *countingCache) Set(context.Context, uuid.UUID, string, any) error         { return nil }
func (c *countingCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type recordingAlertChecker struct {
	checked []*entity.Expense
	err     error
}

func (r *recordingAlertChecker) CheckAfterExpense(_ context.Context, e *entity.Expense) error {
	r.checked = append(r.checked, e)
	return r.err
}

type stubSuggester struct {
	suggestion *adapter.CategorySuggestion
	err        error
	calls      int
}

func (s *stubSuggester) Suggest(context.Context, string, []string) (*adapter.CategorySuggestion, error) {
	s.calls++
	return s.suggestion, s.err
}

func TestCreateExpense(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, 5, 12, 18, 45, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    CreateExpenseInput
		wantCode domainerror.ExpenseErrorCode
	}{
		{
			name:  "valid expense",
			input: CreateExpenseInput{UserID: userID, Description: "Groceries", Amount: decimal.RequireFromString("45.60"), Category: "Food", Date: &date},
		},
		{
			name:     "empty description",
			input:    CreateExpenseInput{UserID: userID, Description: "   ", Amount: decimal.NewFromInt(1), Category: "food"},
			wantCode: domainerror.ErrCodeInvalidExpenseDescription,
		},
		{
			name:     "zero amount",
			input:    CreateExpenseInput{UserID: userID, Description: "Coffee", Amount: decimal.Zero, Category: "food"},
			wantCode: domainerror.ErrCodeInvalidExpenseAmount,
		},
		{
			name:     "amount at ceiling",
			input:    CreateExpenseInput{UserID: userID, Description: "House", Amount: decimal.NewFromInt(10_000_000), Category: "other"},
			wantCode: domainerror.ErrCodeInvalidExpenseAmount,
		},
		{
			name:     "unknown category",
			input:    CreateExpenseInput{UserID: userID, Description: "Coffee", Amount: decimal.NewFromInt(3), Category: "coffee"},
			wantCode: domainerror.ErrCodeInvalidExpenseCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeExpenseRepo()
			cache := &countingCache{}
			alerts := &recordingAlertChecker{}
			uc := NewCreateExpenseUseCase(repo, alerts, cache)

			out, err := uc.Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				var expenseErr *domainerror.ExpenseError
				require.True(t, errors.As(err, &expenseErr))
				assert.Equal(t, tt.wantCode, expenseErr.Code)
				assert.Empty(t, repo.expenses)
				assert.Empty(t, alerts.checked)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, entity.ExpenseCategoryFood, out.Expense.Category)
			assert.Equal(t, time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC), out.Expense.Date)
			assert.Len(t, repo.expenses, 1)
			assert.Equal(t, []uuid.UUID{userID}, cache.invalidated)
			assert.Len(t, alerts.checked, 1)
		})
	}
}

func TestCreateExpense_AlertFailureDoesNotFailCreate(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := NewCreateExpenseUseCase(repo, &recordingAlertChecker{err: errors.New("smtp down")}, nil)

	_, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID:      uuid.New(),
		Description: "Bus ticket",
		Amount:      decimal.RequireFromString("2.75"),
		Category:    "transport",
	})

	require.NoError(t, err)
	assert.Len(t, repo.expenses, 1)
}

func TestListExpenses_NormalizesPaging(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := NewListExpensesUseCase(repo)

	out, err := uc.Execute(context.Background(), ListExpensesInput{UserID: uuid.New(), Limit: 1000, Category: "FOOD"})
	require.NoError(t, err)

	assert.Equal(t, maxPageLimit, repo.lastFilter.Limit)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, entity.ExpenseCategoryFood, repo.lastFilter.Category)
	assert.Equal(t, 0, out.Pagination.TotalPages)
}

func TestListExpenses_RejectsInvertedRange(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	uc := NewListExpensesUseCase(newFakeExpenseRepo())

	_, err := uc.Execute(context.Background(), ListExpensesInput{UserID: uuid.New(), StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, domainerror.ErrInvalidExpenseDate)
}

func TestDeleteExpense(t *testing.T) {
	owner := uuid.New()
	repo := newFakeExpenseRepo()
	expense := entity.NewExpense(owner, "Movie", decimal.NewFromInt(12), entity.ExpenseCategoryEntertainment, time.Now())
	repo.expenses[expense.ID] = expense
	cache := &countingCache{}
	uc := NewDeleteExpenseUseCase(repo, cache)

	err := uc.Execute(context.Background(), DeleteExpenseInput{ExpenseID: expense.ID, UserID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrNotAuthorizedToModifyExpense)

	err = uc.Execute(context.Background(), DeleteExpenseInput{ExpenseID: uuid.New(), UserID: owner})
	assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)

	require.NoError(t, uc.Execute(context.Background(), DeleteExpenseInput{ExpenseID: expense.ID, UserID: owner}))
	assert.Empty(t, repo.expenses)
	assert.Equal(t, []uuid.UUID{owner}, cache.invalidated)
}

func TestSuggestCategory(t *testing.T) {
	t.Run("uses primary when it answers with a known category", func(t *testing.T) {
		primary := &stubSuggester{suggestion: &adapter.CategorySuggestion{Category: "Travel", Confidence: 0.9, Source: "ai"}}
		fallback := &stubSuggester{}
		uc := NewSuggestCategoryUseCase(primary, fallback)

		out, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: "Flight to Lisbon"})
		require.NoError(t, err)
		assert.Equal(t, entity.ExpenseCategoryTravel, out.Category.Key)
		assert.Equal(t, "ai", out.Source)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("falls back when primary errors", func(t *testing.T) {
		primary := &stubSuggester{err: errors.New("quota exceeded")}
		fallback := &stubSuggester{suggestion: &adapter.CategorySuggestion{Category: "food", Confidence: 0.6, Source: "keywords"}}
		uc := NewSuggestCategoryUseCase(primary, fallback)

		out, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: "Pizza night"})
		require.NoError(t, err)
		assert.Equal(t, entity.ExpenseCategoryFood, out.Category.Key)
		assert.Equal(t, "keywords", out.Source)
	})

	t.Run("falls back when primary invents a category", func(t *testing.T) {
		primary := &stubSuggester{suggestion: &adapter.CategorySuggestion{Category: "pets", Source: "ai"}}
		fallback := &stubSuggester{suggestion: &adapter.CategorySuggestion{Category: "unknown", Source: "keywords"}}
		uc := NewSuggestCategoryUseCase(primary, fallback)

		out, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: "Dog food"})
		require.NoError(t, err)
		assert.Equal(t, entity.ExpenseCategoryOther, out.Category.Key)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		uc := NewSuggestCategoryUseCase(nil, &stubSuggester{})

		_, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: ""})
		assert.ErrorIs(t, err, domainerror.ErrInvalidExpenseDescription)
	})
}
