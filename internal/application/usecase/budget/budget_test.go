package budget

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
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
)

var fixedNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

type fakeBudgetRepo struct {
	budgets   map[uuid.UUID]*entity.Budget
	createErr error
}

func newFakeBudgetRepo(budgets ...*entity.Budget) *fakeBudgetRepo {
	r := &fakeBudgetRepo{budgets: map[uuid.UUID]*entity.Budget{}}
	for _, b := range budgets {
		r.budgets[b.ID] = b
	}
	return r
}

func (r *fakeBudgetRepo) Create(_ context.Context, b *entity.Budget) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	if b, ok := r.budgets[id]; ok {
		return b, nil
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category string) (*entity.Budget, error) {
	for _, b := range r.budgets {
		if b.UserID == userID && b.Category == category {
			return b, nil
		}
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepo) ExistsByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (bool, error) {
	_, err := r.FindByUserAndCategory(ctx, userID, category)
	return err == nil, nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, b *entity.Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.budgets, id)
	return nil
}

// fakeExpenseRepo only implements the aggregation used by budgets.
type fakeExpenseRepo struct {
	adapter.ExpenseRepository
	expenses []*entity.Expense
}

func (r *fakeExpenseRepo) add(userID uuid.UUID, category, amount string, date time.Time) *entity.Expense {
	e := entity.NewExpense(userID, "test", decimal.RequireFromString(amount), category, date)
	r.expenses = append(r.expenses, e)
	return e
}

func (r *fakeExpenseRepo) SumByCategory(_ context.Context, userID uuid.UUID, category string, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.expenses {
		if e.UserID == userID && e.Category == category && !e.Date.Before(start) && e.Date.Before(end) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

type fakeUserRepo struct {
	adapter.UserRepository
	user *entity.User
}

func (r *fakeUserRepo) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return r.user, nil
}

type fakeEmailService struct {
	alerts []adapter.QueueBudgetAlertInput
}

func (s *fakeEmailService) QueuePasswordResetEmail(context.Context, adapter.QueuePasswordResetInput) error {
	return nil
}

func (s *fakeEmailService) QueueBudgetAlertEmail(_ context.Context, input adapter.QueueBudgetAlertInput) error {
	s.alerts = append(s.alerts, input)
	return nil
}

func newBudget(userID uuid.UUID, category, limit string, period entity.BudgetPeriod) *entity.Budget {
	return entity.NewBudget(userID, category, decimal.RequireFromString(limit), period)
}

func TestCreateBudget(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		existing []*entity.Budget
		input    CreateBudgetInput
		wantErr  error
	}{
		{
			name:  "defaults to monthly",
			input: CreateBudgetInput{UserID: userID, Category: "Food", LimitAmount: decimal.NewFromInt(400)},
		},
		{
			name:    "unknown category",
			input:   CreateBudgetInput{UserID: userID, Category: "pets", LimitAmount: decimal.NewFromInt(400)},
			wantErr: domainerror.ErrInvalidBudgetCategory,
		},
		{
			name:    "zero limit",
			input:   CreateBudgetInput{UserID: userID, Category: "food", LimitAmount: decimal.Zero},
			wantErr: domainerror.ErrInvalidLimitAmount,
		},
		{
			name:    "limit at ceiling",
			input:   CreateBudgetInput{UserID: userID, Category: "food", LimitAmount: decimal.NewFromInt(10_000_000)},
			wantErr: domainerror.ErrInvalidLimitAmount,
		},
		{
			name:    "invalid period",
			input:   CreateBudgetInput{UserID: userID, Category: "food", LimitAmount: decimal.NewFromInt(1), Period: "daily"},
			wantErr: domainerror.ErrInvalidBudgetPeriod,
		},
		{
			name:     "duplicate category",
			existing: []*entity.Budget{newBudget(userID, "food", "100", entity.BudgetPeriodWeekly)},
			input:    CreateBudgetInput{UserID: userID, Category: "food", LimitAmount: decimal.NewFromInt(50)},
			wantErr:  domainerror.ErrBudgetAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateBudgetUseCase(newFakeBudgetRepo(tt.existing...), &fakeExpenseRepo{}, nil)
			uc.now = func() time.Time { return fixedNow }

			out, err := uc.Execute(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var budgetErr *domainerror.BudgetError
				assert.True(t, errors.As(err, &budgetErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, entity.BudgetPeriodMonthly, out.Budget.Budget.Period)
			assert.Equal(t, "food", out.Budget.Budget.Category)
			assert.True(t, out.Budget.Spent.IsZero())
			assert.Equal(t, progress.StatusGood, out.Budget.Progress.Status)
			assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), out.Budget.PeriodStart)
		})
	}
}

func TestCreateBudget_ConcurrentDuplicate(t *testing.T) {
	repo := newFakeBudgetRepo()
	repo.createErr = domainerror.ErrBudgetAlreadyExists
	uc := NewCreateBudgetUseCase(repo, &fakeExpenseRepo{}, nil)

	_, err := uc.Execute(context.Background(), CreateBudgetInput{
		UserID:      uuid.New(),
		Category:    "food",
		LimitAmount: decimal.NewFromInt(50),
	})

	var budgetErr *domainerror.BudgetError
	require.True(t, errors.As(err, &budgetErr))
	assert.Equal(t, domainerror.ErrCodeBudgetAlreadyExists, budgetErr.Code)
}

func TestListBudgets_ComputesProgressAndRollup(t *testing.T) {
	userID := uuid.New()
	food := newBudget(userID, "food", "200", entity.BudgetPeriodMonthly)
	transport := newBudget(userID, "transport", "100", entity.BudgetPeriodMonthly)

	expenses := &fakeExpenseRepo{}
	expenses.add(userID, "food", "150", fixedNow.AddDate(0, 0, -2))
	expenses.add(userID, "food", "999", fixedNow.AddDate(0, -1, 0))
	expenses.add(userID, "transport", "120", fixedNow)

	uc := NewListBudgetsUseCase(newFakeBudgetRepo(food, transport), expenses)
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, out.Budgets, 2)

	byCategory := map[string]*BudgetView{}
	for _, v := range out.Budgets {
		byCategory[v.Budget.Category] = v
	}

	assert.Equal(t, 75.0, byCategory["food"].Progress.Percentage)
	assert.Equal(t, "Close", byCategory["food"].Label)
	assert.Equal(t, 100.0, byCategory["transport"].Progress.Percentage)
	assert.Equal(t, -20.0, byCategory["transport"].Progress.Remaining)
	assert.Equal(t, "Over", byCategory["transport"].Label)

	assert.Equal(t, "270", out.Summary.TotalCurrent.String())
	assert.Equal(t, "300", out.Summary.TotalTarget.String())
	assert.Equal(t, 90.0, out.Summary.OverallPercentage)
	assert.Equal(t, 1, out.Summary.OverCount)
}

func TestGetAndDeleteBudget_Ownership(t *testing.T) {
	owner := uuid.New()
	b := newBudget(owner, "utilities", "80", entity.BudgetPeriodMonthly)
	repo := newFakeBudgetRepo(b)

	get := NewGetBudgetUseCase(repo, &fakeExpenseRepo{})
	_, err := get.Execute(context.Background(), GetBudgetInput{BudgetID: b.ID, UserID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrUnauthorizedBudgetAccess)

	_, err = get.Execute(context.Background(), GetBudgetInput{BudgetID: uuid.New(), UserID: owner})
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)

	del := NewDeleteBudgetUseCase(repo, nil)
	require.NoError(t, del.Execute(context.Background(), DeleteBudgetInput{BudgetID: b.ID, UserID: owner}))
	assert.Empty(t, repo.budgets)
}

func TestUpdateBudget(t *testing.T) {
	owner := uuid.New()
	b := newBudget(owner, "food", "100", entity.BudgetPeriodMonthly)
	uc := NewUpdateBudgetUseCase(newFakeBudgetRepo(b), &fakeExpenseRepo{}, nil)
	uc.now = func() time.Time { return fixedNow }

	limit := decimal.RequireFromString("250.456")
	weekly := entity.BudgetPeriodWeekly
	out, err := uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: b.ID, UserID: owner, LimitAmount: &limit, Period: &weekly})
	require.NoError(t, err)
	assert.Equal(t, "250.46", out.Budget.Budget.LimitAmount.String())
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), out.Budget.PeriodStart)

	negative := decimal.NewFromInt(-1)
	_, err = uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: b.ID, UserID: owner, LimitAmount: &negative})
	assert.ErrorIs(t, err, domainerror.ErrInvalidLimitAmount)
}

func TestAlertChecker(t *testing.T) {
	tests := []struct {
		name        string
		priorSpent  string
		amount      string
		alertsOn    bool
		date        time.Time
		wantAlerted bool
	}{
		{name: "crosses into danger", priorSpent: "80", amount: "15", alertsOn: true, date: fixedNow, wantAlerted: true},
		{name: "lands exactly on danger threshold", priorSpent: "80", amount: "10", alertsOn: true, date: fixedNow, wantAlerted: true},
		{name: "already in danger", priorSpent: "92", amount: "5", alertsOn: true, date: fixedNow},
		{name: "stays in warning", priorSpent: "70", amount: "10", alertsOn: true, date: fixedNow},
		{name: "alerts disabled", priorSpent: "80", amount: "15", date: fixedNow},
		{name: "expense outside current window", priorSpent: "80", amount: "15", alertsOn: true, date: fixedNow.AddDate(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := entity.NewUser("ana@example.com", "Ana", "hash")
			user.BudgetAlerts = tt.alertsOn
			b := newBudget(user.ID, "food", "100", entity.BudgetPeriodMonthly)

			expenses := &fakeExpenseRepo{}
			expenses.add(user.ID, "food", tt.priorSpent, fixedNow.AddDate(0, 0, -1))
			expense := expenses.add(user.ID, "food", tt.amount, tt.date)

			emails := &fakeEmailService{}
			checker := NewAlertChecker(newFakeBudgetRepo(b), expenses, &fakeUserRepo{user: user}, emails)
			checker.now = func() time.Time { return fixedNow }

			require.NoError(t, checker.CheckAfterExpense(context.Background(), expense))

			if !tt.wantAlerted {
				assert.Empty(t, emails.alerts)
				return
			}
			require.Len(t, emails.alerts, 1)
			assert.Equal(t, "Food", emails.alerts[0].Category)
			assert.Equal(t, "100.00", emails.alerts[0].Limit)
			assert.Equal(t, "Over", emails.alerts[0].Status)
		})
	}
}

func TestAlertChecker_NoBudgetIsNotAnError(t *testing.T) {
	userID := uuid.New()
	expenses := &fakeExpenseRepo{}
	expense := expenses.add(userID, "travel", "500", fixedNow)

	checker := NewAlertChecker(newFakeBudgetRepo(), expenses, &fakeUserRepo{}, &fakeEmailService{})
	checker.now = func() time.Time { return fixedNow }

	assert.NoError(t, checker.CheckAfterExpense(context.Background(), expense))
}
