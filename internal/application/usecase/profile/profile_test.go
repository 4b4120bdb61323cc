package profile

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

type memoryUserRepo struct {
	adapter.UserRepository
	users   map[uuid.UUID]*entity.User
	updates int
}

func newMemoryUserRepo(users ...*entity.User) *memoryUserRepo {
	r := &memoryUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *memoryUserRepo) Update(_ context.Context, u *entity.User) error {
	r.updates++
	r.users[u.ID] = u
	return nil
}

type invalidationCounter struct {
	adapter.SummaryCache
	count int
}

func (c *invalidationCounter) Invalidate(context.Context, uuid.UUID) error {
	c.count++
	return nil
}

func TestGetProfile(t *testing.T) {
	user := entity.NewUser("lee@example.com", "Lee", "hash")
	uc := NewGetProfileUseCase(newMemoryUserRepo(user))

	out, err := uc.Execute(context.Background(), GetProfileInput{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "lee@example.com", out.User.Email)

	_, err = uc.Execute(context.Background(), GetProfileInput{UserID: uuid.New()})
	var profileErr *domainerror.ProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, domainerror.ErrCodeProfileNotFound, profileErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	user := entity.NewUser("lee@example.com", "Lee", "hash")
	repo := newMemoryUserRepo(user)
	uc := NewUpdateProfileUseCase(repo)

	name := "  Lee Park "
	alerts := false
	out, err := uc.Execute(context.Background(), UpdateProfileInput{UserID: user.ID, Name: &name, BudgetAlerts: &alerts})
	require.NoError(t, err)
	assert.Equal(t, "Lee Park", out.User.Name)
	assert.False(t, out.User.BudgetAlerts)

	tooLong := strings.Repeat("a", 101)
	_, err = uc.Execute(context.Background(), UpdateProfileInput{UserID: user.ID, Name: &tooLong})
	assert.ErrorIs(t, err, domainerror.ErrInvalidFullName)

	_, err = uc.Execute(context.Background(), UpdateProfileInput{UserID: user.ID})
	var profileErr *domainerror.ProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, domainerror.ErrCodeMissingProfileFields, profileErr.Code)
	assert.Equal(t, 1, repo.updates)
}

func TestUpdateFinancialSummary(t *testing.T) {
	user := entity.NewUser("lee@example.com", "Lee", "hash")
	repo := newMemoryUserRepo(user)
	cache := &invalidationCounter{}
	uc := NewUpdateFinancialSummaryUseCase(repo, cache)

	valid := UpdateFinancialSummaryInput{
		UserID:      user.ID,
		Balance:     decimal.RequireFromString("2500.499"),
		Income:      decimal.NewFromInt(4500),
		Expenses:    decimal.RequireFromString("3250.75"),
		Savings:     decimal.Zero,
		SavingsGoal: decimal.NewFromInt(15000),
	}

	out, err := uc.Execute(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, "2500.5", out.Summary.Balance.String())
	assert.Equal(t, "15000", repo.users[user.ID].Summary.SavingsGoal.String())
	assert.Equal(t, 1, cache.count)

	tests := []struct {
		name   string
		mutate func(*UpdateFinancialSummaryInput)
	}{
		{"negative balance", func(in *UpdateFinancialSummaryInput) { in.Balance = decimal.NewFromInt(-1) }},
		{"income at ceiling", func(in *UpdateFinancialSummaryInput) { in.Income = decimal.NewFromInt(1_000_000_000) }},
		{"savings goal above ceiling", func(in *UpdateFinancialSummaryInput) { in.SavingsGoal = decimal.NewFromInt(2_000_000_000) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			assert.ErrorIs(t, err, domainerror.ErrInvalidSummaryAmount)
		})
	}
	assert.Equal(t, 1, repo.updates)
}
