// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field limits for user accounts.
const (
	MaxEmailLength    = 255
	MaxNameLength     = 100
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// FinancialSummary holds the figures a user declares about their finances.
// Every field is bounded by valueobject.SummaryCeiling.
type FinancialSummary struct {
	Balance     decimal.Decimal
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Savings     decimal.Decimal
	SavingsGoal decimal.Decimal
}

// User represents an account holder.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	BudgetAlerts bool
	Summary      FinancialSummary
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with budget alerts enabled and an empty summary.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		BudgetAlerts: true,
		Summary: FinancialSummary{
			Balance:     decimal.Zero,
			Income:      decimal.Zero,
			Expenses:    decimal.Zero,
			Savings:     decimal.Zero,
			SavingsGoal: decimal.Zero,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(passwordHash string) {
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
}
