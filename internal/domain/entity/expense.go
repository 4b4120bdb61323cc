// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxExpenseDescriptionLength is the longest description an expense may carry.
const MaxExpenseDescriptionLength = 500

// Expense is a single recorded spend. Expenses are never edited after creation.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(userID uuid.UUID, description string, amount decimal.Decimal, category string, date time.Time) *Expense {
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}

// ExpenseFilter narrows an expense listing.
type ExpenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// CategoryTotal is the sum of expenses in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// MonthlyTotal is the sum of expenses in one calendar month.
type MonthlyTotal struct {
	Month time.Time
	Total decimal.Decimal
}
