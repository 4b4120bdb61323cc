// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the window a budget limit applies to.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether p is a known period.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// Budget is a per-category spending limit.
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    string
	LimitAmount decimal.Decimal
	Period      BudgetPeriod
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID uuid.UUID, category string, limitAmount decimal.Decimal, period BudgetPeriod) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    category,
		LimitAmount: limitAmount,
		Period:      period,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Window returns the [start, end) range of the period containing ref, in UTC.
// Weeks start on Monday.
func (b *Budget) Window(ref time.Time) (time.Time, time.Time) {
	return PeriodWindow(b.Period, ref)
}

// PeriodWindow returns the [start, end) range of period containing ref, in UTC.
func PeriodWindow(period BudgetPeriod, ref time.Time) (time.Time, time.Time) {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case BudgetPeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case BudgetPeriodYearly:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
}
