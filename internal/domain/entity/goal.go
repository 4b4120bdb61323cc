// Package entity defines the core business entities for the domain layer.
package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field limits for savings goals.
const (
	MaxGoalNameLength        = 100
	MaxGoalDescriptionLength = 500
)

// forecastMonth is the month length used for deadline forecasts.
const forecastMonth = 30 * 24 * time.Hour

// Goal is a savings target the user contributes toward.
type Goal struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Description         string
	Category            string
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal
	MonthlyContribution decimal.Decimal
	Deadline            time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time
}

// NewGoal creates a new Goal entity with nothing saved yet.
func NewGoal(userID uuid.UUID, name string, targetAmount decimal.Decimal, deadline time.Time) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:                  uuid.New(),
		UserID:              userID,
		Name:                name,
		Category:            GoalCategoryOther,
		TargetAmount:        targetAmount,
		CurrentAmount:       decimal.Zero,
		MonthlyContribution: decimal.Zero,
		Deadline:            deadline,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Contribute adds amount to the saved total.
func (g *Goal) Contribute(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = time.Now().UTC()
}

// IsComplete reports whether the saved total has reached the target.
func (g *Goal) IsComplete() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// GoalForecast projects whether the planned monthly contribution meets the deadline.
type GoalForecast struct {
	MonthsRemaining int
	RequiredMonthly decimal.Decimal
	OnTrack         bool
}

// Forecast computes the deadline projection as of now. Months are 30-day
// blocks rounded up; past deadlines give zero months and no required amount.
func (g *Goal) Forecast(now time.Time) GoalForecast {
	months := 0
	if diff := g.Deadline.Sub(now); diff > 0 {
		months = int(math.Ceil(float64(diff) / float64(forecastMonth)))
	}

	required := decimal.Zero
	if months > 0 && !g.IsComplete() {
		required = g.TargetAmount.Sub(g.CurrentAmount).
			Div(decimal.NewFromInt(int64(months))).
			Round(2)
	}

	return GoalForecast{
		MonthsRemaining: months,
		RequiredMonthly: required,
		OnTrack:         g.MonthlyContribution.GreaterThanOrEqual(required),
	}
}
