package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/goal"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// CreateGoalRequest represents the request body for creating a savings goal.
type CreateGoalRequest struct {
	Name                string           `json:"name" binding:"required,max=100"`
	Description         string           `json:"description" binding:"max=500"`
	Category            string           `json:"category"`
	TargetAmount        decimal.Decimal  `json:"target_amount" binding:"required,gt=0,money_ceiling=goal"`
	CurrentAmount       *decimal.Decimal `json:"current_amount" binding:"omitempty,gte=0,money_ceiling=goal"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution" binding:"omitempty,gte=0,money_ceiling=goal"`
	Deadline            string           `json:"deadline" binding:"required,datetime=2006-01-02"`
}

// UpdateGoalRequest represents the request body for updating a goal.
type UpdateGoalRequest struct {
	Name                *string          `json:"name" binding:"omitempty,max=100"`
	Description         *string          `json:"description" binding:"omitempty,max=500"`
	Category            *string          `json:"category"`
	TargetAmount        *decimal.Decimal `json:"target_amount" binding:"omitempty,gt=0,money_ceiling=goal"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution" binding:"omitempty,gte=0,money_ceiling=goal"`
	Deadline            *string          `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// ContributeGoalRequest represents the request body for adding to a goal.
type ContributeGoalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0,money_ceiling=goal"`
}

// ForecastResponse describes how a goal is tracking against its deadline.
type ForecastResponse struct {
	MonthsRemaining int    `json:"months_remaining"`
	RequiredMonthly string `json:"required_monthly"`
	OnTrack         bool   `json:"on_track"`
}

// GoalResponse represents a goal with its progress.
type GoalResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Category            string           `json:"category"`
	CategoryLabel       string           `json:"category_label"`
	TargetAmount        string           `json:"target_amount"`
	CurrentAmount       string           `json:"current_amount"`
	MonthlyContribution string           `json:"monthly_contribution"`
	Deadline            string           `json:"deadline"`
	Progress            ProgressResponse `json:"progress"`
	Forecast            ForecastResponse `json:"forecast"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// GoalListResponse represents all goals plus their rollup.
type GoalListResponse struct {
	Goals   []GoalResponse `json:"goals"`
	Summary RollupResponse `json:"summary"`
}

// ToGoalResponse converts a goal view.
func ToGoalResponse(v *goal.GoalView) GoalResponse {
	g := v.Goal
	label := g.Category
	if c, ok := entity.LookupCategory(entity.CategoryKindGoal, g.Category); ok {
		label = c.Label
	}

	return GoalResponse{
		ID:                  g.ID.String(),
		Name:                g.Name,
		Description:         g.Description,
		Category:            g.Category,
		CategoryLabel:       label,
		TargetAmount:        Money(g.TargetAmount),
		CurrentAmount:       Money(g.CurrentAmount),
		MonthlyContribution: Money(g.MonthlyContribution),
		Deadline:            g.Deadline.Format(DateLayout),
		Progress:            ToProgressResponse(v.Progress, v.Label),
		Forecast: ForecastResponse{
			MonthsRemaining: v.Forecast.MonthsRemaining,
			RequiredMonthly: Money(v.Forecast.RequiredMonthly),
			OnTrack:         v.Forecast.OnTrack,
		},
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// ToGoalListResponse converts the list use case output.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	goals := make([]GoalResponse, len(output.Goals))
	for i, v := range output.Goals {
		goals[i] = ToGoalResponse(v)
	}

	return GoalListResponse{
		Goals:   goals,
		Summary: ToRollupResponse(output.Summary),
	}
}
