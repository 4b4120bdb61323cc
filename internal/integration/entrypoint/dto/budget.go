package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/budget"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for creating a budget.
type CreateBudgetRequest struct {
	Category    string          `json:"category" binding:"required"`
	LimitAmount decimal.Decimal `json:"limit_amount" binding:"required,gt=0,money_ceiling=transaction"`
	Period      string          `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
}

// UpdateBudgetRequest represents the request body for updating a budget.
type UpdateBudgetRequest struct {
	LimitAmount *decimal.Decimal `json:"limit_amount" binding:"omitempty,gt=0,money_ceiling=transaction"`
	Period      *string          `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
}

// BudgetResponse represents a budget with its current spending.
type BudgetResponse struct {
	ID            string           `json:"id"`
	Category      string           `json:"category"`
	CategoryLabel string           `json:"category_label"`
	LimitAmount   string           `json:"limit_amount"`
	SpentAmount   string           `json:"spent_amount"`
	Period        string           `json:"period"`
	PeriodStart   string           `json:"period_start"`
	PeriodEnd     string           `json:"period_end"`
	Progress      ProgressResponse `json:"progress"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// BudgetListResponse represents all budgets plus their rollup.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Summary RollupResponse   `json:"summary"`
}

// ToBudgetResponse converts a budget view. PeriodEnd is reported as the
// window's last day.
func ToBudgetResponse(v *budget.BudgetView) BudgetResponse {
	b := v.Budget
	label := b.Category
	if c, ok := entity.LookupCategory(entity.CategoryKindBudget, b.Category); ok {
		label = c.Label
	}

	return BudgetResponse{
		ID:            b.ID.String(),
		Category:      b.Category,
		CategoryLabel: label,
		LimitAmount:   Money(b.LimitAmount),
		SpentAmount:   Money(v.Spent),
		Period:        string(b.Period),
		PeriodStart:   v.PeriodStart.Format(DateLayout),
		PeriodEnd:     v.PeriodEnd.AddDate(0, 0, -1).Format(DateLayout),
		Progress:      ToProgressResponse(v.Progress, v.Label),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToBudgetListResponse converts the list use case output.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, v := range output.Budgets {
		budgets[i] = ToBudgetResponse(v)
	}

	return BudgetListResponse{
		Budgets: budgets,
		Summary: ToRollupResponse(output.Summary),
	}
}
