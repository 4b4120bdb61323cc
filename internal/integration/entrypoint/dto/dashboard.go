package dto

import (
	"github.com/finance-tracker/personal-finance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/personal-finance/internal/domain/progress"
)


// CategorySpendingResponse is one category's share of the month's spending.
type CategorySpendingResponse struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Amount     string  `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// OverviewResponse represents the dashboard overview.
type OverviewResponse struct {
	Month            string                     `json:"month"`
	MonthExpenses    string                     `json:"month_expenses"`
	ExpenseCount     int                        `json:"expense_count"`
	TopCategories    []CategorySpendingResponse `json:"top_categories"`
	Budgets          RollupResponse             `json:"budgets"`
	BudgetCount      int                        `json:"budget_count"`
	Goals            RollupResponse             `json:"goals"`
	GoalCount        int                        `json:"goal_count"`
	FinancialSummary FinancialSummaryResponse   `json:"financial_summary"`
	ExpenseToIncome  *float64                   `json:"expense_to_income,omitempty"`
	SavingsProgress  *ProgressResponse          `json:"savings_progress,omitempty"`
}

// TrendPointResponse is the spending total for one month.
type TrendPointResponse struct {
	Month       string `json:"month"`
	PeriodLabel string `json:"period_label"`
	Expenses    string `json:"expenses"`
}

// TrendsResponse represents monthly spending trends.
type TrendsResponse struct {
	Months int                  `json:"months"`
	Trends []TrendPointResponse `json:"trends"`
	Total  string               `json:"total"`
}

const monthLayout = "2006-01"

// ToOverviewResponse converts the overview use case output.
func ToOverviewResponse(output *dashboard.GetOverviewOutput) OverviewResponse {
	top := make([]CategorySpendingResponse, len(output.TopCategories))
	for i, c := range output.TopCategories {
		top[i] = CategorySpendingResponse{
			Category:   c.Category,
			Label:      c.Label,
			Color:      c.Color,
			Amount:     Money(c.Amount),
			Count:      c.Count,
			Percentage: c.Percentage,
		}
	}

	resp := OverviewResponse{
		Month:            output.Month.Format(monthLayout),
		MonthExpenses:    Money(output.MonthExpenses),
		ExpenseCount:     output.ExpenseCount,
		TopCategories:    top,
		Budgets:          ToRollupResponse(output.Budgets),
		BudgetCount:      output.BudgetCount,
		Goals:            ToRollupResponse(output.Goals),
		GoalCount:        output.GoalCount,
		FinancialSummary: ToFinancialSummaryResponse(output.Financial),
		ExpenseToIncome:  output.ExpenseToIncome,
	}

	if output.SavingsProgress != nil {
		p := ToProgressResponse(*output.SavingsProgress, progress.GoalLabels.Label(*output.SavingsProgress))
		resp.SavingsProgress = &p
	}

	return resp
}

// ToTrendsResponse converts the trends use case output.
func ToTrendsResponse(output *dashboard.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, t := range output.Trends {
		trends[i] = TrendPointResponse{
			Month:       t.Month.Format(monthLayout),
			PeriodLabel: t.PeriodLabel,
			Expenses:    Money(t.Expenses),
		}
	}

	return TrendsResponse{
		Months: output.Months,
		Trends: trends,
		Total:  Money(output.Total),
	}
}
