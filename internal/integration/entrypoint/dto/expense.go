package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/expense"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for recording an expense.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0,money_ceiling=transaction"`
	Category    string          `json:"category" binding:"required"`
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ListExpensesQuery represents the query parameters for listing expenses.
type ListExpensesQuery struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required,max=500"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExpenseListResponse represents a page of expenses.
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination PaginationResponse `json:"pagination"`
}

// CategorySuggestionResponse is a suggested expense category.
type CategorySuggestionResponse struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	label := e.Category
	if c, ok := entity.LookupCategory(entity.CategoryKindExpense, e.Category); ok {
		label = c.Label
	}

	return ExpenseResponse{
		ID:            e.ID.String(),
		Description:   e.Description,
		Amount:        Money(e.Amount),
		Category:      e.Category,
		CategoryLabel: label,
		Date:          e.Date.Format(DateLayout),
		CreatedAt:     e.CreatedAt,
	}
}

// ToExpenseListResponse converts the list use case output.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(output.Expenses))
	for i, e := range output.Expenses {
		expenses[i] = ToExpenseResponse(e)
	}

	return ExpenseListResponse{
		Expenses: expenses,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}

// ToCategorySuggestionResponse converts the suggestion use case output.
func ToCategorySuggestionResponse(output *expense.SuggestCategoryOutput) CategorySuggestionResponse {
	return CategorySuggestionResponse{
		Category:   output.Category.Key,
		Label:      output.Category.Label,
		Icon:       output.Category.Icon,
		Color:      output.Category.Color,
		Confidence: output.Confidence,
		Source:     output.Source,
	}
}
