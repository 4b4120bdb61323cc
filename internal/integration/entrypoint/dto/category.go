package dto

import (
	"github.com/finance-tracker/personal-finance/internal/application/usecase/category"
)

// ListCategoriesQuery represents the query parameters for listing categories.
type ListCategoriesQuery struct {
	Kind      string `form:"kind"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// CategoryResponse represents a catalog category with optional statistics.
type CategoryResponse struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	ExpenseCount int    `json:"expense_count"`
	PeriodTotal  string `json:"period_total"`
}

// CategoryListResponse represents the list of categories of one kind.
type CategoryListResponse struct {
	Kind       string             `json:"kind"`
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryListResponse converts the list use case output.
func ToCategoryListResponse(kind string, output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryResponse{
			Key:          c.Key,
			Label:        c.Label,
			Icon:         c.Icon,
			Color:        c.Color,
			ExpenseCount: c.ExpenseCount,
			PeriodTotal:  Money(c.PeriodTotal),
		}
	}

	return CategoryListResponse{
		Kind:       kind,
		Categories: categories,
	}
}
