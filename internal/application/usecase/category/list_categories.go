// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID    uuid.UUID
	Kind      entity.CategoryKind
	StartDate *time.Time // Optional start date for statistics
	EndDate   *time.Time // Optional end date for statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
// ExpenseCount and PeriodTotal are only filled for spending catalogs when a
// date range is given.
type CategoryOutput struct {
	entity.Category
	ExpenseCount int
	PeriodTotal  decimal.Decimal
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(expenseRepo adapter.ExpenseRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	kind := input.Kind
	if kind == "" {
		kind = entity.CategoryKindExpense
	}
	if !entity.IsValidCategoryKind(kind) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryKind,
			"kind must be 'expense', 'budget', or 'goal'",
			domainerror.ErrInvalidCategoryKind,
		)
	}

	catalog := entity.Categories(kind)
	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, 0, len(catalog)),
	}
	for _, c := range catalog {
		output.Categories = append(output.Categories, &CategoryOutput{
			Category:    c,
			PeriodTotal: decimal.Zero,
		})
	}

	if kind == entity.CategoryKindGoal || input.StartDate == nil || input.EndDate == nil {
		return output, nil
	}

	if input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidStatisticsRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidStatisticsRange,
		)
	}

	// The end date is inclusive for callers.
	totals, err := uc.expenseRepo.TotalsByCategory(ctx, input.UserID, *input.StartDate, input.EndDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to get category statistics: %w", err)
	}

	byKey := make(map[string]entity.CategoryTotal, len(totals))
	for _, t := range totals {
		byKey[t.Category] = t
	}
	for _, c := range output.Categories {
		if t, ok := byKey[c.Key]; ok {
			c.ExpenseCount = t.Count
			c.PeriodTotal = t.Total
		}
	}

	return output, nil
}
