// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Description string
}

// SuggestCategoryOutput is the suggested catalog entry.
type SuggestCategoryOutput struct {
	Category   entity.Category
	Confidence float64
	Source     string
}

// SuggestCategoryUseCase proposes an expense category for a description.
// The primary suggester (usually the AI service) is optional; the fallback
// must always answer.
type SuggestCategoryUseCase struct {
	primary  adapter.CategorySuggester
	fallback adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(primary, fallback adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		primary:  primary,
		fallback: fallback,
	}
}

// Execute returns a category from the expense catalog.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" || utf8.RuneCountInString(description) > entity.MaxExpenseDescriptionLength {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDescription,
			"description must be between 1 and 500 characters",
			domainerror.ErrInvalidExpenseDescription,
		)
	}

	catalog := entity.Categories(entity.CategoryKindExpense)
	keys := make([]string, len(catalog))
	for i, c := range catalog {
		keys[i] = c.Key
	}

	if uc.primary != nil {
		suggestion, err := uc.primary.Suggest(ctx, description, keys)
		if err == nil {
			if out, ok := toOutput(suggestion); ok {
				return out, nil
			}
			slog.Warn("Category suggester returned no usable category")
		} else {
			slog.Warn("Category suggester failed, using fallback", "error", err)
		}
	}

	suggestion, err := uc.fallback.Suggest(ctx, description, keys)
	if err != nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeSuggestionUnavailable,
			"could not suggest a category",
			err,
		)
	}
	if out, ok := toOutput(suggestion); ok {
		return out, nil
	}

	other, _ := entity.LookupCategory(entity.CategoryKindExpense, entity.ExpenseCategoryOther)
	out := &SuggestCategoryOutput{Category: other}
	if suggestion != nil {
		out.Source = suggestion.Source
	}
	return out, nil
}

func toOutput(s *adapter.CategorySuggestion) (*SuggestCategoryOutput, bool) {
	if s == nil {
		return nil, false
	}
	category, ok := entity.LookupCategory(entity.CategoryKindExpense, s.Category)
	if !ok {
		return nil, false
	}
	return &SuggestCategoryOutput{
		Category:   category,
		Confidence: s.Confidence,
		Source:     s.Source,
	}, true
}
