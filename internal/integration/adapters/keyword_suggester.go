package adapters

import (
	"context"
	"strings"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

const (
	sourceKeywords    = "keywords"
	keywordConfidence = 0.6
)

// keywordRule maps a category to the substrings that select it.
type keywordRule struct {
	category string
	keywords []string
}

// Rules are checked in order; the first match wins.
var defaultKeywordRules = []keywordRule{
	{entity.ExpenseCategoryFood, []string{"grocery", "groceries", "supermarket", "restaurant", "lunch", "dinner", "breakfast", "coffee", "cafe", "pizza", "burger", "bakery", "food", "snack", "takeout", "delivery"}},
	{entity.ExpenseCategoryTransport, []string{"uber", "lyft", "taxi", "bus", "metro", "subway", "train ticket", "fuel", "gas station", "petrol", "parking", "toll", "car wash"}},
	{entity.ExpenseCategoryUtilities, []string{"electric", "electricity", "water bill", "internet", "wifi", "phone bill", "mobile plan", "rent", "utility", "heating"}},
	{entity.ExpenseCategoryEntertainment, []string{"netflix", "spotify", "cinema", "movie", "concert", "game", "streaming", "theater", "theatre", "bar", "party"}},
	{entity.ExpenseCategoryHealthcare, []string{"pharmacy", "doctor", "dentist", "hospital", "clinic", "medicine", "gym", "insurance", "therapy"}},
	{entity.ExpenseCategoryEducation, []string{"course", "tuition", "book", "school", "university", "udemy", "class", "workshop"}},
	{entity.ExpenseCategoryTravel, []string{"flight", "hotel", "airbnb", "airline", "vacation", "trip", "booking", "hostel"}},
}

// KeywordSuggester implements adapter.CategorySuggester with substring rules.
// It never fails, which makes it the fallback behind the AI suggester.
type KeywordSuggester struct {
	rules []keywordRule
}

// NewKeywordSuggester creates a keyword suggester with the built-in rules.
func NewKeywordSuggester() *KeywordSuggester {
	return &KeywordSuggester{rules: defaultKeywordRules}
}

// Suggest returns the first category whose keywords appear in description,
// or "other".
func (s *KeywordSuggester) Suggest(_ context.Context, description string, categories []string) (*adapter.CategorySuggestion, error) {
	text := strings.ToLower(description)

	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	for _, rule := range s.rules {
		if !allowed[rule.category] {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return &adapter.CategorySuggestion{
					Category:   rule.category,
					Confidence: keywordConfidence,
					Source:     sourceKeywords,
				}, nil
			}
		}
	}

	return &adapter.CategorySuggestion{
		Category: entity.ExpenseCategoryOther,
		Source:   sourceKeywords,
	}, nil
}
