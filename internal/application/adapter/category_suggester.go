// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// CategorySuggestion is a proposed expense category for a description.
type CategorySuggestion struct {
	Category   string
	Confidence float64
	Source     string
}

// CategorySuggester proposes an expense category key for a free-text description.
type CategorySuggester interface {
	Suggest(ctx context.Context, description string, categories []string) (*CategorySuggestion, error)
}
