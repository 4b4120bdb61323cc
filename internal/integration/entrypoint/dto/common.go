// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/progress"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationResponse represents pagination information.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ProgressResponse is a computed progress result with its display label.
type ProgressResponse struct {
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	Status     string  `json:"status"`
	Label      string  `json:"label"`
}

// RollupResponse aggregates the progress of several entries.
type RollupResponse struct {
	TotalCurrent      string  `json:"total_current"`
	TotalTarget       string  `json:"total_target"`
	OverallPercentage float64 `json:"overall_percentage"`
	OverCount         int     `json:"over_count"`
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, time.UTC)
}

// ToProgressResponse converts a progress result and its label.
func ToProgressResponse(r progress.Result, label string) ProgressResponse {
	return ProgressResponse{
		Percentage: r.Percentage,
		Remaining:  r.Remaining,
		Status:     string(r.Status),
		Label:      label,
	}
}

// ToRollupResponse converts a rollup summary.
func ToRollupResponse(s progress.Summary) RollupResponse {
	return RollupResponse{
		TotalCurrent:      Money(s.TotalCurrent),
		TotalTarget:       Money(s.TotalTarget),
		OverallPercentage: s.OverallPercentage,
		OverCount:         s.OverCount,
	}
}
