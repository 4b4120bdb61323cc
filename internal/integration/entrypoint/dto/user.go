package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// UpdateProfileRequest carries the profile fields to change.
type UpdateProfileRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	BudgetAlerts *bool   `json:"budget_alerts"`
}

// UpdateFinancialSummaryRequest replaces the declared financial figures.
type UpdateFinancialSummaryRequest struct {
	Balance     decimal.Decimal `json:"balance" binding:"gte=0,money_ceiling=summary"`
	Income      decimal.Decimal `json:"income" binding:"gte=0,money_ceiling=summary"`
	Expenses    decimal.Decimal `json:"expenses" binding:"gte=0,money_ceiling=summary"`
	Savings     decimal.Decimal `json:"savings" binding:"gte=0,money_ceiling=summary"`
	SavingsGoal decimal.Decimal `json:"savings_goal" binding:"gte=0,money_ceiling=summary"`
}

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// FinancialSummaryResponse is the declared financial summary.
type FinancialSummaryResponse struct {
	Balance     string `json:"balance"`
	Income      string `json:"income"`
	Expenses    string `json:"expenses"`
	Savings     string `json:"savings"`
	SavingsGoal string `json:"savings_goal"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID               string                   `json:"id"`
	Email            string                   `json:"email"`
	Name             string                   `json:"name"`
	BudgetAlerts     bool                     `json:"budget_alerts"`
	FinancialSummary FinancialSummaryResponse `json:"financial_summary"`
	CreatedAt        time.Time                `json:"created_at"`
}

// ToFinancialSummaryResponse converts a domain financial summary.
func ToFinancialSummaryResponse(s entity.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		Balance:     Money(s.Balance),
		Income:      Money(s.Income),
		Expenses:    Money(s.Expenses),
		Savings:     Money(s.Savings),
		SavingsGoal: Money(s.SavingsGoal),
	}
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID.String(),
		Email:            user.Email,
		Name:             user.Name,
		BudgetAlerts:     user.BudgetAlerts,
		FinancialSummary: ToFinancialSummaryResponse(user.Summary),
		CreatedAt:        user.CreatedAt,
	}
}
