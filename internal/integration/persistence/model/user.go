// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// UserModel represents the users table. The self-declared financial summary
// lives on the same row.
type UserModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string          `gorm:"type:varchar(100);not null"`
	PasswordHash string          `gorm:"type:varchar(255);not null"`
	BudgetAlerts bool            `gorm:"not null;default:true"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Income       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Expenses     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Savings      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SavingsGoal  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		BudgetAlerts: m.BudgetAlerts,
		Summary: entity.FinancialSummary{
			Balance:     m.Balance,
			Income:      m.Income,
			Expenses:    m.Expenses,
			Savings:     m.Savings,
			SavingsGoal: m.SavingsGoal,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		BudgetAlerts: user.BudgetAlerts,
		Balance:      user.Summary.Balance,
		Income:       user.Summary.Income,
		Expenses:     user.Summary.Expenses,
		Savings:      user.Summary.Savings,
		SavingsGoal:  user.Summary.SavingsGoal,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// RefreshTokenModel tracks issued refresh tokens so they can be revoked.
// Only the SHA-256 of the token is stored.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TokenHash   string    `gorm:"type:char(64);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"not null;default:false"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// PasswordResetTokenModel represents the password_reset_tokens table.
type PasswordResetTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TokenHash string     `gorm:"type:char(64);uniqueIndex;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Email     string     `gorm:"type:varchar(255);not null"`
	Used      bool       `gorm:"not null;default:false"`
	UsedAt    *time.Time `gorm:"type:timestamptz"`
	ExpiresAt time.Time  `gorm:"not null"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the PasswordResetTokenModel.
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
