package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database. At most one
// active budget exists per user and category.
type BudgetModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_active,priority:1,where:deleted_at IS NULL"`
	Category    string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_budgets_user_category_active,priority:2,where:deleted_at IS NULL"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period      string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Budget{
		ID:          m.ID,
		UserID:      m.UserID,
		Category:    m.Category,
		LimitAmount: m.LimitAmount,
		Period:      entity.BudgetPeriod(m.Period),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	var deletedAt gorm.DeletedAt
	if budget.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}

	return &BudgetModel{
		ID:          budget.ID,
		UserID:      budget.UserID,
		Category:    budget.Category,
		LimitAmount: budget.LimitAmount,
		Period:      string(budget.Period),
		CreatedAt:   budget.CreatedAt,
		UpdatedAt:   budget.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
