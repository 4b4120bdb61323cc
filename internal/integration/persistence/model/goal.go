package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                string          `gorm:"type:varchar(100);not null"`
	Description         string          `gorm:"type:varchar(500)"`
	Category            string          `gorm:"type:varchar(32);not null;default:'other'"`
	TargetAmount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MonthlyContribution decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Deadline            time.Time       `gorm:"type:date;not null"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Goal{
		ID:                  m.ID,
		UserID:              m.UserID,
		Name:                m.Name,
		Description:         m.Description,
		Category:            m.Category,
		TargetAmount:        m.TargetAmount,
		CurrentAmount:       m.CurrentAmount,
		MonthlyContribution: m.MonthlyContribution,
		Deadline:            m.Deadline.UTC(),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	return &GoalModel{
		ID:                  goal.ID,
		UserID:              goal.UserID,
		Name:                goal.Name,
		Description:         goal.Description,
		Category:            goal.Category,
		TargetAmount:        goal.TargetAmount,
		CurrentAmount:       goal.CurrentAmount,
		MonthlyContribution: goal.MonthlyContribution,
		Deadline:            goal.Deadline,
		CreatedAt:           goal.CreatedAt,
		UpdatedAt:           goal.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
