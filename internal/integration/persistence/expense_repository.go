package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create stores a new expense.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense)).Error
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, err
	}
	return expenseModel.ToEntity(), nil
}

// FindByUser lists a user's expenses, newest first, with the unpaged match count.
func (r *expenseRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter entity.ExpenseFilter) ([]*entity.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ExpenseModel{}).Where("user_id = ?", userID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []model.ExpenseModel
	err := query.
		Order("date DESC").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	expenses := make([]*entity.Expense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses, total, nil
}

// Delete soft-deletes an expense.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// SumByCategory returns the user's spending in category within [start, end).
func (r *expenseRepository) SumByCategory(ctx context.Context, userID uuid.UUID, category string, start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND category = ? AND date >= ? AND date < ?", userID, category, start, end).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

type categoryTotalRow struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// TotalsByCategory groups the user's spending within [start, end) by category.
func (r *expenseRepository) TotalsByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CategoryTotal, error) {
	var rows []categoryTotalRow
	err := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]entity.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = entity.CategoryTotal{
			Category: row.Category,
			Total:    row.Total,
			Count:    row.Count,
		}
	}
	return totals, nil
}

type datedAmountRow struct {
	Date   time.Time
	Amount decimal.Decimal
}

// MonthlyTotals returns one total per calendar month within [start, end).
// Rows are bucketed in Go because month truncation differs between
// PostgreSQL and SQLite.
func (r *expenseRepository) MonthlyTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.MonthlyTotal, error) {
	var rows []datedAmountRow
	err := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Select("date, amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var totals []entity.MonthlyTotal
	for _, row := range rows {
		d := row.Date.UTC()
		month := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		if n := len(totals); n > 0 && totals[n-1].Month.Equal(month) {
			totals[n-1].Total = totals[n-1].Total.Add(row.Amount)
			continue
		}
		totals = append(totals, entity.MonthlyTotal{Month: month, Total: row.Amount})
	}
	return totals, nil
}
