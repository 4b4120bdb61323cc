package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database. A second active budget for
// the same category returns ErrBudgetAlreadyExists.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	err := r.db.WithContext(ctx).Create(model.BudgetFromEntity(budget)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerror.ErrBudgetAlreadyExists
	}
	return err
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUserID retrieves all active budgets for a given user, by category.
func (r *budgetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var models []model.BudgetModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, len(models))
	for i := range models {
		budgets[i] = models[i].ToEntity()
	}
	return budgets, nil
}

// FindByUserAndCategory retrieves the active budget for a user and category.
func (r *budgetRepository) FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Budget, error) {
	return r.findOne(ctx, "user_id = ? AND category = ?", userID, category)
}

func (r *budgetRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&budgetModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, err
	}
	return budgetModel.ToEntity(), nil
}

// ExistsByUserAndCategory checks if an active budget exists for the user and category.
func (r *budgetRepository) ExistsByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("user_id = ? AND category = ?", userID, category).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Save(model.BudgetFromEntity(budget)).Error
}

// Delete soft-deletes a budget.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}
