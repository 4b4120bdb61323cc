package profile

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// UpdateProfileInput represents the editable profile fields.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID       uuid.UUID
	Name         *string
	BudgetAlerts *bool
}

// UpdateProfileOutput represents the updated profile.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase updates the user's name and notification preference.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute applies the changes.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	if input.Name == nil && input.BudgetAlerts == nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeMissingProfileFields,
			"at least one of name or budget_alerts is required",
			nil,
		)
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || utf8.RuneCountInString(name) > entity.MaxNameLength {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeInvalidFullName,
				"full name must be between 1 and 100 characters",
				domainerror.ErrInvalidFullName,
			)
		}
		user.Name = name
	}

	if input.BudgetAlerts != nil {
		user.BudgetAlerts = *input.BudgetAlerts
	}

	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateProfileOutput{User: user}, nil
}
