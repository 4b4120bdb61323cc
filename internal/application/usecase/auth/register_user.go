package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

type RegisterUserInput struct {
	Email    string
	Name     string
	Password string
}

// RegisterUserUseCase creates an account and logs it straight in.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute validates email, name and password in that order, so the first
// failing field decides the error code.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if err := uc.validate(email, name, input.Password); err != nil {
		return nil, err
	}

	taken, err := uc.userRepo.ExistsByEmail(ctx, email)
	switch {
	case err != nil:
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	case taken:
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, name, hash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.InfoContext(ctx, "User registered", "user_id", user.ID)

	return startSession(ctx, uc.tokenService, user, false)
}

func (uc *RegisterUserUseCase) validate(email, name, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if uc.passwordService.ValidatePasswordStrength(password) != nil {
		return weakPasswordError()
	}
	return nil
}
