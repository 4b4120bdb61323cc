package auth

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserUseCase checks credentials and opens a session. RememberMe
// stretches the refresh token's lifetime.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute returns ErrCodeInvalidCredentials for both an unknown email and a
// wrong password.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		slog.InfoContext(ctx, "Login rejected", "user_id", user.ID)
		return nil, invalidCredentials()
	}

	return startSession(ctx, uc.tokenService, user, input.RememberMe)
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
