package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordUseCase redeems a reset token for a new password. The token is
// single use, and every open session of the user is revoked.
type ResetPasswordUseCase struct {
	userRepo          adapter.UserRepository
	passwordService   adapter.PasswordService
	resetTokenService adapter.PasswordResetTokenService
	tokenService      adapter.TokenService
}

func NewResetPasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	resetTokenService adapter.PasswordResetTokenService,
	tokenService adapter.TokenService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:          userRepo,
		passwordService:   passwordService,
		resetTokenService: resetTokenService,
		tokenService:      tokenService,
	}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) error {
	resetToken, err := uc.redeemable(ctx, input.Token)
	if err != nil {
		return err
	}
	if uc.passwordService.ValidatePasswordStrength(input.NewPassword) != nil {
		return weakPasswordError()
	}

	user, err := uc.userRepo.FindByID(ctx, resetToken.UserID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	hash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.ChangePassword(hash)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}

	logger := slog.With("user_id", user.ID)
	if err := uc.resetTokenService.InvalidateResetToken(ctx, input.Token); err != nil {
		logger.Warn("Failed to invalidate reset token", "error", err)
	}
	if err := uc.tokenService.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		logger.Warn("Failed to revoke sessions after password reset", "error", err)
	}
	logger.Info("Password reset")
	return nil
}

// redeemable looks the token up and rejects unknown, used or expired ones.
func (uc *ResetPasswordUseCase) redeemable(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	resetToken, err := uc.resetTokenService.ValidateResetToken(ctx, token)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidResetToken,
			"invalid or expired password reset token",
			domainerror.ErrInvalidResetToken,
		)
	}
	if !time.Now().UTC().Before(resetToken.ExpiresAt) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredResetToken,
			"password reset token has expired",
			domainerror.ErrInvalidResetToken,
		)
	}
	return resetToken, nil
}
