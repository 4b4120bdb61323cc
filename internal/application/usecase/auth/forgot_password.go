package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

const (
	// forgotPasswordMessage is returned whether or not the account exists.
	forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

	resetLinkLifetime = "1 hour"
)

type ForgotPasswordInput struct {
	Email string
}

type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase issues a reset token and queues the reset email.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
// emailService may be nil, in which case the reset link is only logged.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		appBaseURL:        appBaseURL,
	}
}

// Execute rejects only a malformed email. Every other outcome, including an
// unknown account or a failed send, returns the same message so callers
// cannot probe for accounts.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	email := normalizeEmail(input.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.DebugContext(ctx, "Forgot password requested for unknown email")
	} else if err := uc.sendResetLink(ctx, user); err != nil {
		slog.ErrorContext(ctx, "Password reset not sent", "error", err, "user_id", user.ID)
	}

	return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
}

func (uc *ForgotPasswordUseCase) sendResetLink(ctx context.Context, user *entity.User) error {
	token, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	link := uc.appBaseURL + "/reset-password?token=" + url.QueryEscape(token.Token)

	if uc.emailService == nil {
		slog.InfoContext(ctx, "Email service not configured, reset link logged only",
			"user_id", user.ID,
			"reset_url", link,
		)
		return nil
	}

	err = uc.emailService.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserEmail: user.Email,
		UserName:  user.Name,
		ResetURL:  link,
		ExpiresIn: resetLinkLifetime,
	})
	if err != nil {
		return fmt.Errorf("queue reset email: %w", err)
	}
	slog.InfoContext(ctx, "Password reset email queued", "user_id", user.ID)
	return nil
}
