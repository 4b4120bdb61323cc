package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// RefreshTokenInput carries the refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput is the rotated token pair.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenUseCase exchanges a refresh token for a new pair. Each refresh
// token can be exchanged once.
type RefreshTokenUseCase struct {
	tokenService adapter.TokenService
}

func NewRefreshTokenUseCase(tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{tokenService: tokenService}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	if input.RefreshToken == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "refresh token is required", domainerror.ErrInvalidToken)
	}

	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if errors.Is(err, domainerror.ErrExpiredToken) {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "refresh token has expired", err)
	}
	if err != nil {
		slog.DebugContext(ctx, "Refresh token rejected", "error", err)
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid or expired refresh token", domainerror.ErrInvalidToken)
	}

	// Revoke first so a replayed token cannot mint a second pair.
	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	pair, err := uc.tokenService.GenerateTokenPair(ctx, claims.UserID, claims.Email, false)
	if err != nil {
		return nil, fmt.Errorf("issue token pair for user %s: %w", claims.UserID, err)
	}

	slog.InfoContext(ctx, "Token pair rotated", "user_id", claims.UserID)
	return &RefreshTokenOutput{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}
