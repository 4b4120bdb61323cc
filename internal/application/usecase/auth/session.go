package auth

import (
	"context"
	"fmt"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// SessionOutput is what a successful register or login returns.
type SessionOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

type (
	RegisterUserOutput = SessionOutput
	LoginUserOutput    = SessionOutput
)

func startSession(ctx context.Context, tokens adapter.TokenService, user *entity.User, rememberMe bool) (*SessionOutput, error) {
	pair, err := tokens.GenerateTokenPair(ctx, user.ID, user.Email, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &SessionOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}
