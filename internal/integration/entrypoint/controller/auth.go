// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

const (
	logoutMessage        = "Successfully logged out"
	passwordResetMessage = "Password has been reset successfully"
)

// authStatuses maps auth error codes to HTTP statuses. Unlisted codes are 500.
var authStatuses = map[domainerror.AuthErrorCode]int{
	domainerror.ErrCodeEmailExists:         http.StatusConflict,
	domainerror.ErrCodeInvalidName:         http.StatusBadRequest,
	domainerror.ErrCodeWeakPassword:        http.StatusBadRequest,
	domainerror.ErrCodeInvalidEmail:        http.StatusBadRequest,
	domainerror.ErrCodeMissingFields:       http.StatusBadRequest,
	domainerror.ErrCodeInvalidResetToken:   http.StatusBadRequest,
	domainerror.ErrCodeExpiredResetToken:   http.StatusBadRequest,
	domainerror.ErrCodeInvalidConfirmation: http.StatusBadRequest,
	domainerror.ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	domainerror.ErrCodeUserNotFound:        http.StatusUnauthorized,
	domainerror.ErrCodeInvalidToken:        http.StatusUnauthorized,
	domainerror.ErrCodeExpiredToken:        http.StatusUnauthorized,
	domainerror.ErrCodeMissingToken:        http.StatusUnauthorized,
	domainerror.ErrCodeRateLimited:         http.StatusTooManyRequests,
}

func authStatus(code domainerror.AuthErrorCode) int {
	if status, ok := authStatuses[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AuthController serves the /auth endpoints.
type AuthController struct {
	register       *auth.RegisterUserUseCase
	login          *auth.LoginUserUseCase
	refresh        *auth.RefreshTokenUseCase
	logout         *auth.LogoutUserUseCase
	forgotPassword *auth.ForgotPasswordUseCase
	resetPassword  *auth.ResetPasswordUseCase
}

func NewAuthController(
	register *auth.RegisterUserUseCase,
	login *auth.LoginUserUseCase,
	refresh *auth.RefreshTokenUseCase,
	logout *auth.LogoutUserUseCase,
	forgotPassword *auth.ForgotPasswordUseCase,
	resetPassword *auth.ResetPasswordUseCase,
) *AuthController {
	return &AuthController{
		register:       register,
		login:          login,
		refresh:        refresh,
		logout:         logout,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
	}
}

// Register handles POST /auth/register and answers 201 with a token pair.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	out, err := c.register.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		TokenResponse: dto.TokenResponse{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken},
		User:          dto.ToUserResponse(out.User),
	})
}

// Login handles POST /auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	out, err := c.login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		TokenResponse: dto.TokenResponse{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken},
		User:          dto.ToUserResponse(out.User),
	})
}

// RefreshToken handles POST /auth/refresh.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingToken), err)
		return
	}

	out, err := c.refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken})
}

// Logout handles POST /auth/logout. It always answers 200, even without a
// body or with a token that was already revoked.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if ctx.ShouldBindJSON(&req) == nil {
		err := c.logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{RefreshToken: req.RefreshToken})
		if err != nil {
			slog.WarnContext(ctx.Request.Context(), "Logout failed", "error", err)
		}
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: logoutMessage})
}

// ForgotPassword handles POST /auth/forgot-password. Known and unknown
// addresses get the same answer.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidEmail), err)
		return
	}

	out, err := c.forgotPassword.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{Email: req.Email})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
}

// ResetPassword handles POST /auth/reset-password.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	err := c.resetPassword.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: passwordResetMessage})
}

func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		internalError(ctx, err)
		return
	}

	ctx.JSON(authStatus(authErr.Code), dto.ErrorResponse{
		Error: authErr.Message,
		Code:  string(authErr.Code),
	})
}
