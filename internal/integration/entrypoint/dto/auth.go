package dto

// Request bodies for the /auth endpoints. Email and password rules beyond
// presence are enforced by the use cases so the error codes stay specific.
type (
	RegisterRequest struct {
		Email    string `json:"email" binding:"required,max=255"`
		Name     string `json:"name" binding:"max=100"`
		Password string `json:"password" binding:"required"`
	}

	LoginRequest struct {
		Email      string `json:"email" binding:"required"`
		Password   string `json:"password" binding:"required"`
		RememberMe bool   `json:"remember_me"`
	}

	// RefreshTokenRequest is shared by /auth/refresh and /auth/logout.
	RefreshTokenRequest struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" binding:"required"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
)

// LogoutRequest has the same shape as a refresh request.
type LogoutRequest = RefreshTokenRequest

// TokenResponse is returned by /auth/refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}
