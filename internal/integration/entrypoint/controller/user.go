package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/auth"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/profile"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// UserController handles profile and account endpoints for the signed-in user.
type UserController struct {
	getProfileUseCase             *profile.GetProfileUseCase
	updateProfileUseCase          *profile.UpdateProfileUseCase
	updateFinancialSummaryUseCase *profile.UpdateFinancialSummaryUseCase
	deleteAccountUseCase          *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getProfileUseCase *profile.GetProfileUseCase,
	updateProfileUseCase *profile.UpdateProfileUseCase,
	updateFinancialSummaryUseCase *profile.UpdateFinancialSummaryUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
) *UserController {
	return &UserController{
		getProfileUseCase:             getProfileUseCase,
		updateProfileUseCase:          updateProfileUseCase,
		updateFinancialSummaryUseCase: updateFinancialSummaryUseCase,
		deleteAccountUseCase:          deleteAccountUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getProfileUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// UpdateProfile handles PATCH /users/me requests.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingProfileFields), err)
		return
	}

	output, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), profile.UpdateProfileInput{
		UserID:       userID,
		Name:         req.Name,
		BudgetAlerts: req.BudgetAlerts,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// UpdateFinancialSummary handles PUT /users/me/financial-summary requests.
func (c *UserController) UpdateFinancialSummary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateFinancialSummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidSummaryAmount), err)
		return
	}

	output, err := c.updateFinancialSummaryUseCase.Execute(ctx.Request.Context(), profile.UpdateFinancialSummaryInput{
		UserID:      userID,
		Balance:     req.Balance,
		Income:      req.Income,
		Expenses:    req.Expenses,
		Savings:     req.Savings,
		SavingsGoal: req.SavingsGoal,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(output.Summary))
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	if err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	}); err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *UserController) handleUserError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(authStatus(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	var profileErr *domainerror.ProfileError
	if errors.As(err, &profileErr) {
		status := http.StatusBadRequest
		if profileErr.Code == domainerror.ErrCodeProfileNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: profileErr.Message,
			Code:  string(profileErr.Code),
		})
		return
	}

	internalError(ctx, err)
}
