package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/dashboard"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getOverviewUseCase *dashboard.GetOverviewUseCase
	getTrendsUseCase   *dashboard.GetTrendsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getOverviewUseCase *dashboard.GetOverviewUseCase,
	getTrendsUseCase *dashboard.GetTrendsUseCase,
) *DashboardController {
	return &DashboardController{
		getOverviewUseCase: getOverviewUseCase,
		getTrendsUseCase:   getTrendsUseCase,
	}
}

// GetOverview handles GET /dashboard/overview requests.
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getOverviewUseCase.Execute(ctx.Request.Context(), dashboard.GetOverviewInput{UserID: userID})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// GetTrends handles GET /dashboard/trends requests.
func (c *DashboardController) GetTrends(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	months := 0
	if raw := ctx.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "months must be a whole number",
				Code:  string(domainerror.ErrCodeInvalidTrendMonths),
			})
			return
		}
		months = parsed
	}

	output, err := c.getTrendsUseCase.Execute(ctx.Request.Context(), dashboard.GetTrendsInput{
		UserID: userID,
		Months: months,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	internalError(ctx, err)
}
