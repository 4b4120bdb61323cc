// Package router sets up the HTTP routing for the application.
package router

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	logger              *slog.Logger
	healthController    *controller.HealthController
	authController      *controller.AuthController
	userController      *controller.UserController
	categoryController  *controller.CategoryController
	expenseController   *controller.ExpenseController
	budgetController    *controller.BudgetController
	goalController      *controller.GoalController
	dashboardController *controller.DashboardController
	authRateLimiter     *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	logger *slog.Logger,
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	expenseController *controller.ExpenseController,
	budgetController *controller.BudgetController,
	goalController *controller.GoalController,
	dashboardController *controller.DashboardController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		logger:              logger,
		healthController:    healthController,
		authController:      authController,
		userController:      userController,
		categoryController:  categoryController,
		expenseController:   expenseController,
		budgetController:    budgetController,
		goalController:      goalController,
		dashboardController: dashboardController,
		authRateLimiter:     authRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) (*gin.Engine, error) {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(r.logger))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine, nil
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		limited := auth.Group("", r.authRateLimiter.Middleware())
		limited.POST("/register", r.authController.Register)
		limited.POST("/login", r.authController.Login)
		limited.POST("/forgot-password", r.authController.ForgotPassword)
		limited.POST("/reset-password", r.authController.ResetPassword)

		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	protected := v1.Group("", r.authMiddleware.Authenticate())

	protected.GET("/categories", r.categoryController.List)

	users := protected.Group("/users/me")
	{
		users.GET("", r.userController.GetProfile)
		users.PATCH("", r.userController.UpdateProfile)
		users.DELETE("", r.userController.DeleteAccount)
		users.PUT("/financial-summary", r.userController.UpdateFinancialSummary)
	}

	expenses := protected.Group("/expenses")
	{
		expenses.GET("", r.expenseController.List)
		expenses.POST("", r.expenseController.Create)
		expenses.POST("/suggest-category", r.expenseController.SuggestCategory)
		expenses.DELETE("/:id", r.expenseController.Delete)
	}

	budgets := protected.Group("/budgets")
	{
		budgets.GET("", r.budgetController.List)
		budgets.POST("", r.budgetController.Create)
		budgets.GET("/:id", r.budgetController.Get)
		budgets.PATCH("/:id", r.budgetController.Update)
		budgets.DELETE("/:id", r.budgetController.Delete)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", r.goalController.List)
		goals.POST("", r.goalController.Create)
		goals.GET("/:id", r.goalController.Get)
		goals.PATCH("/:id", r.goalController.Update)
		goals.DELETE("/:id", r.goalController.Delete)
		goals.POST("/:id/contributions", r.goalController.Contribute)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/overview", r.dashboardController.GetOverview)
		dashboard.GET("/trends", r.dashboardController.GetTrends)
	}
}
