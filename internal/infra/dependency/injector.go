// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/auth"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/budget"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/category"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/dashboard"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/expense"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/goal"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/profile"
	"github.com/finance-tracker/personal-finance/internal/infra/cache"
	"github.com/finance-tracker/personal-finance/internal/infra/server/router"
	"github.com/finance-tracker/personal-finance/internal/integration/adapters"
	summarycache "github.com/finance-tracker/personal-finance/internal/integration/cache"
	"github.com/finance-tracker/personal-finance/internal/integration/email"
	"github.com/finance-tracker/personal-finance/internal/integration/email/templates"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	EmailWorker     *email.Worker
	TokenCleanup    *adapters.TokenCleanup
	AuthRateLimiter *middleware.RateLimiter
}

// Options carries optional collaborators. A nil Redis client disables the
// summary cache; a nil EmailSender picks Resend when an API key is set and
// the logging mock otherwise.
type Options struct {
	Redis       *redis.Client
	EmailSender adapter.EmailSender
	Logger      *slog.Logger
	DBHealth    func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	var summaryCache adapter.SummaryCache
	if opts.Redis != nil {
		summaryCache = summarycache.NewSummaryCache(opts.Redis, cfg.Redis.SummaryTTL)
	}

	// Services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:             cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.JWT.RefreshTokenExpiry,
		RememberMeExpiry:   cfg.JWT.RememberMeExpiry,
	}, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	emailService := email.NewService(emailQueueRepo)

	var primarySuggester adapter.CategorySuggester
	gemini := adapters.NewGeminiSuggester(adapters.GeminiConfig{
		APIKey:      cfg.AI.GeminiAPIKey,
		Model:       cfg.AI.GeminiModel,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if gemini.IsAvailable() {
		primarySuggester = gemini
	} else {
		logger.Info("Gemini API key not set, category suggestions use keyword rules only")
	}

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.App.BaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService, summaryCache)

	// Profile use cases
	getProfileUseCase := profile.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(userRepo)
	updateFinancialSummaryUseCase := profile.NewUpdateFinancialSummaryUseCase(userRepo, summaryCache)

	// Expense use cases
	alertChecker := budget.NewAlertChecker(budgetRepo, expenseRepo, userRepo, emailService)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, alertChecker, summaryCache)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, summaryCache)
	suggestCategoryUseCase := expense.NewSuggestCategoryUseCase(primarySuggester, adapters.NewKeywordSuggester())

	// Budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, expenseRepo, summaryCache)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, expenseRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, expenseRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, expenseRepo, summaryCache)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, summaryCache)

	// Goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, summaryCache)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, summaryCache)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, summaryCache)
	contributeGoalUseCase := goal.NewContributeGoalUseCase(goalRepo, summaryCache)

	// Dashboard and catalog use cases
	getOverviewUseCase := dashboard.NewGetOverviewUseCase(userRepo, expenseRepo, budgetRepo, goalRepo, summaryCache)
	getTrendsUseCase := dashboard.NewGetTrendsUseCase(expenseRepo, summaryCache)
	listCategoriesUseCase := category.NewListCategoriesUseCase(expenseRepo)

	// Controllers
	dbHealth := opts.DBHealth
	if dbHealth == nil {
		dbHealth = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	var cacheHealth func() bool
	if opts.Redis != nil {
		cacheHealth = cache.HealthCheck(opts.Redis)
	}
	healthController := controller.NewHealthController(dbHealth, cacheHealth)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)
	userController := controller.NewUserController(
		getProfileUseCase,
		updateProfileUseCase,
		updateFinancialSummaryUseCase,
		deleteAccountUseCase,
	)
	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		listExpensesUseCase,
		deleteExpenseUseCase,
		suggestCategoryUseCase,
	)
	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		listBudgetsUseCase,
		getBudgetUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)
	goalController := controller.NewGoalController(
		createGoalUseCase,
		listGoalsUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		contributeGoalUseCase,
	)
	dashboardController := controller.NewDashboardController(getOverviewUseCase, getTrendsUseCase)
	categoryController := controller.NewCategoryController(listCategoriesUseCase)

	// Middleware
	authRateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window, cfg.RateLimit.Enabled)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		logger,
		healthController,
		authController,
		userController,
		categoryController,
		expenseController,
		budgetController,
		goalController,
		dashboardController,
		authRateLimiter,
		authMiddleware,
	)

	// Background jobs
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	sender := opts.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			client := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			if cfg.Email.ResendBaseURL != "" {
				if err := client.SetBaseURL(cfg.Email.ResendBaseURL); err != nil {
					return nil, err
				}
			}
			sender = client
		} else {
			logger.Warn("RESEND_API_KEY not set, emails will not be delivered")
			sender = email.NewMockEmailSender()
		}
	}
	worker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval:    cfg.Email.PollInterval,
		BatchSize:       cfg.Email.BatchSize,
		CleanupInterval: cfg.Email.CleanupInterval,
		RetentionDays:   cfg.Email.RetentionDays,
	})

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		EmailWorker:     worker,
		TokenCleanup:    adapters.NewTokenCleanup(tokenRepo, cfg.JWT.CleanupInterval),
		AuthRateLimiter: authRateLimiter,
	}, nil
}
