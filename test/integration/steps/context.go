//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/infra/dependency"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
	"github.com/finance-tracker/personal-finance/test/integration/mock"
)

const (
	testJWTSecret       = "test-jwt-secret-key-for-testing-purposes"
	defaultTestPassword = "SecurePass123!"
	resendEmailsPath    = "/emails"
)

// suite holds resources shared by every scenario.
type suite struct {
	db       *mock.Db
	server   *httptest.Server
	injector *dependency.Injector
	provider *mock.ApiMock
}

var (
	shared     *suite
	sharedInit sync.Once
	sharedErr  error
)

func setupSuite() (*suite, error) {
	sharedInit.Do(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db:       mock.NewDb(model.All()...),
			provider: mock.NewApiServer(),
		}
		s.provider.Start()
		s.provider.SetResponse(http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": "stub-email"})

		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			Redis:  config.RedisConfig{SummaryTTL: time.Minute},
			JWT: config.JWTConfig{
				Secret:             testJWTSecret,
				AccessTokenExpiry:  15 * time.Minute,
				RefreshTokenExpiry: 7 * 24 * time.Hour,
				RememberMeExpiry:   30 * 24 * time.Hour,
				CleanupInterval:    time.Hour,
			},
			Email: config.EmailConfig{
				ResendAPIKey:    "re_test",
				ResendBaseURL:   s.provider.GetUrl(),
				FromName:        "Personal Finance",
				FromEmail:       "noreply@example.com",
				PollInterval:    time.Second,
				BatchSize:       50,
				CleanupInterval: time.Hour,
				RetentionDays:   7,
			},
			RateLimit: config.RateLimitConfig{Enabled: false, MaxAttempts: 5, Window: time.Minute},
			App:       config.AppConfig{BaseURL: "http://localhost:3000"},
		}

		injector, err := dependency.NewInjector(cfg, s.db.DbConn, dependency.Options{
			Redis:  mock.NewRedis(),
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		if err != nil {
			sharedErr = fmt.Errorf("failed to build injector: %w", err)
			return
		}
		engine, err := injector.Router.Setup(cfg.Server.Environment)
		if err != nil {
			sharedErr = fmt.Errorf("failed to set up router: %w", err)
			return
		}

		s.injector = injector
		s.server = httptest.NewServer(engine)
		shared = s
	})
	return shared, sharedErr
}

// InitializeTestSuite releases shared resources once all scenarios finish.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.provider.Close()
	})
}

// testContext is the per-scenario state.
type testContext struct {
	*suite
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken  string
	refreshToken string
	resetToken   string
	expiredToken string
	lastID       string
}

type response struct {
	status int
	body   any
}

func (t *testContext) before() error {
	s, err := setupSuite()
	if err != nil {
		return err
	}
	t.suite = s
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.headers = map[string]string{}
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.expiredToken = ""
	t.lastID = ""

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	t.provider.ClearRequests()
	return nil
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists for "([^"]*)"$`, test.anExpiredPasswordResetTokenExistsFor)

	// Domain setup steps
	ctx.Given(`^I have an expense of "([^"]*)" in "([^"]*)" described as "([^"]*)"$`, test.iHaveAnExpense)
	ctx.Given(`^I have a "([^"]*)" budget for "([^"]*)" with limit "([^"]*)"$`, test.iHaveABudget)
	ctx.Given(`^I have a goal "([^"]*)" with target "([^"]*)" due in (\d+) months$`, test.iHaveAGoal)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Background job steps
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email provider assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email should be addressed to "([^"]*)"$`, test.theLastEmailShouldBeAddressedTo)
	ctx.Then(`^the last email subject should contain "([^"]*)"$`, test.theLastEmailSubjectShouldContain)
}
