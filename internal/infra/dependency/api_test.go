package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/personal-finance/config"
	infradb "github.com/finance-tracker/personal-finance/internal/infra/db"
	"github.com/finance-tracker/personal-finance/internal/integration/email"
)

type apiHarness struct {
	t      *testing.T
	engine *gin.Engine
	inj    *Injector
	mailer *email.MockEmailSender
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infradb.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Redis:  config.RedisConfig{SummaryTTL: time.Minute},
		JWT: config.JWTConfig{
			Secret:             "api-test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
			RememberMeExpiry:   30 * 24 * time.Hour,
			CleanupInterval:    time.Hour,
		},
		Email: config.EmailConfig{
			FromName:        "Personal Finance",
			FromEmail:       "noreply@example.com",
			PollInterval:    time.Second,
			BatchSize:       10,
			CleanupInterval: time.Hour,
			RetentionDays:   7,
		},
		RateLimit: config.RateLimitConfig{Enabled: false, MaxAttempts: 5, Window: time.Minute},
		App:       config.AppConfig{BaseURL: "http://localhost:3000"},
	}

	mailer := email.NewMockEmailSender()
	inj, err := NewInjector(cfg, db, Options{
		Redis:       client,
		EmailSender: mailer,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	engine, err := inj.Router.Setup("test")
	require.NoError(t, err)

	return &apiHarness{t: t, engine: engine, inj: inj, mailer: mailer}
}

func (h *apiHarness) do(method, path, token string, body any) (int, map[string]any) {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (h *apiHarness) register(emailAddr string) (access, refresh string) {
	h.t.Helper()
	status, body := h.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    emailAddr,
		"name":     "Api User",
		"password": "secret123",
	})
	require.Equal(h.t, http.StatusCreated, status, body)
	return body["access_token"].(string), body["refresh_token"].(string)
}

func TestAPI_Health(t *testing.T) {
	h := newAPIHarness(t)

	status, body := h.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "connected", body["cache"])
}

func TestAPI_AuthFlow(t *testing.T) {
	h := newAPIHarness(t)
	_, refresh := h.register("flow@example.com")

	status, body := h.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "flow@example.com", "name": "Again", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, body["code"])

	status, _ = h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "flow@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "flow@example.com", "password": "secret123", "remember_me": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["access_token"])

	status, body = h.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, status)
	rotated := body["refresh_token"].(string)
	assert.NotEqual(t, refresh, rotated)

	status, _ = h.do(http.MethodPost, "/api/v1/auth/logout", "", map[string]any{"refresh_token": rotated})
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"refresh_token": rotated})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_RequiresToken(t *testing.T) {
	h := newAPIHarness(t)

	status, body := h.do(http.MethodGet, "/api/v1/expenses", "", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["code"])
}

func TestAPI_Expenses(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("expenses@example.com")

	for i := 0; i < 3; i++ {
		status, body := h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
			"description": fmt.Sprintf("Lunch %d", i),
			"amount":      "12.50",
			"category":    "food",
		})
		require.Equal(t, http.StatusCreated, status, body)
		assert.Equal(t, "12.50", body["amount"])
		assert.Equal(t, "Food", body["category_label"])
	}

	status, body := h.do(http.MethodGet, "/api/v1/expenses?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["expenses"], 2)
	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 2, pagination["total_pages"])

	status, _ = h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"description": "Yacht", "amount": "10000000", "category": "travel",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"description": "Mystery", "amount": "5", "category": "crypto",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EXP-010003", body["code"])

	status, body = h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"description": "Taxi", "amount": "8", "category": "transport",
	})
	require.Equal(t, http.StatusCreated, status)
	expenseID := body["id"].(string)

	other, _ := h.register("other@example.com")
	status, _ = h.do(http.MethodDelete, "/api/v1/expenses/"+expenseID, other, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = h.do(http.MethodDelete, "/api/v1/expenses/"+expenseID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = h.do(http.MethodDelete, "/api/v1/expenses/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_SuggestCategory(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("suggest@example.com")

	status, body := h.do(http.MethodPost, "/api/v1/expenses/suggest-category", token, map[string]any{
		"description": "Uber to the airport",
	})

	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "transport", body["category"])
	assert.Equal(t, "keywords", body["source"])
}

func TestAPI_BudgetProgress(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("budget@example.com")

	status, body := h.do(http.MethodPost, "/api/v1/budgets", token, map[string]any{
		"category": "food", "limit_amount": "100", "period": "monthly",
	})
	require.Equal(t, http.StatusCreated, status, body)
	budgetID := body["id"].(string)

	status, _ = h.do(http.MethodPost, "/api/v1/budgets", token, map[string]any{
		"category": "food", "limit_amount": "50",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"description": "Groceries", "amount": "80", "category": "food",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = h.do(http.MethodGet, "/api/v1/budgets/"+budgetID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "80.00", body["spent_amount"])
	progress := body["progress"].(map[string]any)
	assert.InDelta(t, 80.0, progress["percentage"], 0.001)
	assert.Equal(t, "warning", progress["status"])
	assert.Equal(t, "Close", progress["label"])

	status, body = h.do(http.MethodGet, "/api/v1/budgets", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["budgets"], 1)

	status, _ = h.do(http.MethodDelete, "/api/v1/budgets/"+budgetID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = h.do(http.MethodGet, "/api/v1/budgets/"+budgetID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_BudgetAlertEmail(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("alerts@example.com")

	status, _ := h.do(http.MethodPost, "/api/v1/budgets", token, map[string]any{
		"category": "entertainment", "limit_amount": "100",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"description": "Concert", "amount": "95", "category": "entertainment",
	})
	require.Equal(t, http.StatusCreated, status)

	h.inj.EmailWorker.ProcessNow(context.Background())

	require.Len(t, h.mailer.SentEmails, 1)
	assert.Equal(t, "alerts@example.com", h.mailer.SentEmails[0].To)
}

func TestAPI_GoalContribution(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("goal@example.com")

	deadline := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")
	status, body := h.do(http.MethodPost, "/api/v1/goals", token, map[string]any{
		"name": "Japan trip", "category": "travel", "target_amount": "1000", "deadline": deadline,
	})
	require.Equal(t, http.StatusCreated, status, body)
	goalID := body["id"].(string)

	status, body = h.do(http.MethodPost, "/api/v1/goals/"+goalID+"/contributions", token, map[string]any{
		"amount": "250",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "250.00", body["current_amount"])
	progress := body["progress"].(map[string]any)
	assert.InDelta(t, 25.0, progress["percentage"], 0.001)
	assert.Equal(t, "In Progress", progress["label"])

	other, _ := h.register("intruder@example.com")
	status, _ = h.do(http.MethodGet, "/api/v1/goals/"+goalID, other, nil)
	assert.Contains(t, []int{http.StatusForbidden, http.StatusNotFound}, status)
}

func TestAPI_AmountsAreValidatedAfterRounding(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("cents@example.com")
	deadline := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")

	status, body := h.do(http.MethodPost, "/api/v1/budgets", token, map[string]any{
		"category": "food", "limit_amount": "0.001",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BUD-010003", body["code"])

	status, body = h.do(http.MethodPost, "/api/v1/budgets", token, map[string]any{
		"category": "food", "limit_amount": "9999999.994",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "9999999.99", body["limit_amount"])
	budgetID := body["id"].(string)

	status, body = h.do(http.MethodPatch, "/api/v1/budgets/"+budgetID, token, map[string]any{
		"limit_amount": "0.004",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BUD-010003", body["code"])

	status, body = h.do(http.MethodGet, "/api/v1/budgets", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["budgets"], 1)

	status, body = h.do(http.MethodPost, "/api/v1/goals", token, map[string]any{
		"name": "Tiny", "category": "other", "target_amount": "0.004", "deadline": deadline,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "GOL-010003", body["code"])

	status, body = h.do(http.MethodGet, "/api/v1/goals", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Empty(t, body["goals"])

	for _, amount := range []string{"0.001", "9999999.999"} {
		status, body = h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
			"description": "Rounding", "amount": amount, "category": "food",
		})
		assert.Equal(t, http.StatusBadRequest, status, amount)
		assert.Equal(t, "EXP-010001", body["code"], amount)
	}

	status, body = h.do(http.MethodPut, "/api/v1/users/me/financial-summary", token, map[string]any{
		"balance": "999999999.995", "income": "0", "expenses": "0", "savings": "0", "savings_goal": "0",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "USR-010002", body["code"])
}

func TestAPI_Dashboard(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("dash@example.com")

	status, _ := h.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"description": "Dinner", "amount": "40", "category": "food",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := h.do(http.MethodGet, "/api/v1/dashboard/overview", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "40.00", body["month_expenses"])
	assert.EqualValues(t, 1, body["expense_count"])

	status, body = h.do(http.MethodGet, "/api/v1/dashboard/trends?months=3", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["trends"], 3)

	for _, months := range []string{"25", "abc"} {
		status, body = h.do(http.MethodGet, "/api/v1/dashboard/trends?months="+months, token, nil)
		assert.Equal(t, http.StatusBadRequest, status, months)
		assert.Equal(t, "DSH-010001", body["code"], months)
	}
}

func TestAPI_Categories(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("cats@example.com")

	status, body := h.do(http.MethodGet, "/api/v1/categories?kind=goal", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["categories"], 7)

	status, body = h.do(http.MethodGet, "/api/v1/categories?kind=planet", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CAT-010001", body["code"])
}

func TestAPI_ForgotPasswordQueuesEmail(t *testing.T) {
	h := newAPIHarness(t)
	h.register("forgot@example.com")

	status, _ := h.do(http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]any{"email": "forgot@example.com"})
	require.Equal(t, http.StatusOK, status)

	status, _ = h.do(http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]any{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, status)

	h.inj.EmailWorker.ProcessNow(context.Background())

	require.Len(t, h.mailer.SentEmails, 1)
	assert.Equal(t, "forgot@example.com", h.mailer.SentEmails[0].To)
}

func TestAPI_DeleteAccount(t *testing.T) {
	h := newAPIHarness(t)
	token, _ := h.register("bye@example.com")

	status, _ := h.do(http.MethodDelete, "/api/v1/users/me", token, map[string]any{
		"password": "secret123", "confirmation": "delete",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(http.MethodDelete, "/api/v1/users/me", token, map[string]any{
		"password": "secret123", "confirmation": "DELETE",
	})
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "bye@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
