package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
	err    error
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, s.err
	}
	return s.claims, nil
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	svc := &stubTokenService{
		claims: &adapter.TokenClaims{UserID: userID, Email: "a@example.com"},
		err:    errors.New("bad token"),
	}

	tests := []struct {
		name       string
		header     string
		tokenErr   error
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "expired token", header: "Bearer bad", tokenErr: domainerror.ErrExpiredToken, wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeExpiredToken},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.err = errors.New("bad token")
			if tt.tokenErr != nil {
				svc.err = tt.tokenErr
			}

			r := gin.New()
			r.GET("/me", NewAuthMiddleware(svc).Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				require.True(t, ok)
				email, _ := GetUserEmailFromContext(c)
				c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, string(tt.wantCode), body.Code)
				return
			}
			assert.Contains(t, w.Body.String(), userID.String())
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Hour, true)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"), "limits are per client")

	rl.Reset()
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Hour, false)
	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Zero(t, rl.size())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiterWithConfig(5, time.Millisecond, true)
	rl.limiterFor("10.0.0.1")
	require.Equal(t, 1, rl.size())

	time.Sleep(5 * time.Millisecond)
	rl.Cleanup()
	assert.Zero(t, rl.size())
}

func TestRateLimiter_StartSweepsIdleClients(t *testing.T) {
	rl := NewRateLimiterWithConfig(5, 10*time.Millisecond, true)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	require.Equal(t, 3, rl.size())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return rl.size() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop after cancel")
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	t.Run("generates an ID", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 26)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, id, entry["request_id"])
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, float64(http.StatusOK), entry["status"])
	})

	t.Run("keeps the caller's ID", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "abc-123", entry["request_id"])
	})
}
