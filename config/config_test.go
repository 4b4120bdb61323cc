package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("E2E_MODE", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RememberMeExpiry)
	assert.Equal(t, 5*time.Minute, cfg.Redis.SummaryTTL)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.AI.GeminiModel)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 5, cfg.RateLimit.MaxAttempts)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.IsTest())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SUMMARY_CACHE_TTL", "30s")
	t.Setenv("GEMINI_TEMPERATURE", "0.7")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("APP_BASE_URL", "https://app.example.com/")

	cfg := Load()

	assert.True(t, cfg.IsTest())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Redis.SummaryTTL)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 1e-9)
	assert.False(t, cfg.Email.WorkerEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://app.example.com", cfg.App.BaseURL)
	assert.False(t, cfg.RateLimit.Enabled, "rate limiting is off under ENV=test")
}

func TestEnvHelpers_IgnoreMalformedValues(t *testing.T) {
	t.Setenv("BAD_INT", "ten")
	t.Setenv("BAD_FLOAT", "x")
	t.Setenv("BAD_BOOL", "maybe")
	t.Setenv("BAD_DURATION", "soon")

	assert.Equal(t, 10, getEnvAsInt("BAD_INT", 10))
	assert.InDelta(t, 1.5, getEnvAsFloat("BAD_FLOAT", 1.5), 1e-9)
	assert.True(t, getEnvAsBool("BAD_BOOL", true))
	assert.Equal(t, time.Second, getEnvAsDuration("BAD_DURATION", time.Second))
}
