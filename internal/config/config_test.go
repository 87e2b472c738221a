package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "REDIS_ADDRESS", "JWT_TTL", "CORS_ALLOWED_ORIGINS", "REPORT_CACHE_TTL", "LOGIN_RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "10-M", cfg.Auth.LoginRateLimit)
	assert.Equal(t, 5*time.Minute, cfg.Report.CacheTTL)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDRESS", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://backoffice.example.com, https://admin.example.com")
	t.Setenv("LOG_PRETTY", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://backoffice.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Log.Pretty)
}
