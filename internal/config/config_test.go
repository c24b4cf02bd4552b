package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "reklik")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "reklik")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "reklik")
	t.Setenv("JWT_AUDIENCE", "reklik-clients")
	t.Setenv("TOKEN_TTL_MIN", "30")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id.apps.googleusercontent.com")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "reklik", cfg.DBUser)
	assert.Empty(t, cfg.DBPass)
	assert.Equal(t, 30, cfg.TokenTTLMin)
	assert.Equal(t, "client-id.apps.googleusercontent.com", cfg.GoogleClientID)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CACHE_PREFIX", "")

	cc := LoadCacheConfig()
	assert.True(t, cc.Enabled)
	assert.Equal(t, 30*time.Second, cc.TTL)
	assert.Equal(t, "cache", cc.Prefix)
	assert.Equal(t, 1048576, cc.MaxBodyBytes)
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "5m")

	cc := LoadCacheConfig()
	assert.False(t, cc.Enabled)
	assert.Equal(t, 5*time.Minute, cc.TTL)
}
