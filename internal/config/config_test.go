package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ENV", "NODE_ENV", "PORT", "ALLOWED_ORIGINS", "ALLOWED_ORIGIN_SUFFIXES",
	"DATABASE_URL", "DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "DB_PORT", "DB_SSLMODE",
	"REDIS_URL", "RATE_LIMIT_WRITE", "MEILISEARCH_HOST", "MEILI_MASTER_KEY", "LOG_LEVEL",
	"TRUSTED_PROXIES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	// godotenv never overrides variables that are already set, so an empty
	// value keeps a stray .env file out of the test.
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.False(t, cfg.Production)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.RateLimitWrite)
	assert.Contains(t, cfg.AllowedOrigins, "https://apiplaygrounds.netlify.app")
	assert.Equal(t, []string{".netlify.app", ".onrender.com"}, cfg.AllowedOriginSuffixes)
	assert.Equal(t, "host=localhost user=postgres password= dbname=profiles port=5432 sslmode=disable", cfg.DSN())
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.MeiliSearchHost)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app?sslmode=require")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("RATE_LIMIT_WRITE", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.True(t, cfg.Production)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres://u:p@db:5432/app?sslmode=require", cfg.DSN())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Zero(t, cfg.RateLimitWrite)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestAppEnvWinsOverNodeEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.AppEnv)
	assert.False(t, cfg.Production)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"RATE_LIMIT_WRITE": "soon",
		"LOG_LEVEL":        "chatty",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("negative window", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RATE_LIMIT_WRITE", "-1s")
		_, err := Load()
		assert.Error(t, err)
	})
}
