package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("LYCOSIDAE_API_BASE_URL", "")
	t.Setenv("LYCOSIDAE_API_TIMEOUT", "")
	t.Setenv("LYCOSIDAE_HEALTH_INTERVAL", "")
	t.Setenv("LYCOSIDAE_REDIS_URL", "")
	t.Setenv("LYCOSIDAE_LOG_LEVEL", "")

	cfg := FromEnv()
	assert.Equal(t, "http://0.0.0.0:8082", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 30*time.Second, cfg.HealthInterval)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LYCOSIDAE_API_BASE_URL", "https://api.example.com/")
	t.Setenv("LYCOSIDAE_API_TIMEOUT", "3s")
	t.Setenv("LYCOSIDAE_HEALTH_INTERVAL", "1m")
	t.Setenv("LYCOSIDAE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LYCOSIDAE_LOG_LEVEL", "debug")

	cfg := FromEnv()
	assert.Equal(t, "https://api.example.com", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, time.Minute, cfg.HealthInterval)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnvIgnoresBadDurations(t *testing.T) {
	t.Setenv("LYCOSIDAE_API_TIMEOUT", "soon")
	t.Setenv("LYCOSIDAE_HEALTH_INTERVAL", "-5s")

	cfg := FromEnv()
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 30*time.Second, cfg.HealthInterval)
}
