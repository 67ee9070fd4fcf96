package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Client captures configuration for the Lycosidae API client.
type Client struct {
	BaseURL        string
	Timeout        time.Duration
	HealthInterval time.Duration
	RedisURL       string
	LogLevel       slog.Level
}

const (
	defaultBaseURL        = "http://0.0.0.0:8082"
	defaultTimeout        = 10 * time.Second
	defaultHealthInterval = 30 * time.Second
)

// FromEnv builds a Client config from environment variables so main stays
// lean. A .env file in the working directory is honored when present.
func FromEnv() Client {
	_ = godotenv.Load()

	cfg := Client{
		BaseURL:        defaultBaseURL,
		Timeout:        defaultTimeout,
		HealthInterval: defaultHealthInterval,
	}

	if v := os.Getenv("LYCOSIDAE_API_BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("LYCOSIDAE_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("LYCOSIDAE_HEALTH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HealthInterval = d
		}
	}
	cfg.RedisURL = os.Getenv("LYCOSIDAE_REDIS_URL")
	cfg.LogLevel = parseLevel(os.Getenv("LYCOSIDAE_LOG_LEVEL"))

	return cfg
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
