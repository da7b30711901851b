// Package config loads server configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is the signing key used when JWT_SECRET is unset in development.
const DevJWTSecret = "dev-secret-change-in-production"

// EnvDevelopment is the default APP_ENV. Any other value requires JWT_SECRET.
const EnvDevelopment = "development"

type Config struct {
	Env  string
	Port string

	// DBDriver is "sqlite" or "postgres".
	DBDriver    string
	DBPath      string // sqlite file
	DatabaseURL string // postgres DSN

	JWTSecret   string
	TokenTTL    time.Duration
	AdminEmails []string

	StaticPath string
	LogLevel   string
	LogFormat  string

	// Telegram notifications are disabled when TelegramToken is empty.
	TelegramToken  string
	TelegramChatID int64
	NotifyTimeout  time.Duration
}

// Load reads the configuration. Missing variables fall back to defaults
// suitable for local development. Outside development JWT_SECRET must be set.
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		Env:           strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		Port:          getEnv("PORT", "8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:        getEnv("DB_PATH", "./data/poker.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminEmails:   splitList(getEnv("ADMIN_EMAILS", "")),
		StaticPath:    getEnv("STATIC_PATH", "../frontend/static"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != EnvDevelopment {
			return nil, fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", cfg.Env)
		}
		cfg.JWTSecret = DevJWTSecret
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = getDuration("NOTIFY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
		}
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
