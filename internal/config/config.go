package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Production bool
	Port       string
	LogLevel   slog.Level

	AllowedOrigins        []string
	AllowedOriginSuffixes []string
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address
	// is the client address.
	TrustedProxies []string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPass      string
	DBName      string
	DBPort      string
	DBSSLMode   string

	RedisURL       string
	RateLimitWrite time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", getEnv("NODE_ENV", "development"))

	cfg := &Config{
		AppEnv:     appEnv,
		Production: appEnv == "production",
		Port:       getEnv("PORT", "3000"),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:8080,https://apiplaygrounds.netlify.app")),
		AllowedOriginSuffixes: splitList(getEnv("ALLOWED_ORIGIN_SUFFIXES", ".netlify.app,.onrender.com")),
		TrustedProxies:        splitList(os.Getenv("TRUSTED_PROXIES")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      os.Getenv("DB_PASS"),
		DBName:      getEnv("DB_NAME", "profiles"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),
	}

	var err error
	cfg.RateLimitWrite, err = time.ParseDuration(getEnv("RATE_LIMIT_WRITE", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WRITE: %w", err)
	}
	if cfg.RateLimitWrite < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WRITE: negative duration %s", cfg.RateLimitWrite)
	}

	cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
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

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
