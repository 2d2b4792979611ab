// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the application configuration
type Config struct {
	// Server
	Port    string
	GinMode string

	// Authentication
	JWTSecret      string
	AESKey         string
	TokenTTL       time.Duration
	AllowAnonymous bool // Guest mode: requests without Authorization pass the gate

	// Backends. Empty values select the in-memory implementations.
	RedisURL    string
	DatabaseURL string

	LogoutTopic string
	LogLevel    slog.Level
}

// Load reads .env.local when present and then the process environment
func Load() (*Config, error) {
	// A missing file is fine
	_ = godotenv.Load(".env.local")

	cfg := &Config{
		Port:           getEnv("PORT", "9000"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AESKey:         getEnv("AES_KEY", ""),
		TokenTTL:       getEnvAsDuration("TOKEN_TTL", 2*time.Hour),
		AllowAnonymous: getEnvAsBool("AUTH_ALLOW_ANONYMOUS", false),
		RedisURL:       getEnv("REDIS_URL", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LogoutTopic:    getEnv("LOGOUT_TOPIC", "aio.logout"),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings. Secrets are only mandatory in release mode;
// development falls back to fixed insecure values.
func (c *Config) Validate() error {
	if c.GinMode == "release" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in release mode")
		}
		if c.AESKey == "" {
			return fmt.Errorf("AES_KEY is required in release mode")
		}
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "aio-dev-secret"
	}
	if c.AESKey == "" {
		c.AESKey = "aio-dev-aes-key!"
	}

	switch len(c.AESKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("AES_KEY must be 16, 24 or 32 bytes, got %d", len(c.AESKey))
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	return nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
