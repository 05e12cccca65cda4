package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	WebhookURL  string
	Port        string
	LogLevel    string
	DeleteAfter time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:   os.Getenv("BOT_TOKEN"),
		WebhookURL: os.Getenv("WEBHOOK_URL"),
		Port:       getEnv("PORT", "8000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	deleteAfter, err := time.ParseDuration(getEnv("DELETE_AFTER", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELETE_AFTER: %w", err)
	}
	cfg.DeleteAfter = deleteAfter

	return cfg, nil
}

// WebhookMode reports whether the bot should receive updates over an
// HTTP webhook instead of long-polling.
func (c *Config) WebhookMode() bool {
	return c.WebhookURL != ""
}

// ListenAddr returns the HTTP listen address for the webhook/health server.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// MaskedToken returns the bot token safe for logging.
func (c *Config) MaskedToken() string {
	return maskToken(c.BotToken)
}

func maskToken(s string) string {
	const keep = 6
	if s == "" {
		return s
	}
	if len(s) > keep {
		return s[:keep] + "..."
	}
	return "***"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
