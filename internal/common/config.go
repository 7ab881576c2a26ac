package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	LLM      LLMConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// LLMConfig holds model fallback configuration
type LLMConfig struct {
	Model     string
	APIKey    string
	MaxTokens int
	Timeout   time.Duration
}

// LoadConfig loads configuration from environment variables.
// Callers are expected to have loaded .env beforehand (godotenv in main).
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN: getEnv("DB_URL", ""),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			Model:     getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			APIKey:    getEnv("ANTHROPIC_API_KEY", ""),
			MaxTokens: getEnvAsInt("ANTHROPIC_MAX_TOKENS", 8192),
			Timeout:   getEnvAsDuration("ANTHROPIC_TIMEOUT", 120*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
