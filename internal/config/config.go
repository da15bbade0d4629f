// Package config reads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Persona catalog backend. DATABASE_URL selects postgres, PERSONA_DB
	// selects sqlite, otherwise JSON files under PersonaDir.
	DatabaseURL string
	PersonaDB   string
	PersonaDir  string

	// Session archive and rate limiter. Optional.
	RedisURL string

	// Generation provider.
	Model       string
	Temperature float64
	MaxTokens   int64
	GenTimeout  time.Duration

	// Discussion flow.
	FocusRounds int
	GroupRounds int

	// Rate limiting
	RateLimitWhitelist []string // IPs or CIDRs exempt from rate limiting
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		PersonaDB:   os.Getenv("PERSONA_DB"),
		PersonaDir:  getEnv("PERSONA_DIR", "./data/personas"),
		RedisURL:    os.Getenv("REDIS_URL"),
		Model:       getEnv("MODEL", "claude-sonnet-4-20250514"),
		Temperature: getEnvFloat("TEMPERATURE", 0.8),
		MaxTokens:   int64(getEnvInt("MAX_TOKENS", 1024)),
		GenTimeout:  time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 25)) * time.Second,
		FocusRounds: getEnvInt("FOCUS_ROUNDS", 3),
		GroupRounds: getEnvInt("GROUP_ROUNDS", 2),
	}

	// Parse whitelist (comma-separated IPs or CIDRs)
	if whitelist := os.Getenv("RATE_LIMIT_WHITELIST"); whitelist != "" {
		for _, entry := range strings.Split(whitelist, ",") {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				cfg.RateLimitWhitelist = append(cfg.RateLimitWhitelist, entry)
			}
		}
	}

	// In production the server is useless without a provider key.
	if cfg.Env == "production" {
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			panic("ANTHROPIC_API_KEY is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
