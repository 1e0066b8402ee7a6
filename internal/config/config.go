// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort              = 8080
	DefaultMaxConcurrentLLM  = 10
	DefaultMaxRetries        = 3
	DefaultBatchSize         = 50
	DefaultSessionTTLHours   = 72
	DefaultJWTExpirationHrs  = 72
)

// Config holds everything the serve command needs. Required settings are
// GEMINI_API_KEY, JWT_SECRET, and WEBHOOK_SECRET; DATABASE_URL is optional and
// its absence selects the in-memory store.
type Config struct {
	// Gemini
	APIKey        string
	LiteModel     string // override for the lite tier, optional
	StandardModel string
	AdvancedModel string

	// HTTP
	Port    int
	BaseURL string // public base URL used when building interview links

	// Persistence
	DatabaseURL string

	// Security
	JWTSecret          string
	JWTExpirationHours int
	WebhookSecret      string

	// Processing limits
	MaxConcurrentLLM int64
	MaxRetries       int
	BatchSize        int
	SessionTTLHours  int
}

// LoadFromEnv reads configuration from environment variables. It does not
// validate; call Validate afterwards so every missing setting is reported in
// one pass.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		LiteModel:     os.Getenv("GEMINI_LITE_MODEL"),
		StandardModel: os.Getenv("GEMINI_STANDARD_MODEL"),
		AdvancedModel: os.Getenv("GEMINI_ADVANCED_MODEL"),
		BaseURL:       os.Getenv("BASE_URL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
	}

	var err error
	if cfg.Port, err = intEnv("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.JWTExpirationHours, err = intEnv("JWT_EXPIRATION_HOURS", DefaultJWTExpirationHrs); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = intEnv("LLM_MAX_RETRIES", DefaultMaxRetries); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = intEnv("BATCH_SIZE", DefaultBatchSize); err != nil {
		return nil, err
	}
	if cfg.SessionTTLHours, err = intEnv("SESSION_TTL_HOURS", DefaultSessionTTLHours); err != nil {
		return nil, err
	}

	maxConcurrent, err := intEnv("MAX_CONCURRENT_REQUESTS", DefaultMaxConcurrentLLM)
	if err != nil {
		return nil, err
	}
	cfg.MaxConcurrentLLM = int64(maxConcurrent)

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	return cfg, nil
}

// Validate checks required settings and numeric ranges, collecting every
// problem into one error.
func (c *Config) Validate() error {
	var problems []string

	if c.APIKey == "" {
		problems = append(problems, "GEMINI_API_KEY is required")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.WebhookSecret == "" {
		problems = append(problems, "WEBHOOK_SECRET is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.MaxConcurrentLLM < 1 {
		problems = append(problems, "MAX_CONCURRENT_REQUESTS must be at least 1")
	}
	if c.MaxRetries < 1 {
		problems = append(problems, "LLM_MAX_RETRIES must be at least 1")
	}
	if c.BatchSize < 1 {
		problems = append(problems, "BATCH_SIZE must be at least 1")
	}
	if c.JWTExpirationHours < 1 {
		problems = append(problems, "JWT_EXPIRATION_HOURS must be at least 1")
	}
	if c.SessionTTLHours < 1 {
		problems = append(problems, "SESSION_TTL_HOURS must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}
