// Package llm provides the completion capability used by all prompt-issuing
// components, with centralized model configuration, a process-wide concurrency
// gate and bounded retry.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: question generation, fit analysis
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: interview rubric scoring
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration for the application
type Config struct {
	Models map[ModelTier]string

	// MaxConcurrent bounds in-flight completion requests across the process.
	MaxConcurrent int64
	// MaxRetries is the number of attempts per request on transport failure.
	MaxRetries int
	// RetryBaseWait and RetryMaxWait bound the exponential backoff between attempts.
	RetryBaseWait time.Duration
	RetryMaxWait  time.Duration
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		MaxConcurrent: 10,
		MaxRetries:    3,
		RetryBaseWait: 4 * time.Second,
		RetryMaxWait:  10 * time.Second,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models))
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
