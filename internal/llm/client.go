package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"google.golang.org/api/option"
)

// Message is one turn of a chat-style completion request.
type Message struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// Options tunes a single completion request.
type Options struct {
	Tier        ModelTier
	Temperature float32
	MaxTokens   int32
}

// Client is the completion capability consumed by the core components.
// Implementations fail on transport/auth errors; retry policy lives inside
// the implementation, never in callers.
type Client interface {
	// Complete sends ordered messages and returns the raw response text.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
	gate   *semaphore.Weighted
	logger *zap.Logger
}

// NewGeminiClient creates a new Gemini client. The concurrency gate is owned by
// the client, so every component sharing it shares the same permit pool.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APICallError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{
		client: client,
		config: config,
		gate:   semaphore.NewWeighted(config.MaxConcurrent),
		logger: logger,
	}, nil
}

// Complete sends the messages to the configured model, holding a permit for
// the duration of the call and retrying transport failures with exponential
// backoff.
func (c *GeminiClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	modelName := c.config.GetModel(opts.Tier)
	if modelName == "" {
		return "", &APICallError{Message: fmt.Sprintf("no model configured for tier %s", opts.Tier)}
	}

	if err := c.gate.Acquire(ctx, 1); err != nil {
		return "", &APICallError{Message: "request cancelled while waiting for permit", Cause: err}
	}
	defer c.gate.Release(1)

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxTokens)
	}

	var parts []genai.Part
	for _, m := range messages {
		if m.Role == "system" {
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(m.Content)}}
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}
	if len(parts) == 0 {
		return "", &APICallError{Message: "no user messages provided"}
	}

	var lastErr error
	wait := c.config.RetryBaseWait
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		resp, err := model.GenerateContent(ctx, parts...)
		if err == nil {
			text, extractErr := extractTextFromResponse(resp)
			if extractErr != nil {
				return "", extractErr
			}
			c.logger.Debug("completion received",
				zap.String("model", modelName),
				zap.Int("attempt", attempt),
				zap.Int("response_len", len(text)))
			return text, nil
		}

		lastErr = err
		c.logger.Warn("completion attempt failed",
			zap.String("model", modelName),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == c.config.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return "", &APICallError{Message: "request cancelled during backoff", Cause: ctx.Err()}
		case <-time.After(wait):
		}
		wait *= 2
		if wait > c.config.RetryMaxWait {
			wait = c.config.RetryMaxWait
		}
	}

	return "", &APICallError{
		Message: fmt.Sprintf("completion failed after %d attempts", c.config.MaxRetries),
		Cause:   lastErr,
	}
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &APICallError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &APICallError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &APICallError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
