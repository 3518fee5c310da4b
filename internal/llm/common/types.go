package common

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotConfigured is returned by providers built without credentials.
var ErrNotConfigured = errors.New("API key not configured")

// CompletionRequest is a single-prompt completion call
type CompletionRequest struct {
	System      string  `json:"system,omitempty"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`

	// ResponseSchema, when set, asks providers that support it for
	// schema-constrained JSON output.
	ResponseSchema json.RawMessage `json:"response_schema,omitempty"`
	SchemaName     string          `json:"schema_name,omitempty"`
}

// TokenUsage represents token usage information
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Completion is the text returned for a CompletionRequest
type Completion struct {
	Text       string      `json:"text"`
	Model      string      `json:"model"`
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`
}

// Provider represents a generative-text service.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Complete sends the prompt and returns the completion text
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)

	// Name identifies the provider in logs
	Name() string

	// Close closes any resources
	Close() error
}

// ProviderConfig holds configuration for creating a provider
type ProviderConfig struct {
	Provider string // "openai", "openrouter", "claude", "anthropic", "gemini"
	APIKey   string
	BaseURL  string // optional override
	Model    string // model name
	Timeout  time.Duration

	// AuthHeader sends the key in a custom header instead of Authorization: Bearer
	AuthHeader string

	// Attribution headers sent to OpenRouter
	SiteURL  string
	SiteName string
}

// Unavailable is a Provider whose calls always fail with Err.
// It stands in when the real provider cannot be built at startup.
type Unavailable struct {
	Provider string
	Err      error
}

func (u *Unavailable) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	return nil, u.Err
}

func (u *Unavailable) Name() string {
	return u.Provider
}

func (u *Unavailable) Close() error {
	return nil
}
