package claude

import (
	"context"
	"fmt"

	"github.com/manustarter/manustarter/internal/llm/common"
)

// ClaudeProvider implements common.Provider for Claude
type ClaudeProvider struct {
	client *Client
}

// NewClaudeProvider creates a new Claude provider
func NewClaudeProvider(config common.ProviderConfig) (*ClaudeProvider, error) {
	client, err := NewClientWithConfig(config.APIKey, config.Model, config.BaseURL, config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create Claude client: %w", err)
	}

	return &ClaudeProvider{client: client}, nil
}

// Complete sends the prompt to the Messages API.
// ResponseSchema is ignored; the prompt already carries the format directive.
func (p *ClaudeProvider) Complete(ctx context.Context, req common.CompletionRequest) (*common.Completion, error) {
	text, usage, err := p.client.Complete(ctx, req.System, req.Prompt, req.Temperature, req.MaxTokens)
	if err != nil {
		return nil, err
	}

	return &common.Completion{
		Text:       text,
		Model:      p.client.model,
		TokenUsage: convertTokenUsage(usage),
	}, nil
}

// Name returns the provider name
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// Close closes any resources
func (p *ClaudeProvider) Close() error {
	return nil
}

// convertTokenUsage converts Claude token usage to common format
func convertTokenUsage(usage *TokenUsage) *common.TokenUsage {
	if usage == nil {
		return nil
	}
	return &common.TokenUsage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	}
}
