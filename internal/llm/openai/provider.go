package openai

import (
	"context"
	"fmt"

	"github.com/manustarter/manustarter/internal/llm/common"
)

// OpenAIProvider implements common.Provider for OpenAI and OpenRouter
type OpenAIProvider struct {
	name   string
	client *Client
}

// NewOpenAIProvider creates a new OpenAI/OpenRouter provider
func NewOpenAIProvider(config common.ProviderConfig) (*OpenAIProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" && config.Provider == "openrouter" {
		baseURL = OpenRouterBaseURL
	}

	client, err := NewClient(Config{
		APIKey:     config.APIKey,
		AuthHeader: config.AuthHeader,
		Model:      config.Model,
		BaseURL:    baseURL,
		SiteURL:    config.SiteURL,
		SiteName:   config.SiteName,
		Timeout:    config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	name := config.Provider
	if name == "" {
		name = "openai"
	}
	return &OpenAIProvider{name: name, client: client}, nil
}

// Complete sends the prompt as a single user message
func (p *OpenAIProvider) Complete(ctx context.Context, req common.CompletionRequest) (*common.Completion, error) {
	resp, err := p.client.Chat(ctx, Request{
		System:      req.System,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Schema:      req.ResponseSchema,
		SchemaName:  req.SchemaName,
	})
	if err != nil {
		return nil, err
	}

	return &common.Completion{
		Text:  resp.Content,
		Model: resp.Model,
		TokenUsage: &common.TokenUsage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
		},
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Close closes any resources
func (p *OpenAIProvider) Close() error {
	p.client.httpClient.CloseIdleConnections()
	return nil
}
