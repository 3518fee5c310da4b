package claude

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manustarter/manustarter/internal/infra/logger"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultMaxTokens applies when the caller passes no limit
	DefaultMaxTokens = 4096
)

type Client struct {
	client anthropic.Client
	model  string
}

// TokenUsage represents token usage information
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// NewClientWithConfig creates a new Claude client with explicit API key and model.
// Empty values fall back to ANTHROPIC_API_KEY / ANTHROPIC_MODEL.
func NewClientWithConfig(apiKey, model, baseURL string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
	}

	if model == "" {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = string(anthropic.ModelClaudeSonnet4_20250514)
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	// Custom base URL for proxies
	if baseURL == "" {
		baseURL = os.Getenv("ANTHROPIC_BASE_URL")
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

// Complete sends a single user turn and returns the concatenated text blocks
func (c *Client) Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, *TokenUsage, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", nil, fmt.Errorf("no prompt provided")
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		logger.Error("Anthropic error", logger.Err(err))
		return "", nil, fmt.Errorf("anthropic error: %w", err)
	}

	var responseText strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			responseText.WriteString(text.Text)
		}
	}

	return responseText.String(), &TokenUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}, nil
}
