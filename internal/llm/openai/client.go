package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/manustarter/manustarter/internal/core/auth"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

var thinkTagRegex = regexp.MustCompile(`(?s)<think>.*?</think>\s*`)

// stripThinkTags removes <think>...</think> blocks that local reasoning models
// embed in the content field.
func stripThinkTags(content string) (cleaned string, reasoning string) {
	matches := thinkTagRegex.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, ""
	}
	var cleanedParts, reasoningParts []string
	last := 0
	for _, match := range matches {
		cleanedParts = append(cleanedParts, content[last:match[0]])
		block := strings.TrimSpace(content[match[0]:match[1]])
		block = strings.TrimSuffix(strings.TrimPrefix(block, "<think>"), "</think>")
		reasoningParts = append(reasoningParts, strings.TrimSpace(block))
		last = match[1]
	}
	cleanedParts = append(cleanedParts, content[last:])
	return strings.TrimSpace(strings.Join(cleanedParts, "")), strings.Join(reasoningParts, "\n")
}

// Request is a chat completion call with a single user turn
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	Schema      json.RawMessage
	SchemaName  string
}

// Response is the parsed chat completion
type Response struct {
	Content      string
	Reasoning    string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// APIError is a non-2xx reply from the completions endpoint
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

// Config configures a Client
type Config struct {
	APIKey     string
	AuthHeader string
	Model      string
	BaseURL    string
	SiteURL    string
	SiteName   string
	Timeout    time.Duration
}

// Client is a minimal OpenAI-compatible chat completions client
type Client struct {
	httpClient *http.Client
	auth       auth.AuthProvider
	model      string
	baseURL    string
	siteURL    string
	siteName   string
}

// NewClient creates a client with explicit configuration
func NewClient(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		auth:       auth.ForAPIKey(cfg.APIKey, cfg.AuthHeader),
		model:      cfg.Model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		siteURL:    cfg.SiteURL,
		siteName:   cfg.SiteName,
	}, nil
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

// Chat sends a non-streaming chat request to /chat/completions
func (c *Client) Chat(ctx context.Context, r Request) (*Response, error) {
	bodyBytes, err := json.Marshal(c.buildRequestPayload(r))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	if err := c.setHeaders(req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed response envelope")
	}
	res := gjson.ParseBytes(body)
	if msg := res.Get("error.message"); msg.Exists() {
		// OpenRouter reports upstream failures with a 200 and an error object.
		return nil, fmt.Errorf("API error: %s", msg.String())
	}

	msg := res.Get("choices.0.message")
	if !msg.Exists() {
		return nil, fmt.Errorf("malformed response envelope: no choices")
	}

	reasoning := msg.Get("reasoning_content").String()
	if reasoning == "" {
		reasoning = msg.Get("reasoning").String()
	}

	content := msg.Get("content").String()
	if strings.Contains(content, "<think>") {
		cleaned, inlineReasoning := stripThinkTags(content)
		content = cleaned
		if reasoning == "" {
			reasoning = inlineReasoning
		}
	}

	model := res.Get("model").String()
	if model == "" {
		model = c.model
	}

	return &Response{
		Content:      content,
		Reasoning:    reasoning,
		Model:        model,
		InputTokens:  res.Get("usage.prompt_tokens").Int(),
		OutputTokens: res.Get("usage.completion_tokens").Int(),
	}, nil
}

func (c *Client) isOpenRouter() bool {
	return strings.Contains(c.baseURL, "openrouter.ai")
}

func (c *Client) setHeaders(req *http.Request) error {
	req.Header.Set("Content-Type", "application/json")
	if err := c.auth.Apply(req); err != nil {
		return fmt.Errorf("failed to apply auth: %w", err)
	}
	if c.isOpenRouter() {
		if c.siteURL != "" {
			req.Header.Set("HTTP-Referer", c.siteURL)
		}
		if c.siteName != "" {
			req.Header.Set("X-Title", c.siteName)
		}
	}
	return nil
}

func (c *Client) buildRequestPayload(r Request) map[string]interface{} {
	var messages []map[string]interface{}
	if r.System != "" {
		messages = append(messages, map[string]interface{}{"role": "system", "content": r.System})
	}
	messages = append(messages, map[string]interface{}{"role": "user", "content": r.Prompt})

	payload := map[string]interface{}{
		"model":       c.model,
		"messages":    messages,
		"temperature": r.Temperature,
		"stream":      false,
	}

	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") {
		// Reasoning models reject temperature and max_tokens.
		delete(payload, "temperature")
		payload["reasoning_effort"] = "medium"
		if r.MaxTokens > 0 {
			payload["max_completion_tokens"] = r.MaxTokens
		}
	} else if r.MaxTokens > 0 {
		payload["max_tokens"] = r.MaxTokens
	}

	if len(r.Schema) > 0 {
		name := r.SchemaName
		if name == "" {
			name = "response"
		}
		payload["response_format"] = map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   name,
				"schema": r.Schema,
				"strict": true,
			},
		}
	}

	return payload
}
