package llm

import (
	"fmt"
	"strings"

	"github.com/manustarter/manustarter/internal/llm/claude"
	"github.com/manustarter/manustarter/internal/llm/common"
	"github.com/manustarter/manustarter/internal/llm/gemini"
	"github.com/manustarter/manustarter/internal/llm/openai"
)

// IsLocalProvider returns true for providers that don't require an API key
func IsLocalProvider(provider string) bool {
	return provider == "ollama" || provider == "llamacpp"
}

var displayNames = map[string]string{
	"openrouter": "OpenRouter",
	"openai":     "OpenAI",
	"claude":     "Anthropic",
	"anthropic":  "Anthropic",
	"gemini":     "Gemini",
	"google":     "Gemini",
}

// missingKey wraps common.ErrNotConfigured with the provider's display name
func missingKey(provider string) error {
	name, ok := displayNames[provider]
	if !ok {
		name = provider
	}
	if name == "" {
		name = "AI provider"
	}
	return fmt.Errorf("%s %w", name, common.ErrNotConfigured)
}

// CreateProvider creates a provider based on the config
func CreateProvider(config common.ProviderConfig) (common.Provider, error) {
	config.Provider = strings.ToLower(strings.TrimSpace(config.Provider))

	if config.APIKey == "" && !IsLocalProvider(config.Provider) {
		return nil, missingKey(config.Provider)
	}

	switch config.Provider {
	case "claude", "anthropic":
		return claude.NewClaudeProvider(config)
	case "openai", "openrouter", "ollama", "llamacpp":
		if IsLocalProvider(config.Provider) && config.BaseURL == "" {
			return nil, fmt.Errorf("base URL is required for provider %s", config.Provider)
		}
		return openai.NewOpenAIProvider(config)
	case "gemini", "google":
		return gemini.NewGeminiProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: claude, anthropic, openai, openrouter, ollama, llamacpp, gemini)", config.Provider)
	}
}

// CreateProviderOrUnavailable never fails: a provider that cannot be built is
// replaced by one whose calls return the construction error.
func CreateProviderOrUnavailable(config common.ProviderConfig) (common.Provider, error) {
	p, err := CreateProvider(config)
	if err != nil {
		return &common.Unavailable{Provider: config.Provider, Err: err}, err
	}
	return p, nil
}
