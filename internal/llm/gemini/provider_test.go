package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/manustarter/manustarter/internal/llm/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(common.ProviderConfig{Provider: "gemini"})
	assert.Error(t, err)
}

func TestProviderComplete(t *testing.T) {
	var sawPath string
	var payload gjson.Result
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		payload = gjson.ParseBytes(body)
		sawPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"test_cases\": []}"}]}}],
			"usageMetadata": {"promptTokenCount": 11, "candidatesTokenCount": 4}
		}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(common.ProviderConfig{APIKey: "g-key", BaseURL: srv.URL})
	require.NoError(t, err)

	got, err := p.Complete(context.Background(), common.CompletionRequest{
		Prompt:      "generate",
		Temperature: 0.3,
		MaxTokens:   4000,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(sawPath, "models/"+DefaultModel+":generateContent"), "unexpected path %s", sawPath)
	assert.Equal(t, "generate", payload.Get("contents.0.parts.0.text").String())
	assert.Equal(t, int64(4000), payload.Get("generationConfig.maxOutputTokens").Int())
	assert.Equal(t, `{"test_cases": []}`, got.Text)
	assert.Equal(t, int64(11), got.TokenUsage.InputTokens)
	assert.Equal(t, int64(4), got.TokenUsage.OutputTokens)
}
