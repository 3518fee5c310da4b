package generator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/manustarter/manustarter/internal/core/testcase"
	"github.com/manustarter/manustarter/internal/llm/common"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []common.CompletionRequest
}

func (f *fakeProvider) Complete(ctx context.Context, req common.CompletionRequest) (*common.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &common.Completion{Text: f.text, Model: "fake-model"}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Close() error { return nil }

func intPtr(n int) *int { return &n }

func newRequest(t *testing.T, category testcase.Category, module string, count int, url string) testcase.Request {
	t.Helper()
	req, err := testcase.Validate(testcase.RawRequest{
		TestCaseType: string(category),
		ModuleName:   module,
		NumTestCases: &count,
		URL:          url,
	})
	require.NoError(t, err)
	return req
}

func rejectedFields(err *testcase.ValidationError) []string {
	fields := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func newService(t *testing.T, p common.Provider, opts Options) *Service {
	t.Helper()
	s, err := New(p, opts)
	require.NoError(t, err)
	return s
}

func TestGenerateValidationRunsBeforeProvider(t *testing.T) {
	p := &fakeProvider{text: `{"test_cases": []}`}
	s := newService(t, p, DefaultOptions())

	_, err := s.Generate(context.Background(), testcase.RawRequest{
		TestCaseType: "Exploratory Test Cases",
		ModuleName:   "Login",
		NumTestCases: intPtr(0),
		URL:          "ftp://example.com",
	})

	var verr *testcase.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"test_case_type", "num_test_cases", "url"}, rejectedFields(verr))
	assert.Empty(t, p.calls)
}

func TestGenerateServiceFailureIsNotMasked(t *testing.T) {
	cause := errors.New("connection refused")
	p := &fakeProvider{err: cause}
	s := newService(t, p, DefaultOptions())

	res, err := s.Generate(context.Background(), testcase.RawRequest{
		TestCaseType: "Security Test Cases",
		ModuleName:   "Login",
		NumTestCases: intPtr(3),
		URL:          "https://example.com",
	})

	assert.Nil(t, res)
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "AI service error: connection refused", err.Error())
	assert.Equal(t, "fake", serr.Provider)
}

func TestGenerateSendsPromptAndSampling(t *testing.T) {
	p := &fakeProvider{text: `{"test_cases": []}`}
	s := newService(t, p, Options{Temperature: 0.3, MaxTokens: 4000})

	req := newRequest(t, testcase.Functional, "Checkout", 2, "https://shop.example.com")
	_, err := s.GenerateValidated(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, p.calls, 1)
	call := p.calls[0]
	assert.Equal(t, testcase.BuildPrompt(req), call.Prompt)
	assert.Equal(t, testcase.SystemPrompt, call.System)
	assert.Equal(t, 0.3, call.Temperature)
	assert.Equal(t, 4000, call.MaxTokens)
	assert.Nil(t, call.ResponseSchema)
}

func TestGenerateStructuredOutputAttachesSchema(t *testing.T) {
	p := &fakeProvider{text: `{"test_cases": []}`}
	s := newService(t, p, Options{Temperature: 0.3, MaxTokens: 4000, StructuredOutput: true})

	_, err := s.GenerateValidated(context.Background(), newRequest(t, testcase.Functional, "Checkout", 1, "https://shop.example.com"))
	require.NoError(t, err)

	require.Len(t, p.calls, 1)
	assert.NotEmpty(t, p.calls[0].ResponseSchema)
	assert.Equal(t, testcase.SchemaName, p.calls[0].SchemaName)
}

func TestGenerateExactCount(t *testing.T) {
	completion := `Here you go:
{"test_cases": [
  {"test_case_id": "TC_LOGIN_001", "description": "a", "preconditions": "p", "steps": "s"},
  {"test_case_id": "TC_LOGIN_002", "description": "b", "preconditions": "p", "steps": "s"}
]}`

	tests := []struct {
		name          string
		count         int
		wantTier      testcase.Tier
		wantGenerated int
	}{
		{"pads", 5, testcase.TierLenient, 3},
		{"exact", 2, testcase.TierLenient, 0},
		{"truncates", 1, testcase.TierLenient, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(t, &fakeProvider{text: completion}, DefaultOptions())
			req := newRequest(t, testcase.Security, "Login", tt.count, "https://example.com/login")

			res, err := s.GenerateValidated(context.Background(), req)
			require.NoError(t, err)

			assert.Len(t, res.TestCases, tt.count)
			assert.Equal(t, tt.count, res.TotalCount)
			assert.Equal(t, tt.wantTier, res.Tier)
			assert.Equal(t, 2, res.Parsed)
			assert.Equal(t, tt.wantGenerated, res.Generated)
			assert.Equal(t, "TC_LOGIN_001", res.TestCases[0].ID)
		})
	}
}

func TestGenerateEmptyCompletionFallsBack(t *testing.T) {
	for _, text := range []string{"", "   ", "I cannot help with that."} {
		s := newService(t, &fakeProvider{text: text}, DefaultOptions())
		req := newRequest(t, testcase.Usability, "Profile Page", 4, "https://example.com/profile")

		res, err := s.GenerateValidated(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, testcase.TierNone, res.Tier)
		assert.Equal(t, 4, res.Generated)
		if diff := cmp.Diff(testcase.Fallback(req, 4), res.TestCases); diff != "" {
			t.Errorf("fallback mismatch for %q (-want +got):\n%s", text, diff)
		}
		assert.Equal(t, "TC_PROFILE_PAGE_001", res.TestCases[0].ID)
	}
}

func TestGenerateDefaultsCount(t *testing.T) {
	s := newService(t, &fakeProvider{text: "not json"}, DefaultOptions())

	res, err := s.Generate(context.Background(), testcase.RawRequest{
		TestCaseType: "Functional Test Cases",
		ModuleName:   "  Search  ",
		URL:          "https://example.com/search",
	})
	require.NoError(t, err)

	assert.Equal(t, testcase.DefaultCount, res.TotalCount)
	assert.Contains(t, res.TestCases[0].Description, "Search")
	assert.Equal(t, "TC_SEARCH_001", res.TestCases[0].ID)
}
