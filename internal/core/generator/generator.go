package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/manustarter/manustarter/internal/core/testcase"
	"github.com/manustarter/manustarter/internal/infra/logger"
	"github.com/manustarter/manustarter/internal/llm/common"
)

// ServiceError wraps a failure of the generative-text service call.
// It is never masked by fallback generation.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("AI service error: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Options are the sampling parameters sent with every prompt
type Options struct {
	Temperature      float64
	MaxTokens        int
	StructuredOutput bool
}

// DefaultOptions match the production sampling settings
func DefaultOptions() Options {
	return Options{Temperature: 0.3, MaxTokens: 4000}
}

// Result is a generated collection plus bookkeeping for logs and the CLI
type Result struct {
	*testcase.Collection
	Tier      testcase.Tier      `json:"-"`
	Parsed    int                `json:"-"`
	Generated int                `json:"-"`
	Model     string             `json:"-"`
	Usage     *common.TokenUsage `json:"-"`
}

// Service turns caller requests into exact-count test case collections.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	provider common.Provider
	opts     Options
	schema   json.RawMessage
}

// New creates a Service around an already-built provider handle
func New(provider common.Provider, opts Options) (*Service, error) {
	s := &Service{provider: provider, opts: opts}
	if opts.StructuredOutput {
		schema, err := testcase.SchemaJSON()
		if err != nil {
			return nil, err
		}
		s.schema = schema
	}
	return s, nil
}

// Generate validates raw, asks the provider for test cases and reconciles the
// parsed output to the requested count. Validation failures return
// *testcase.ValidationError before any provider call; provider failures return
// *ServiceError.
func (s *Service) Generate(ctx context.Context, raw testcase.RawRequest) (*Result, error) {
	req, err := testcase.Validate(raw)
	if err != nil {
		return nil, err
	}
	return s.GenerateValidated(ctx, req)
}

// GenerateValidated runs the pipeline for an already validated request
func (s *Service) GenerateValidated(ctx context.Context, req testcase.Request) (*Result, error) {
	start := time.Now()

	completion, err := s.provider.Complete(ctx, common.CompletionRequest{
		System:         testcase.SystemPrompt,
		Prompt:         testcase.BuildPrompt(req),
		Temperature:    s.opts.Temperature,
		MaxTokens:      s.opts.MaxTokens,
		ResponseSchema: s.schema,
		SchemaName:     testcase.SchemaName,
	})
	if err != nil {
		logger.Error("Completion failed",
			logger.String("provider", s.provider.Name()),
			logger.Err(err))
		return nil, &ServiceError{Provider: s.provider.Name(), Err: err}
	}

	parsed := testcase.ParseCompletionTier(completion.Text, req)
	if parsed.Tier == testcase.TierNone {
		logger.Warn("Completion could not be parsed, using fallback test cases",
			logger.Int("completion_length", len(completion.Text)),
			logger.String("category", string(req.Category())))
	}

	collection := testcase.Reconcile(parsed.Cases, req)

	kept := min(len(parsed.Cases), req.Count())
	result := &Result{
		Collection: collection,
		Tier:       parsed.Tier,
		Parsed:     len(parsed.Cases),
		Generated:  req.Count() - kept,
		Model:      completion.Model,
		Usage:      completion.TokenUsage,
	}

	logger.Info("Generated test cases",
		logger.String("provider", s.provider.Name()),
		logger.String("model", completion.Model),
		logger.String("category", string(req.Category())),
		logger.String("module", req.ModuleName()),
		logger.String("parse_tier", string(parsed.Tier)),
		logger.Int("requested", req.Count()),
		logger.Int("parsed", result.Parsed),
		logger.Int("fallback", result.Generated),
		logger.Duration("elapsed", time.Since(start)))

	return result, nil
}
