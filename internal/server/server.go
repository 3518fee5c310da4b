package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/manustarter/manustarter/internal/core/generator"
	"github.com/manustarter/manustarter/internal/core/testcase"
	"github.com/manustarter/manustarter/internal/infra/logger"

	"golang.org/x/sync/errgroup"
)

const (
	serviceName    = "Manual Testing AI Agent"
	apiVersion     = "1.0.0"
	maxBodyBytes   = 1 << 20
	shutdownPeriod = 10 * time.Second
)

// Generator produces test case collections from validated requests
type Generator interface {
	GenerateValidated(ctx context.Context, req testcase.Request) (*generator.Result, error)
}

// Options configures the HTTP listener and middleware
type Options struct {
	Addr           string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	RequestTimeout time.Duration
}

// Server exposes the generator over HTTP
type Server struct {
	gen  Generator
	opts Options
}

// New creates a Server
func New(gen Generator, opts Options) *Server {
	return &Server{gen: gen, opts: opts}
}

// Handler returns the routed handler wrapped in middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /test", s.handleTest)
	mux.HandleFunc("GET /schema", s.handleSchema)
	mux.HandleFunc("POST /generate-test-cases", s.handleGenerate)

	var h http.Handler = mux
	h = recoverer(h)
	h = corsHandler(s.opts, h)
	h = accessLog(h)
	h = requestID(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", logger.String("addr", s.opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
		defer cancel()
		logger.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
