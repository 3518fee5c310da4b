package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/manustarter/manustarter/internal/infra/logger"

	"github.com/google/uuid"
	"github.com/rs/cors"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestIDFrom returns the request id stored by the requestID middleware
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		logger.Info("HTTP request",
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rec.status),
			logger.Int("bytes", rec.bytes),
			logger.Duration("elapsed", time.Since(start)))
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rv := recover(); rv != nil {
				if rv == http.ErrAbortHandler {
					panic(rv)
				}
				logger.Error("Handler panic",
					logger.String("request_id", RequestIDFrom(r.Context())),
					logger.String("panic", fmt.Sprint(rv)))
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Detail: fmt.Sprintf("Error generating test cases: %v", rv),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func corsHandler(opts Options, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   opts.AllowedMethods,
		AllowedHeaders:   opts.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           600,
	})
	h := c.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
		if preflight && r.Header.Get("Origin") != "" && !c.OriginAllowed(r) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Disallowed CORS origin"})
			return
		}
		h.ServeHTTP(w, r)
	})
}
