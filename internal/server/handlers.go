package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/manustarter/manustarter/internal/core/generator"
	"github.com/manustarter/manustarter/internal/core/testcase"
	"github.com/manustarter/manustarter/internal/infra/logger"
)

type errorResponse struct {
	Detail any `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", logger.Err(err))
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": serviceName + " API",
		"version": apiVersion,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Test endpoint working",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := testcase.SchemaJSON()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(schema)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}

	req, err := testcase.DecodeRequest(body)
	if err != nil {
		var verr *testcase.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: verr.Fields})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body: " + err.Error()})
		return
	}

	ctx := r.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	res, err := s.gen.GenerateValidated(ctx, req)
	if err != nil {
		s.writeGenerateError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Collection)
}

func (s *Server) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	var serr *generator.ServiceError

	switch {
	case errors.As(err, &serr):
		logger.Error("Generation failed", logger.String("request_id", RequestIDFrom(r.Context())), logger.Err(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: serr.Error()})
	default:
		logger.Error("Generation failed", logger.String("request_id", RequestIDFrom(r.Context())), logger.Err(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Error generating test cases: " + err.Error()})
	}
}
