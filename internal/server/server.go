// Package server exposes the discovery pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"bookscout/internal/config"
	"bookscout/internal/discovery"
	"bookscout/internal/logging"
	"bookscout/internal/services"
)

// Pipeline is the discovery surface the server depends on.
type Pipeline interface {
	Search(ctx context.Context, rawQuery, userID string) (discovery.SearchResult, error)
}

// HealthChecker reports readiness of a downstream dependency.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server serves the search and health endpoints.
type Server struct {
	bind        string
	logger      *slog.Logger
	pipeline    Pipeline
	health      []HealthChecker
	development bool

	listener net.Listener
	server   *http.Server
}

// SearchRequest is the POST /api/search body.
type SearchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"userId"`
}

// New constructs the server. health checkers are optional.
func New(cfg *config.Config, pipeline Pipeline, logger *slog.Logger, health ...HealthChecker) (*Server, error) {
	if cfg == nil || pipeline == nil {
		return nil, errors.New("configuration and pipeline are required")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address is not configured")
	}

	srv := &Server{
		bind:        bind,
		logger:      logger,
		pipeline:    pipeline,
		health:      health,
		development: cfg.Server.Development,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", srv.handleSearch)
	mux.HandleFunc("/api/healthz", srv.handleHealth)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start listens and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// A programmer error anywhere below becomes one generic failure; it
	// must never take the server down.
	defer func() {
		if recovered := recover(); recovered != nil {
			s.log().Error("search handler panic", logging.Any("panic", recovered))
			s.writeInternalError(w, fmt.Errorf("panic: %v", recovered))
		}
	}()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.pipeline.Search(r.Context(), req.Query, req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			s.writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		s.log().Error("search failed", logging.Error(err))
		s.writeInternalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	for _, checker := range s.health {
		if err := checker.HealthCheck(r.Context()); err != nil {
			s.log().Warn("health check failed", logging.Error(err))
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validationMessage strips the internal wrapping down to the user-facing
// reason.
func validationMessage(err error) string {
	message := err.Error()
	if idx := strings.LastIndex(message, ": "); idx >= 0 {
		message = message[idx+2:]
	}
	return message
}

// writeInternalError hides failure detail unless development mode is on.
func (s *Server) writeInternalError(w http.ResponseWriter, err error) {
	payload := map[string]string{"error": "internal server error"}
	if s.development && err != nil {
		payload["message"] = err.Error()
	}
	s.writeJSON(w, http.StatusInternalServerError, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
