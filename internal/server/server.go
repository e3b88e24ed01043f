// Package server provides the HTTP API for parsing and scoring resumes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/db"
	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/ranking"
	"github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/server/ratelimit"
)

const (
	maxBodyBytes    = 2 << 20
	shutdownTimeout = 30 * time.Second
)

// JobStore looks up stored job requirements. *db.DB satisfies it.
type JobStore interface {
	GetJobRequirement(ctx context.Context, id uuid.UUID) (*db.JobRecord, error)
}

// Config holds server configuration
type Config struct {
	Port      int
	RateLimit float64
	Burst     int
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	parser      *parsing.Parser
	scorer      *ranking.Scorer
	jobs        JobStore
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	logger      *zap.Logger
}

// New creates a server. jobs may be nil, in which case requests naming a job_id are rejected.
func New(cfg Config, parser *parsing.Parser, jobs JobStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parser == nil {
		parser = parsing.NewParser(parsing.WithLogger(logger))
	}

	s := &Server{
		parser:      parser,
		scorer:      ranking.NewScorer(nil),
		jobs:        jobs,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig(cfg.RateLimit, cfg.Burst)),
		validate:    validator.New(),
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /evaluate", s.handleEvaluate)

	handler := s.withRateLimit(mux)
	handler = middleware.Recover(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withRateLimit rejects clients that exceed their request budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retry := max(int(info.RetryAfter.Round(time.Second)/time.Second), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.logger.Warn("rate limit exceeded",
				zap.String("request_id", middleware.GetRequestID(r.Context())),
				zap.String("client", extractClientID(r)))
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the remote IP. Forwarded headers are not trusted.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
