package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mattjoyce/skydispatch/internal/dispatch"
	"github.com/mattjoyce/skydispatch/internal/metrics"
	"github.com/mattjoyce/skydispatch/internal/signature"
)

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Verifier   Verifier
	Dispatcher Dispatcher
	Stores     ReadyReporter
	Metrics    metrics.Recorder
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
}

// Server represents the webhook HTTP server.
type Server struct {
	config  Config
	deps    Deps
	logger  *slog.Logger
	server  *http.Server
	started time.Time
	now     func() time.Time
}

// New creates a new webhook server instance.
func New(config Config, deps Deps, logger *slog.Logger) *Server {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Noop{}
	}
	return &Server{
		config:  config,
		deps:    deps,
		logger:  logger,
		started: time.Now(),
		now:     time.Now,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Start starts the webhook HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook server starting", "listen", s.config.Listen, "max_body_size", s.config.MaxBodySize)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleBanner)
	r.Post("/", s.handleInteraction)
	r.Get("/healthz", s.handleHealth)
	if s.deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.MetricsHandler)
	}

	return r
}

// loggingMiddleware logs HTTP requests (excludes sensitive payloads).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func (s *Server) handleBanner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, bannerText)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	ready := s.deps.Stores != nil && s.deps.Stores.Ready()
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		StoreReady:    ready,
		UptimeSeconds: int64(s.now().Sub(s.started).Seconds()),
	})
}

// handleInteraction authenticates and dispatches one interaction callback.
func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))

	body, err := io.ReadAll(io.LimitReader(r.Body, s.config.MaxBodySize+1))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, errReadBodyFailed)
		return
	}
	if int64(len(body)) > s.config.MaxBodySize {
		s.respondError(w, http.StatusRequestEntityTooLarge, errPayloadTooBig)
		return
	}

	sig := r.Header.Get(signature.HeaderSignature)
	ts := r.Header.Get(signature.HeaderTimestamp)
	ok, err := s.deps.Verifier.Verify(body, sig, ts)
	if err != nil {
		s.deps.Metrics.IncVerificationFailure(reasonFault)
		logger.Error("signature verification fault", "error", err)
		s.respondError(w, http.StatusInternalServerError, errVerifierFault)
		return
	}
	if !ok {
		reason := reasonBadSignature
		if sig == "" || ts == "" {
			reason = reasonMissingHeaders
		}
		s.deps.Metrics.IncVerificationFailure(reason)
		logger.Warn("rejecting unverified interaction", "reason", reason)
		s.respondError(w, http.StatusUnauthorized, errInvalidSig)
		return
	}

	resp, err := s.deps.Dispatcher.Dispatch(r.Context(), body)
	if err != nil {
		if !errors.Is(err, dispatch.ErrUnrecognized) {
			logger.Error("dispatch failed", "error", err)
		}
		s.respondError(w, http.StatusBadRequest, errUnknownType)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// respondError sends a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
