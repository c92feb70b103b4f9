// Package api serves a recommender.Service over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/monitor"
	"github.com/yildizm/bookrec/internal/recommender"
)

// Config holds server settings
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// RequestTimeout bounds each call into the service
	RequestTimeout time.Duration
}

// DefaultConfig returns the settings used when none are given
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		RequestTimeout:  10 * time.Second,
	}
}

// Server exposes a recommender.Service as a JSON API
type Server struct {
	router  *chi.Mux
	svc     recommender.Service
	config  Config
	log     *logger.Logger
	metrics *monitor.Collector
}

// New creates a server and registers its routes
func New(svc recommender.Service, cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	s := &Server{
		router:  chi.NewRouter(),
		svc:     svc,
		config:  cfg,
		log:     log,
		metrics: monitor.New(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures middleware and handlers.
//
//	GET /api/health
//	GET /api/models
//	GET /api/books
//	GET /api/users
//	GET /api/popular?k=
//	GET /api/recommendations?user=&model=&books=&k=
//	GET /api/stats
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestLogger(s.log))
	s.router.Use(recordMetrics(s.metrics))

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, recommender.NewError(recommender.KindNotFound, "no route for %s", r.URL.Path))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error:   "method_not_allowed",
			Message: fmt.Sprintf("%s not allowed on %s", r.Method, r.URL.Path),
		})
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/models", s.handleModels)
		r.Get("/books", s.handleBooks)
		r.Get("/users", s.handleUsers)
		r.Get("/popular", s.handlePopular)
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/stats", s.handleStats)
	})
}

// Metrics returns the per-route request metrics
func (s *Server) Metrics() *monitor.Collector {
	return s.metrics
}

// Handler returns the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}
