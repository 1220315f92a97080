// Package server exposes the plan compiler as a small HTTP service:
// a JSON compile endpoint, a health/status endpoint and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/convplan/internal/logging"
	"github.com/agbru/convplan/internal/metrics"
)

// tracerName identifies this instrumentation scope to OpenTelemetry.
const tracerName = "github.com/agbru/convplan/internal/server"

// Config holds the server parameters.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Security is the hardening configuration; zero value means defaults.
	Security SecurityConfig
	// ReadTimeout and WriteTimeout bound request processing.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP compile service.
type Server struct {
	httpServer *http.Server
	log        logging.Logger
	metrics    *Metrics
	security   SecurityConfig
	runtime    *metrics.RuntimeCollector
	tracer     trace.Tracer
}

// New creates a Server with its routes and middleware wired.
func New(cfg Config, log logging.Logger) *Server {
	if cfg.Security.MaxInputLen == 0 {
		cfg.Security = DefaultSecurityConfig()
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	s := &Server{
		log:      log,
		metrics:  NewMetrics(),
		security: cfg.Security,
		runtime:  metrics.NewRuntimeCollector(),
		tracer:   otel.Tracer(tracerName),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/plan", s.wrap(s.handlePlan))
	mux.HandleFunc("/healthz", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.metrics.WritePrometheus)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// wrap applies the middleware chain to a handler.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(next))
}

// metricsMiddleware tracks in-flight and completed requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.CountRequest(r.URL.Path, rec.status)
	}
}

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("compile service listening", logging.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down compile service")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
