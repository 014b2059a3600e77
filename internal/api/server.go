// Package api wires the solver endpoints, probes, and metrics into an
// HTTP server with the logging/auth/metrics middleware chain.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/chord/chordgeo/internal/auth"
	"github.com/chord/chordgeo/internal/batch"
	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/health"
	"github.com/chord/chordgeo/internal/httputil"
	"github.com/chord/chordgeo/internal/metrics"
)

// Config holds the API's solver-facing settings.
type Config struct {
	// DefaultEllipsoid is used when a request carries no ellipsoid
	// override. Never nil.
	DefaultEllipsoid *ellipsoid.Ellipsoid

	// TrustProxy enables X-Forwarded-For / X-Real-IP in request logs.
	TrustProxy bool

	// BatchMaxProblems caps the problem count of one batch request.
	BatchMaxProblems int
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a configured HTTP server.
func NewServer(addr string, logger *slog.Logger, authCfg auth.Config, cfg Config, pool *batch.Pool) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /readyz", health.Readyz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/v1/ellipsoids", ellipsoidsHandler())
	mux.HandleFunc("GET /api/v1/inverse", inverseHandler(cfg))
	mux.HandleFunc("GET /api/v1/direct", directHandler(logger, cfg))
	mux.HandleFunc("POST /api/v1/inverse/batch", inverseBatchHandler(logger, cfg, pool))
	mux.HandleFunc("POST /api/v1/direct/batch", directBatchHandler(logger, cfg, pool))

	// Middleware chain: metrics -> logging -> auth -> mux.
	var handler http.Handler = mux
	handler = auth.Middleware(authCfg)(handler)
	handler = loggingMiddleware(logger, cfg.TrustProxy)(handler)
	handler = metrics.Middleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// HTTPServer returns the underlying *http.Server for external control (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// probePath returns true for health/readiness probe paths that should not log at INFO.
func probePath(path string) bool {
	return path == "/healthz" || path == "/readyz"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *slog.Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			duration := time.Since(start)
			level := slog.LevelInfo
			if probePath(r.URL.Path) {
				level = slog.LevelDebug
			}

			logger.Log(r.Context(), level, "request",
				"component", "api",
				"method", r.Method,
				"path", r.URL.Path,
				"status", strconv.Itoa(sr.statusCode),
				"duration_ms", duration.Milliseconds(),
				"remote_ip", httputil.ClientIP(r, trustProxy),
			)
		})
	}
}
