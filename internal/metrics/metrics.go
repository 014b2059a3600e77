// Package metrics exposes the service's Prometheus collectors and the
// HTTP middleware that feeds the request-level ones.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chordgeo_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chordgeo_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	solutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chordgeo_solutions_total",
			Help: "Solver invocations by problem kind and outcome.",
		},
		[]string{"problem", "outcome"},
	)

	geodeticIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chordgeo_geodetic_iterations",
			Help:    "Iterations consumed by the Cartesian-to-geodetic refinement.",
			Buckets: []float64{1, 2, 3, 4, 5, 8, 12, 20},
		},
	)

	batchProblems = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chordgeo_batch_problems",
			Help:    "Problems per batch request.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(solutionsTotal)
	prometheus.MustRegister(geodeticIterations)
	prometheus.MustRegister(batchProblems)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveSolution records one solver invocation. problem is "inverse" or
// "direct"; outcome is "ok" or the error class.
func ObserveSolution(problem, outcome string) {
	solutionsTotal.WithLabelValues(problem, outcome).Inc()
}

// ObserveGeodeticIterations records the refinement iterations of one
// successful Cartesian-to-geodetic conversion.
func ObserveGeodeticIterations(n int) {
	geodeticIterations.Observe(float64(n))
}

// ObserveBatchSize records the problem count of one batch request.
func ObserveBatchSize(n int) {
	batchProblems.Observe(float64(n))
}

// knownRoutes are the exact paths served by the API. Anything else is
// collapsed to "other" so scanner traffic cannot inflate label cardinality.
var knownRoutes = map[string]bool{
	"/healthz":              true,
	"/readyz":               true,
	"/metrics":              true,
	"/api/v1/inverse":       true,
	"/api/v1/direct":        true,
	"/api/v1/inverse/batch": true,
	"/api/v1/direct/batch":  true,
	"/api/v1/ellipsoids":    true,
}

func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
