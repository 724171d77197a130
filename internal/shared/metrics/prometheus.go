package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Triage metrics
	assessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_assessments_total",
			Help: "Total number of symptom assessments by risk category and confidence",
		},
		[]string{"category", "confidence"},
	)

	emergenciesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_emergencies_detected_total",
			Help: "Total number of emergencies detected",
		},
		[]string{"protocol", "trigger", "fallback"},
	)

	conditionsMatched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_conditions_matched",
			Help:    "Number of possible conditions returned per assessment",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		},
	)

	// Assistant metrics
	assistantReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_replies_total",
			Help: "Total number of assistant replies by source",
		},
		[]string{"source", "language"},
	)

	generatorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generator_failures_total",
			Help: "Total number of generative model failures that fell back to rule-based replies",
		},
		[]string{"reason"},
	)

	generatorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_generator_duration_seconds",
			Help:    "Generative model call duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// Persistence and event metrics
	historyWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_writes_total",
			Help: "Total number of diagnostic history writes",
		},
		[]string{"status"},
	)

	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"type", "status"},
	)

	// Database metrics
	dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// routePattern labels a request by its chi route template so that session
// and entity IDs do not explode label cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	if len(r.URL.Path) > 100 {
		return "/api/..."
	}
	return "unmatched"
}

// --- Business metric helpers ---

// RecordAssessment records a completed assessment
func RecordAssessment(category, confidence string, conditions int) {
	assessmentsTotal.WithLabelValues(category, confidence).Inc()
	conditionsMatched.Observe(float64(conditions))
}

// RecordEmergency records a detected emergency
func RecordEmergency(protocol, trigger string, fallback bool) {
	emergenciesDetected.WithLabelValues(protocol, trigger, strconv.FormatBool(fallback)).Inc()
}

// RecordAssistantReply records an assistant reply by source (emergency,
// generative, rule_based)
func RecordAssistantReply(source, language string) {
	assistantReplies.WithLabelValues(source, language).Inc()
}

// RecordGeneratorFailure records a failed generative call
func RecordGeneratorFailure(reason string) {
	generatorFailures.WithLabelValues(reason).Inc()
}

// RecordGeneratorCall records a generative call duration
func RecordGeneratorCall(duration time.Duration) {
	generatorDuration.Observe(duration.Seconds())
}

// RecordRateLimited records a rejected request
func RecordRateLimited() {
	rateLimitedTotal.Inc()
}

// RecordHistoryWrite records a history write outcome
func RecordHistoryWrite(ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	historyWrites.WithLabelValues(status).Inc()
}

// RecordEventPublished records a domain event publish outcome
func RecordEventPublished(eventType string, ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	eventsPublished.WithLabelValues(eventType, status).Inc()
}

// RecordDBConnections records active database connections
func RecordDBConnections(count int) {
	dbConnectionsActive.Set(float64(count))
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
