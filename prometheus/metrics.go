package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds every metric of the running process
	Registry = prometheus.NewRegistry()

	// HTTP request metrics for the echo servers
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Outbound SneakerX API metrics
	APICallsTotal   *prometheus.CounterVec
	APICallDuration *prometheus.HistogramVec

	// List controller outcomes (success, failure, superseded)
	ListQueriesTotal *prometheus.CounterVec

	// Mutation outcomes (success, failure, rejected)
	MutationsTotal *prometheus.CounterVec

	// Session guard decisions (allow, redirect)
	SessionDecisionsTotal *prometheus.CounterVec
)

func init() {
	build("sneakerx_admin")
}

// InitMetrics rebuilds every metric under the given prefix and registers
// them on a fresh Registry. Call it once at startup.
func InitMetrics(prefix string) {
	build(prefix)

	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HttpRequestsTotal,
		HttpRequestDuration,
		APICallsTotal,
		APICallDuration,
		ListQueriesTotal,
		MutationsTotal,
		SessionDecisionsTotal,
	)
}

func build(prefix string) {
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_api_calls_total",
			Help: "Total number of calls to the SneakerX API by status class",
		},
		[]string{"resource", "method", "status_class"},
	)

	APICallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_api_call_duration_seconds",
			Help:    "Duration of calls to the SneakerX API in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)

	ListQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_list_queries_total",
			Help: "Total number of paginated list queries by outcome",
		},
		[]string{"resource", "outcome"},
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_mutations_total",
			Help: "Total number of write operations by outcome",
		},
		[]string{"mutation", "outcome"},
	)

	SessionDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_session_decisions_total",
			Help: "Total number of session guard decisions",
		},
		[]string{"decision"},
	)
}

// StatusClass buckets an HTTP status code. Zero means no response arrived.
func StatusClass(status int) string {
	switch {
	case status == 0:
		return "network"
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "other"
	}
}

// RecordAPICall records one outbound API call
func RecordAPICall(resource, method string, status int, duration time.Duration) {
	APICallsTotal.WithLabelValues(resource, method, StatusClass(status)).Inc()
	APICallDuration.WithLabelValues(resource, method).Observe(duration.Seconds())
}

// RecordListQuery increments the counter for list query outcomes
func RecordListQuery(resource, outcome string) {
	ListQueriesTotal.WithLabelValues(resource, outcome).Inc()
}

// RecordMutation increments the counter for mutation outcomes
func RecordMutation(mutation, outcome string) {
	MutationsTotal.WithLabelValues(mutation, outcome).Inc()
}

// RecordSessionDecision increments the counter for guard decisions
func RecordSessionDecision(decision string) {
	SessionDecisionsTotal.WithLabelValues(decision).Inc()
}

// MetricsMiddleware records request count and latency for every route
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
			HttpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
