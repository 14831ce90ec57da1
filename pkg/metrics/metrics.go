// Package metrics provides Prometheus instrumentation.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
//
// Then scrape http://localhost:8080/metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chapaquente",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chapaquente",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "chapaquente",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// BoardEvents counts change-feed events applied to the order board.
	BoardEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chapaquente",
			Subsystem: "board",
			Name:      "events_total",
			Help:      "Change-feed events applied to the order board.",
		},
		[]string{"kind"}, // "insert" | "update" | "delete"
	)

	// BoardOrders tracks the number of orders on the board per status.
	BoardOrders = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "chapaquente",
			Subsystem: "board",
			Name:      "orders",
			Help:      "Orders currently held on the board, by status.",
		},
		[]string{"status"},
	)

	// ReceiptsArchived counts receipt archive attempts by result.
	ReceiptsArchived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chapaquente",
			Subsystem: "receipt",
			Name:      "archived_total",
			Help:      "Receipt archive writes, by result.",
		},
		[]string{"result"}, // "ok" | "error" | "dropped"
	)

	// FeedSubscribers tracks live dashboard connections by transport.
	FeedSubscribers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "chapaquente",
			Subsystem: "feed",
			Name:      "subscribers",
			Help:      "Connected live-feed clients, by transport.",
		},
		[]string{"transport"}, // "ws" | "sse"
	)
)

// DefaultRegistry is the Prometheus registry used by the service.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		BoardEvents,
		BoardOrders,
		ReceiptsArchived,
		FeedSubscribers,
	)
}

// MustRegister adds collectors to the service registry; panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware records Prometheus metrics for every request: duration
// histogram, total counter, in-flight gauge.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
// Mount it on GET /metrics in your router.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
