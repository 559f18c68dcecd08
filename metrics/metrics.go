package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "drivefund"

// Recorder exposes dashboard and HTTP metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	reportLatency *prometheus.HistogramVec
	reportsTotal  *prometheus.CounterVec
	queryLatency  *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New creates a recorder with Go runtime and process collectors attached.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		reportLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analytics",
				Name:      "report_duration_seconds",
				Help:      "Time to build a dashboard report",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"range"},
		),
		reportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analytics",
				Name:      "reports_total",
				Help:      "Dashboard reports by range and outcome",
			},
			[]string{"range", "outcome"},
		),
		queryLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analytics",
				Name:      "query_duration_seconds",
				Help:      "Latency of individual dashboard reads",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"query"},
		),
		queryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analytics",
				Name:      "query_errors_total",
				Help:      "Failed dashboard reads",
			},
			[]string{"query"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method", "class"},
		),
	}
}

// ObserveReport records one dashboard build.
func (r *Recorder) ObserveReport(rangeTag string, duration time.Duration, err error) {
	r.reportLatency.WithLabelValues(rangeTag).Observe(duration.Seconds())
	r.reportsTotal.WithLabelValues(rangeTag, outcome(err)).Inc()
}

// ObserveQuery records one store read within a report.
func (r *Recorder) ObserveQuery(query string, duration time.Duration, err error) {
	r.queryLatency.WithLabelValues(query).Observe(duration.Seconds())
	if err != nil {
		r.queryErrors.WithLabelValues(query).Inc()
	}
}

// ObserveHTTP records a served request. route should be the templated path.
func (r *Recorder) ObserveHTTP(route, method string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method, statusClass(status)).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
