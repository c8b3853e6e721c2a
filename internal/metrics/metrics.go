package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Acquisition metrics
	pagesFetched    *prometheus.CounterVec
	recordsDropped  *prometheus.CounterVec
	loopTerminated  *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	recordsReturned prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Acquisition metrics
	r.pagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinlens_pages_fetched_total",
			Help: "Total number of upstream pages fetched",
		},
		[]string{"data_type"},
	)
	r.recordsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinlens_records_dropped_total",
			Help: "Total number of records dropped for missing or non-numeric timestamps",
		},
		[]string{"data_type"},
	)
	r.loopTerminated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinlens_fetch_terminations_total",
			Help: "Window fetch loop terminations by reason",
		},
		[]string{"data_type", "reason"},
	)
	r.fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coinlens_fetch_duration_seconds",
			Help:    "Whole-window fetch duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
	r.recordsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coinlens_records_returned",
			Help:    "Number of records in assembled responses",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	reg.MustRegister(r.pagesFetched)
	reg.MustRegister(r.recordsDropped)
	reg.MustRegister(r.loopTerminated)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.recordsReturned)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordPage records one fetched upstream page. Nil-safe so the fetch
// engine can run without a registry (CLI one-shot mode, tests).
func (r *Registry) RecordPage(dataType string) {
	if r == nil {
		return
	}
	r.pagesFetched.WithLabelValues(dataType).Inc()
}

// RecordDropped records n records dropped during accumulation.
func (r *Registry) RecordDropped(dataType string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.recordsDropped.WithLabelValues(dataType).Add(float64(n))
}

// RecordTermination records a loop termination reason.
func (r *Registry) RecordTermination(dataType, reason string) {
	if r == nil {
		return
	}
	r.loopTerminated.WithLabelValues(dataType, reason).Inc()
}

// RecordFetch records a completed window fetch.
func (r *Registry) RecordFetch(duration float64, records int) {
	if r == nil {
		return
	}
	r.fetchDuration.Observe(duration)
	r.recordsReturned.Observe(float64(records))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
