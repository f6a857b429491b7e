package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for management API round-trips.
type Metrics struct {
	// Round-trip metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Failure metrics
	Failures *prometheus.CounterVec

	// Resilience metrics
	BreakerState *prometheus.GaugeVec

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current totals for callers that do not scrape Prometheus.
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration float64 // sum of all round-trip durations in seconds
}

// NewMetrics registers the client collectors with reg. A nil registerer
// yields working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wlsrest_requests_total",
				Help: "Total number of management API requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wlsrest_request_duration_seconds",
				Help:    "Management API round-trip duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"method"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wlsrest_request_size_bytes",
				Help:    "Request body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wlsrest_response_size_bytes",
				Help:    "Response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method"},
		),
		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wlsrest_failures_total",
				Help: "Total number of failed round-trips by kind",
			},
			[]string{"method", "kind"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wlsrest_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
	}
}

// RecordRequest records a completed round-trip. status is 0 when no
// response was received.
func (m *Metrics) RecordRequest(method string, status int, duration time.Duration, reqSize, respSize int) {
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}

	m.RequestsTotal.WithLabelValues(method, label).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status == 0 || status >= 400 {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordFailure records a failed round-trip. kind is "transport", "breaker",
// or the classified server error.
func (m *Metrics) RecordFailure(method, kind string) {
	m.Failures.WithLabelValues(method, kind).Inc()
}

// SetBreakerState publishes the breaker state as a gauge value.
func (m *Metrics) SetBreakerState(name string, state int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}

// Snapshot returns the current totals.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
