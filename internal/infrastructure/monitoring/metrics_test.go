package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordRequest("GET", 200, 20*time.Millisecond, 0, 512)
	m.RecordRequest("GET", 200, 30*time.Millisecond, 0, 128)
	m.RecordRequest("POST", 404, 10*time.Millisecond, 16, 64)
	m.RecordRequest("DELETE", 0, time.Second, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("DELETE", "none")))

	snap := m.Snapshot()
	assert.Equal(t, int64(4), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.TotalErrors)
	assert.InDelta(t, 1.06, snap.TotalDuration, 0.0001)
}

func TestRecordFailureAndBreakerState(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordFailure("GET", "transport")
	m.RecordFailure("GET", "transport")
	m.SetBreakerState("wls", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Failures.WithLabelValues("GET", "transport")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("wls")))
}

func TestSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

func TestNilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		m := NewMetrics(nil)
		m.RecordRequest("GET", 200, time.Millisecond, 0, 0)
	})
}

func TestTimer(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	timer := NewTimer(m, "POST")
	d := timer.Stop(201, 10, 20)

	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "201")))

	assert.NotPanics(t, func() { NewTimer(nil, "GET").Stop(200, 0, 0) })
}
