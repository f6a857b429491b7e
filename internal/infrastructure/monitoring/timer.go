package monitoring

import "time"

// Timer measures a single round-trip.
type Timer struct {
	start   time.Time
	metrics *Metrics
	method  string
}

// NewTimer starts timing a round-trip. A nil metrics makes Stop a no-op.
func NewTimer(metrics *Metrics, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		method:  method,
	}
}

// Stop records the round-trip and returns its duration.
func (t *Timer) Stop(status, reqSize, respSize int) time.Duration {
	duration := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.RecordRequest(t.method, status, duration, reqSize, respSize)
	}
	return duration
}
