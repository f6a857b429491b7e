/*
Package monitoring provides Prometheus metrics for management API round-trips.

# Metrics

  - wlsrest_requests_total{method,status}
  - wlsrest_request_duration_seconds{method}
  - wlsrest_request_size_bytes{method} and wlsrest_response_size_bytes{method}
  - wlsrest_failures_total{method,kind}
  - wlsrest_breaker_state{name}

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	timer := monitoring.NewTimer(metrics, "GET")
	// ... perform round-trip ...
	timer.Stop(resp.StatusCode, len(reqBody), len(resp.Body))

Collectors are registered with the registerer handed to NewMetrics. Pass a
fresh prometheus.NewRegistry() per client in tests to avoid duplicate
registration panics.
*/
package monitoring
