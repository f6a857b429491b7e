// Package transport performs the HTTP round-trips for a management session.
//
// A Client wraps resty over a pooled go-retryablehttp transport with basic
// authentication, optional TLS verification bypass, an optional rate limit and
// an optional circuit breaker. It never retries: every Request is one
// round-trip, and anything that fails before a response arrives is returned
// to the caller unchanged.
package transport

import (
	"context"
	"net/http"
	"time"
)

// Request is a single management API call.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
	// Body is sent verbatim with Content-Type application/json when non-nil.
	Body    []byte
	Timeout time.Duration
}

// Response is the raw outcome of a round-trip that reached the server.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer performs round-trips. *Client implements it; tests substitute fakes.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}
