package wlsrest

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

// Options are per-call transport options. They are merged over the client's
// defaults; on conflict the caller wins.
type Options struct {
	// Headers override the default headers key by key.
	Headers map[string]string
	Query   map[string]string
	// JSON is encoded as the request payload.
	JSON any
	// Body is sent verbatim and takes precedence over JSON.
	Body []byte
	// Timeout overrides the client timeout when positive.
	Timeout time.Duration
}

func (o Options) payload() ([]byte, error) {
	if o.Body != nil {
		return o.Body, nil
	}
	if o.JSON == nil {
		return nil, nil
	}
	return sonic.Marshal(o.JSON)
}

func (o Options) timeout(fallback time.Duration) time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return fallback
}

func (o Options) headers(defaults http.Header) http.Header {
	h := defaults.Clone()
	for k, v := range o.Headers {
		h.Set(k, v)
	}
	return h
}
