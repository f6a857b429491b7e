package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/wlsrest/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BreakerState mirrors the circuit breaker state.
type BreakerState = resilience.State

const (
	BreakerClosed   = resilience.StateClosed
	BreakerHalfOpen = resilience.StateHalfOpen
	BreakerOpen     = resilience.StateOpen
)

var (
	// ErrCircuitOpen is returned without contacting the server while the
	// breaker is open.
	ErrCircuitOpen = resilience.ErrCircuitOpen
	// ErrTooManyRequests is returned while the half-open probe is in flight.
	ErrTooManyRequests = resilience.ErrTooManyRequests

	errServerFailure = errors.New("server failure")
)

// Config configures a Client.
type Config struct {
	Username      string
	Password      string
	SkipTLSVerify bool

	// RateLimit caps requests per second. Zero means unlimited.
	RateLimit float64

	// Breaker enables the circuit breaker. Transport errors and 5xx
	// responses count as failures.
	Breaker          bool
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
	OnBreakerChange  func(name string, from, to BreakerState)

	Logger *zap.Logger
}

// Client is the default Doer.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  *zap.Logger
	mu      sync.RWMutex
}

// NewClient creates a Client with a pooled transport and basic auth.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Pooled transport only; retries stay off.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTransport(retryClient.HTTPClient.Transport).
		SetLogger(logger.Sugar()).
		SetRetryCount(0)

	if cfg.SkipTLSVerify {
		restyClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) // #nosec G402 -- opt-in via WLS_SKIP_TLS_VERIFY
	}
	if cfg.Username != "" || cfg.Password != "" {
		restyClient.SetBasicAuth(cfg.Username, cfg.Password)
	}

	c := &Client{
		resty:   restyClient,
		limiter: newLimiter(cfg.RateLimit),
		logger:  logger,
	}

	if cfg.Breaker {
		c.breaker = resilience.New("wls-management", resilience.Settings{
			FailureThreshold: cfg.BreakerThreshold,
			Cooldown:         cfg.BreakerCooldown,
			OnStateChange: func(name string, from, to resilience.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to))
				if cfg.OnBreakerChange != nil {
					cfg.OnBreakerChange(name, from, to)
				}
			},
		})
	}

	return c
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// SetRateLimit replaces the rate limit (requests per second, 0 = unlimited).
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limiter = newLimiter(rps)
}

// BreakerState returns the breaker state, or BreakerClosed when disabled.
func (c *Client) BreakerState() BreakerState {
	if c.breaker == nil {
		return BreakerClosed
	}
	return c.breaker.State()
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.resty.GetClient().CloseIdleConnections()
}

// Do performs a single round-trip. Errors raised before a response arrives
// (DNS, connection, TLS, timeout, cancellation) are returned as-is so callers
// can match them with errors.Is.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	r := c.resty.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetQueryParams(req.Query)
	if req.Body != nil {
		if !hasHeader(req.Headers, "Content-Type") {
			r.SetHeader("Content-Type", "application/json")
		}
		r.SetBody(req.Body)
	}

	resp, err := c.execute(func() (*resty.Response, error) {
		return r.Execute(req.Method, req.URL)
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

func (c *Client) execute(fn func() (*resty.Response, error)) (*resty.Response, error) {
	if c.breaker == nil {
		return fn()
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, errServerFailure
		}
		return resp, nil
	})

	if errors.Is(err, errServerFailure) {
		return result.(*resty.Response), nil
	}
	if err != nil {
		return nil, err
	}
	return result.(*resty.Response), nil
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return true
		}
	}
	return false
}

// UserAgent builds the User-Agent header value for a client name and version.
func UserAgent(name, version string) string {
	return fmt.Sprintf("%s/%s (go-resty/%s)", name, version, resty.Version)
}
