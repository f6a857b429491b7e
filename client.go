package wlsrest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GriffinCanCode/wlsrest/internal/infrastructure/config"
	"github.com/GriffinCanCode/wlsrest/internal/infrastructure/logging"
	"github.com/GriffinCanCode/wlsrest/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/wlsrest/internal/shared/id"
	"github.com/GriffinCanCode/wlsrest/transport"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Version is the library version reported in the User-Agent header.
const Version = "0.1.0"

const (
	// DefaultAPIVersion selects the newest REST interface the server offers.
	DefaultAPIVersion = "latest"
	// DefaultTimeout bounds every request unless a call overrides it.
	DefaultTimeout = 305 * time.Second
)

// Config describes the management server to connect to.
type Config struct {
	// Host is protocol://hostname:port of the admin server.
	Host     string
	Username string
	Password string
	// Version of the REST interface. Defaults to DefaultAPIVersion.
	Version string
	// SkipTLSVerify disables certificate verification.
	SkipTLSVerify bool
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
}

// Option configures a Client.
type Option func(*options)

type options struct {
	doer       transport.Doer
	logger     *zap.Logger
	registerer prometheus.Registerer
	rateLimit  float64
	breaker    bool
}

// WithDoer replaces the default resty transport. Credentials, TLS, rate limit
// and breaker settings are then the Doer's responsibility.
func WithDoer(d transport.Doer) Option {
	return func(o *options) { o.doer = d }
}

// WithLogger sets the logger. Round-trips are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer registers the client metrics with reg. Registering two
// clients with the same registerer panics on the duplicate collectors.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithRateLimit caps requests per second on the default transport.
func WithRateLimit(rps float64) Option {
	return func(o *options) { o.rateLimit = rps }
}

// WithBreaker enables the circuit breaker on the default transport.
func WithBreaker(enabled bool) Option {
	return func(o *options) { o.breaker = enabled }
}

// Client is a session with a WebLogic management server. It is created by
// New, which fetches the root resource, and is immutable afterwards.
type Client struct {
	baseURL   string
	version   string
	isLatest  bool
	lifecycle string
	timeout   time.Duration
	userAgent string

	doer    transport.Doer
	logger  *zap.Logger
	metrics *monitoring.Metrics
	ids     *id.Generator

	links     []*Object
	linkIndex map[string]*Object
}

// New connects to the server and bootstraps the session from
// {Host}/management/weblogic/{Version}.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("wlsrest: host required")
	}
	if cfg.Version == "" {
		cfg.Version = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	c := &Client{
		baseURL:   fmt.Sprintf("%s/management/weblogic/%s", strings.TrimRight(cfg.Host, "/"), cfg.Version),
		timeout:   cfg.Timeout,
		userAgent: transport.UserAgent("wlsrest-go", Version),
		logger:    o.logger,
		metrics:   monitoring.NewMetrics(o.registerer),
		ids:       id.NewGenerator(),
		linkIndex: make(map[string]*Object),
	}

	c.doer = o.doer
	if c.doer == nil {
		c.doer = transport.NewClient(transport.Config{
			Username:      cfg.Username,
			Password:      cfg.Password,
			SkipTLSVerify: cfg.SkipTLSVerify,
			RateLimit:     o.rateLimit,
			Breaker:       o.breaker,
			OnBreakerChange: func(name string, _, to transport.BreakerState) {
				c.metrics.SetBreakerState(name, int(to))
			},
			Logger: o.logger,
		})
	}

	if err := c.bootstrap(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewFromEnv builds a Client from WLS_* and LOG_* environment variables.
// opts are applied after the environment, so they win.
func NewFromEnv(ctx context.Context, opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	logCfg.Level = cfg.Logging.Level
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	base := []Option{
		WithLogger(logger),
		WithRateLimit(cfg.WLS.RateLimit),
		WithBreaker(cfg.WLS.Breaker),
	}

	return New(ctx, Config{
		Host:          cfg.WLS.Host,
		Username:      cfg.WLS.Username,
		Password:      cfg.WLS.Password,
		Version:       cfg.WLS.Version,
		SkipTLSVerify: cfg.WLS.SkipTLSVerify,
		Timeout:       cfg.WLS.Timeout,
	}, append(base, opts...)...)
}

func (c *Client) bootstrap(ctx context.Context) error {
	v, err := c.Get(ctx, c.baseURL, Options{})
	if err != nil {
		return err
	}
	doc, ok := v.(*Document)
	if !ok {
		return fmt.Errorf("%w: root resource is %T, want a JSON object", ErrMalformedDocument, v)
	}

	if c.version, ok = lookupString(doc, "version"); !ok {
		return fmt.Errorf("%w: root resource has no string version", ErrMalformedDocument)
	}
	if c.lifecycle, ok = lookupString(doc, "lifecycle"); !ok {
		return fmt.Errorf("%w: root resource has no string lifecycle", ErrMalformedDocument)
	}
	latest, _ := doc.Lookup("isLatest")
	if c.isLatest, ok = latest.(bool); !ok {
		return fmt.Errorf("%w: root resource has no boolean isLatest", ErrMalformedDocument)
	}

	links, err := doc.Links()
	if err != nil {
		return fmt.Errorf("root resource: %w", err)
	}
	for _, l := range links {
		obj := NewObject(c, l.Rel, l.Href)
		c.links = append(c.links, obj)
		if _, dup := c.linkIndex[l.Rel]; !dup {
			c.linkIndex[l.Rel] = obj
		}
	}

	c.logger.Debug("session established",
		zap.String("base_url", c.baseURL),
		zap.String("version", c.version),
		zap.Bool("is_latest", c.isLatest),
		zap.String("lifecycle", c.lifecycle),
		zap.Int("links", len(c.links)))
	return nil
}

func lookupString(doc *Document, key string) (string, bool) {
	v, ok := doc.Lookup(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ServerVersion returns the server's REST interface version.
func (c *Client) ServerVersion() string { return c.version }

// IsLatest reports whether the selected interface is the newest one.
func (c *Client) IsLatest() bool { return c.isLatest }

// Lifecycle returns the lifecycle of the selected interface, e.g. "active".
func (c *Client) Lifecycle() string { return c.lifecycle }

// Timeout returns the default per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// BaseURL returns the root resource URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Link returns the top-level resource with the given relation, such as
// "edit" or "domainRuntime".
func (c *Client) Link(rel string) (*Object, bool) {
	obj, ok := c.linkIndex[rel]
	return obj, ok
}

// Links returns the top-level resources in document order.
func (c *Client) Links() []*Object {
	out := make([]*Object, len(c.links))
	copy(out, c.links)
	return out
}

// Metrics returns the client metrics snapshot.
func (c *Client) Metrics() monitoring.Snapshot {
	return c.metrics.Snapshot()
}

// Close releases idle connections held by the default transport.
func (c *Client) Close() {
	if tc, ok := c.doer.(*transport.Client); ok {
		tc.CloseIdleConnections()
	}
}

// Get fetches url and returns the decoded body. JSON objects come back as
// *Document and are never turned into an *Object.
func (c *Client) Get(ctx context.Context, url string, opts Options) (any, error) {
	return c.call(ctx, http.MethodGet, url, false, opts)
}

// Post posts to url and returns the interpreted result: an *Object for jobs
// and self-describing resources, nil for an empty body, or the decoded body.
func (c *Client) Post(ctx context.Context, url string, preferAsync bool, opts Options) (any, error) {
	return c.call(ctx, http.MethodPost, url, preferAsync, opts)
}

// Delete deletes url and returns the interpreted result.
func (c *Client) Delete(ctx context.Context, url string, preferAsync bool, opts Options) (any, error) {
	return c.call(ctx, http.MethodDelete, url, preferAsync, opts)
}

func (c *Client) call(ctx context.Context, method, url string, preferAsync bool, opts Options) (any, error) {
	resp, err := c.roundTrip(ctx, method, url, preferAsync, opts)
	if err != nil {
		return nil, err
	}

	result, err := Interpret(c, method, resp.StatusCode, resp.Body)
	if err != nil {
		var wlsErr *Error
		if errors.As(err, &wlsErr) {
			c.metrics.RecordFailure(method, wlsErr.Kind.Error())
		} else {
			c.metrics.RecordFailure(method, "decode")
		}
		return nil, err
	}
	return result, nil
}

// roundTrip sends one request. Transport errors are returned unwrapped.
func (c *Client) roundTrip(ctx context.Context, method, url string, preferAsync bool, opts Options) (*transport.Response, error) {
	body, err := opts.payload()
	if err != nil {
		return nil, fmt.Errorf("encode request payload: %w", err)
	}

	requestID := c.ids.RequestID()
	headers := opts.headers(c.defaultHeaders(requestID, preferAsync))

	req := &transport.Request{
		Method:  method,
		URL:     url,
		Headers: flatten(headers),
		Query:   opts.Query,
		Body:    body,
		Timeout: opts.timeout(c.timeout),
	}

	timer := monitoring.NewTimer(c.metrics, method)
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		duration := timer.Stop(0, len(body), 0)
		c.metrics.RecordFailure(method, failureKind(err))
		c.logger.Debug("request failed",
			zap.String("request_id", requestID.String()),
			zap.String("method", method),
			zap.String("url", url),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, err
	}
	duration := timer.Stop(resp.StatusCode, len(body), len(resp.Body))

	c.logger.Debug("request sent",
		zap.String("request_id", requestID.String()),
		zap.String("method", method),
		zap.String("url", url),
		logging.Headers("request_headers", headers),
		zap.ByteString("request_body", body))
	c.logger.Debug("response received",
		zap.String("request_id", requestID.String()),
		zap.Int("status", resp.StatusCode),
		logging.Headers("response_headers", resp.Header),
		zap.ByteString("response_body", resp.Body),
		zap.Duration("duration", duration))

	return resp, nil
}

func (c *Client) defaultHeaders(requestID id.RequestID, preferAsync bool) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("User-Agent", c.userAgent)
	h.Set("X-Requested-By", c.userAgent)
	h.Set("X-Request-ID", requestID.String())
	if preferAsync {
		h.Set("Prefer", "respond-async")
	}
	return h
}

func flatten(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, transport.ErrCircuitOpen), errors.Is(err, transport.ErrTooManyRequests):
		return "breaker"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
