package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

type client struct {
	restyClient       *resty.Client
	poller            *Poller
	logger            zerolog.Logger
	baseURL           string
	timeout           time.Duration
	userAgent         string
	headers           map[string]string
	pollInterval      time.Duration
	processingTimeout time.Duration
	metrics           *Metrics
	limiter           *rate.Limiter
	breaker           *gobreaker.Settings
}

var _ Client = (*client)(nil)

type Option func(*client)

func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithAuthToken sends a static bearer token with every request.
func WithAuthToken(token string) Option {
	return func(c *client) {
		if token != "" {
			c.headers["Authorization"] = "Bearer " + token
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *client) {
		c.headers[key] = value
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured API client.
// NewClient configures it in place: base URL, default headers, JSON codecs, logger
// and request hooks are set on the given client, so it must not be shared with
// another NewClient call. Poll requests never use its retry settings.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

// WithPollInterval sets the sleep between two poll attempts.
func WithPollInterval(interval time.Duration) Option {
	return func(c *client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithProcessingTimeout customizes the maximum wait time of the convenience
// methods that block on long-running operations.
func WithProcessingTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.processingTimeout = timeout
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *client) {
		c.logger = logger
	}
}

// WithMetrics records polling metrics, registering the collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *client) {
		c.metrics = NewMetrics(reg)
	}
}

// WithRateLimit limits outgoing requests to rps per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCircuitBreaker replaces the circuit breaker guarding poll requests.
// A nil settings disables it. The breaker is shared by every future of the client:
// once it opens, polling of all URIs fails fast until it half-opens again.
func WithCircuitBreaker(settings *gobreaker.Settings) Option {
	return func(c *client) {
		c.breaker = settings
	}
}

func NewClient(opts ...Option) Client {
	c := &client{
		logger:            zerolog.Nop(),
		baseURL:           DefaultBaseURL,
		userAgent:         DefaultUserAgent,
		headers:           make(map[string]string),
		pollInterval:      DefaultPollInterval,
		processingTimeout: ProcessingTimeout,
	}
	c.breaker = defaultBreakerSettings(c)

	for _, opt := range opts {
		opt(c)
	}

	if c.restyClient == nil {
		c.restyClient = newDefaultAPIClient()
	}
	c.configureRestyClient()

	c.poller = NewPoller(c.restyClient.Clone().SetRetryCount(0), c.pollInterval)
	c.poller.logger = c.logger
	c.poller.metrics = c.metrics
	if c.breaker != nil {
		c.poller.breaker = gobreaker.NewCircuitBreaker[*resty.Response](*c.breaker)
	}

	return c
}

// Name returns the service name.
func (c *client) Name() string {
	return ServiceName
}

// Version returns the API version.
func (c *client) Version() string {
	return APIVersion
}

// Poller returns the poller used by the client's futures.
func (c *client) Poller() *Poller {
	return c.poller
}

func (c *client) configureRestyClient() {
	if c.baseURL != "" {
		c.restyClient.SetBaseURL(c.baseURL)
	}
	if c.timeout > 0 {
		c.restyClient.SetTimeout(c.timeout)
	}
	c.restyClient.
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Accept", "application/json").
		SetHeaders(c.headers).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetLogger(newRestyLogger(c.logger))

	c.restyClient.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(RequestIDHeader) == "" {
			r.SetHeader(RequestIDHeader, uuid.NewString())
		}
		return nil
	})

	if limiter := c.limiter; limiter != nil {
		c.restyClient.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			return limiter.Wait(r.Context())
		})
	}
}

// newDefaultAPIClient does not retry: submissions are not idempotent and poll
// failures are reported to the handler on the first attempt.
func newDefaultAPIClient() *resty.Client {
	return resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json")
}
