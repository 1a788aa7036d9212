// Package apiclient is the authenticated HTTP client shared by every
// console facade. It attaches the stored bearer token to each request and
// recovers from a 401 by refreshing the token once (single-flight across all
// concurrent callers) and replaying the request once.
//
// A Client is scoped to one session: it owns the token store it reads from
// and the refresh coordinator guarding that store. Build one per session.
package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/tokenstore"
)

const (
	// RefreshPath is the auth service refresh endpoint.
	RefreshPath = "/v1/auth/refresh"

	defaultTimeout        = 15 * time.Second
	defaultRefreshTimeout = 10 * time.Second
	maxResponseBytes      = 10 << 20 // 10 MB
)

// AuthExpiredHook is called once per teardown, after the store is cleared.
// No caller receives AuthExpired before the hook has returned.
type AuthExpiredHook func(ctx context.Context, cause error)

// Doer is the part of Client the domain facades depend on.
type Doer interface {
	DoJSON(ctx context.Context, req Request, out any) error
}

// roundTrip is one stage of the send path. Stages are composed in New.
type roundTrip func(ctx context.Context, a attempt) (*Response, error)

// Client is safe for concurrent use.
type Client struct {
	resolver endpoints.Resolver
	store    tokenstore.Store
	http     *http.Client
	log      logger.Logger
	onExpire AuthExpiredHook
	coord    *coordinator
	metrics  *metrics
	send     roundTrip

	// expireMu serialises teardowns so no caller returns AuthExpired
	// before the hook of the teardown that cleared the store has run.
	expireMu sync.Mutex
}

type options struct {
	httpClient     *http.Client
	log            logger.Logger
	refresher      Refresher
	onExpire       AuthExpiredHook
	meterProvider  metric.MeterProvider
	refreshTimeout time.Duration
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRefresher replaces the built-in POST /v1/auth/refresh exchange.
func WithRefresher(r Refresher) Option {
	return func(o *options) { o.refresher = r }
}

// WithAuthExpiredHook registers the callback run after a teardown.
func WithAuthExpiredHook(h AuthExpiredHook) Option {
	return func(o *options) { o.onExpire = h }
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithRefreshTimeout bounds a single refresh exchange.
func WithRefreshTimeout(d time.Duration) Option {
	return func(o *options) { o.refreshTimeout = d }
}

// NewHTTPClient returns the default upstream client: otelhttp transport and
// the given overall timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// New returns a Client for the session whose credentials live in store.
func New(resolver endpoints.Resolver, store tokenstore.Store, opts ...Option) *Client {
	o := options{refreshTimeout: defaultRefreshTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = NewHTTPClient(defaultTimeout)
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	c := &Client{
		resolver: resolver,
		store:    store,
		http:     o.httpClient,
		log:      o.log,
		onExpire: o.onExpire,
		metrics:  newMetrics(o.meterProvider),
	}
	refresher := o.refresher
	if refresher == nil {
		refresher = c.exchangeRefreshToken
	}
	c.coord = &coordinator{
		store:   store,
		refresh: refresher,
		timeout: o.refreshTimeout,
		log:     o.log,
		metrics: c.metrics,
	}
	c.send = c.checkStatus(c.authenticate(c.transport))
	return c
}

// Store returns the token store this client reads from.
func (c *Client) Store() tokenstore.Store {
	return c.store
}

// Resolver returns the endpoint resolver.
func (c *Client) Resolver() endpoints.Resolver {
	return c.resolver
}

// Do sends req and returns the 2xx response. Other outcomes are returned as
// *NetworkError, *HTTPError, *ValidationError or *AuthExpiredError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	a, err := newAttempt(&req, c.resolver)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, a)
}

// DoJSON sends req and decodes the response body into out (which may be nil).
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// transport performs the HTTP exchange. Any status is a successful round trip.
func (c *Client) transport(ctx context.Context, a attempt) (*Response, error) {
	hr, err := a.httpRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(hr)
	if err != nil {
		return nil, &NetworkError{Method: a.method(), URL: a.url, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Method: a.method(), URL: a.url, Err: fmt.Errorf("read body: %w", err)}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// checkStatus turns every non-2xx response into a typed error.
func (c *Client) checkStatus(next roundTrip) roundTrip {
	return func(ctx context.Context, a attempt) (*Response, error) {
		resp, err := next(ctx, a)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, statusError(a.method(), a.url, resp)
		}
		return resp, nil
	}
}

// authenticate attaches the bearer token and handles 401:
//
//   - attempt 0 answered 401: refresh (or join the refresh in flight), then
//     replay once as attempt 1 with the new token.
//   - the token changed while attempt 0 was in flight: replay without a refresh.
//   - the refresh fails, or attempt 1 is answered 401: clear the store and
//     return *AuthExpiredError.
func (c *Client) authenticate(next roundTrip) roundTrip {
	var send roundTrip
	send = func(ctx context.Context, a attempt) (*Response, error) {
		if a.req.Anonymous {
			return next(ctx, a)
		}

		if err := c.coord.wait(ctx); err != nil {
			return nil, &NetworkError{Method: a.method(), URL: a.url, Err: err}
		}
		token, _, err := c.store.Get(ctx, tokenstore.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("read access token: %w", err)
		}
		a = a.withToken(token)

		resp, err := next(ctx, a)
		if err != nil || resp.StatusCode != http.StatusUnauthorized {
			return resp, err
		}

		if a.replayed() {
			return nil, c.expire(ctx, a, statusError(a.method(), a.url, resp))
		}

		res, err := c.coord.do(ctx, token)
		if err != nil {
			if isContextErr(ctx, err) {
				return nil, &NetworkError{Method: a.method(), URL: a.url, Err: err}
			}
			return nil, c.expire(ctx, a, err)
		}
		c.metrics.replayed(ctx, res.reused)
		return send(ctx, a.replay())
	}
	return send
}

// expire tears the session down and builds the terminal error.
func (c *Client) expire(ctx context.Context, a attempt, cause error) error {
	ctx = context.WithoutCancel(ctx)
	expired := &AuthExpiredError{Cause: cause}

	c.expireMu.Lock()
	defer c.expireMu.Unlock()

	cleared, err := c.coord.teardown(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "apiclient: failed to clear credentials", "error", err)
	}
	if !cleared {
		return expired
	}
	if c.onExpire != nil {
		c.onExpire(ctx, expired)
	}

	c.metrics.authExpired(ctx)
	c.log.WarnContext(ctx, "apiclient: session expired",
		"method", a.method(),
		"path", a.req.Path,
		"attempt", a.n,
		"error", cause,
	)
	return expired
}

// exchangeRefreshToken is the default Refresher. It bypasses authenticate so
// a 401 from the refresh endpoint cannot recurse.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (Tokens, error) {
	var tokens Tokens
	err := c.DoJSON(ctx, Request{
		Method:    http.MethodPost,
		Service:   endpoints.Auth,
		Path:      RefreshPath,
		Body:      map[string]string{"refreshToken": refreshToken},
		Anonymous: true,
	}, &tokens)
	return tokens, err
}
