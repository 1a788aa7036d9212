package apiclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/tokenstore"
)

const refreshKey = "refresh"

// Tokens is the outcome of a refresh exchange. RefreshToken is empty when
// the auth service does not rotate refresh tokens.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Refresher exchanges a refresh token for new tokens.
type Refresher func(ctx context.Context, refreshToken string) (Tokens, error)

// coordinator runs at most one refresh at a time. Every caller that asks
// while a refresh is outstanding joins it and receives the same outcome.
//
// States: idle (pending == nil) and refreshing (pending != nil). pending is
// closed when the outstanding refresh settles, releasing callers parked in wait.
type coordinator struct {
	group   singleflight.Group
	mu      sync.Mutex
	pending chan struct{}
	// failed remembers the last window that failed, keyed by the access
	// token it tried to replace, so late arrivals from that window share its
	// outcome instead of exchanging again.
	failed struct {
		token string
		err   error
	}

	store   tokenstore.Store
	refresh Refresher
	timeout time.Duration
	log     logger.Logger
	metrics *metrics
}

// wait blocks while a refresh is outstanding.
func (c *coordinator) wait(ctx context.Context) error {
	c.mu.Lock()
	ch := c.pending
	c.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refreshOutcome is shared by every caller of one refresh window. reused is
// set when the window produced no exchange because the stored token had
// already moved past the one that was rejected.
type refreshOutcome struct {
	token  string
	reused bool
}

// do starts a refresh or joins the outstanding one and returns the access
// token to replay with. rejected is the token the caller's request was
// answered 401 with. The exchange itself runs detached from ctx so a caller
// giving up cannot fail the refresh for everyone else; ctx only bounds how
// long this caller waits.
func (c *coordinator) do(ctx context.Context, rejected string) (refreshOutcome, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(refreshKey, func() (any, error) {
		return c.run(detached, rejected)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return refreshOutcome{}, res.Err
		}
		return res.Val.(refreshOutcome), nil
	case <-ctx.Done():
		return refreshOutcome{}, ctx.Err()
	}
}

func (c *coordinator) run(ctx context.Context, rejected string) (refreshOutcome, error) {
	current, _, err := c.store.Get(ctx, tokenstore.AccessToken)
	if err != nil {
		return refreshOutcome{}, fmt.Errorf("read access token: %w", err)
	}
	if current != "" && current != rejected {
		return refreshOutcome{token: current, reused: true}, nil
	}
	if err := c.failedFor(current); err != nil {
		return refreshOutcome{}, err
	}

	release := c.begin()
	defer release()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	refreshToken, ok, err := c.store.Get(ctx, tokenstore.RefreshToken)
	if err != nil {
		return refreshOutcome{}, fmt.Errorf("read refresh token: %w", err)
	}
	if !ok || refreshToken == "" {
		c.metrics.refreshed(ctx, "missing")
		return refreshOutcome{}, ErrNoRefreshToken
	}

	c.log.DebugContext(ctx, "apiclient: refreshing access token")
	tokens, err := c.refresh(ctx, refreshToken)
	if err == nil && tokens.AccessToken == "" {
		err = ErrEmptyAccessToken
	}
	if err != nil {
		c.metrics.refreshed(ctx, "failure")
		c.log.WarnContext(ctx, "apiclient: token refresh failed", "error", err)
		err = fmt.Errorf("refresh: %w", err)
		c.setFailed(current, err)
		return refreshOutcome{}, err
	}

	values := map[tokenstore.Key]string{tokenstore.AccessToken: tokens.AccessToken}
	if tokens.RefreshToken != "" && tokens.RefreshToken != refreshToken {
		values[tokenstore.RefreshToken] = tokens.RefreshToken
	}
	if err := tokenstore.SetAll(ctx, c.store, values); err != nil {
		c.metrics.refreshed(ctx, "failure")
		return refreshOutcome{}, fmt.Errorf("store refreshed tokens: %w", err)
	}

	c.metrics.refreshed(ctx, "success")
	c.log.DebugContext(ctx, "apiclient: access token refreshed", "rotated", len(values) > 1)
	return refreshOutcome{token: tokens.AccessToken}, nil
}

func (c *coordinator) failedFor(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" || c.failed.token != token {
		return nil
	}
	return c.failed.err
}

func (c *coordinator) setFailed(token string, err error) {
	c.mu.Lock()
	c.failed.token, c.failed.err = token, err
	c.mu.Unlock()
}

func (c *coordinator) begin() func() {
	c.mu.Lock()
	ch := make(chan struct{})
	c.pending = ch
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.pending = nil
		c.mu.Unlock()
		close(ch)
	}
}

// teardown clears the credential group. It reports whether anything was
// present so concurrent failures of one refresh window notify only once.
func (c *coordinator) teardown(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	present := false
	for _, k := range tokenstore.Keys {
		_, ok, err := c.store.Get(ctx, k)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", k, err)
		}
		present = present || ok
	}
	if !present {
		return false, nil
	}
	if err := tokenstore.ClearAll(ctx, c.store); err != nil {
		return false, err
	}
	return true, nil
}

// isContextErr reports whether err is the caller's own cancellation rather
// than an outcome of the refresh.
func isContextErr(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
