package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/session"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const sessionKey contextKey = "console_session"

// ErrSessionNotFound is returned when no console session exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrSessionNotFound = errors.New("console session not found in context")

// SessionFromCtx extracts the console session attached by LoadSession.
func SessionFromCtx(ctx context.Context) (*session.Context, error) {
	s, ok := ctx.Value(sessionKey).(*session.Context)
	if !ok || s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// WithSession returns a new context with the given console session attached.
func WithSession(ctx context.Context, s *session.Context) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// ClientSource yields the authenticated client for a request.
type ClientSource func(r *http.Request) (apiclient.Doer, error)

// SessionClient is the ClientSource used in production: the client of the
// request's console session.
func SessionClient(r *http.Request) (apiclient.Doer, error) {
	s, err := SessionFromCtx(r.Context())
	if err != nil {
		return nil, err
	}
	return s.Client(), nil
}
