package app

import (
	"github.com/gorilla/sessions"

	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/cache"
	"github.com/venue-master/admin-console/pkg/config"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/pkg/events"
	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/session"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "confirming booking", "booking_id", id)
//	app.Logger.ErrorContext(ctx, "upstream call failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Endpoints    endpoints.Resolver
	SessionStore sessions.Store   // Redis-backed cookie store carrying the console session id
	Sessions     *session.Manager // console session id → session.Context
	// Clients yields the authenticated upstream client of a request. Routes
	// default to auth.SessionClient when nil.
	Clients auth.ClientSource
}

// ClientSource returns a.Clients, or auth.SessionClient when unset.
func (a *Application) ClientSource() auth.ClientSource {
	if a.Clients != nil {
		return a.Clients
	}
	return auth.SessionClient
}
