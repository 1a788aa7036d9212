package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	_ "github.com/venue-master/admin-console/docs/swagger"
	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/cache"
	"github.com/venue-master/admin-console/pkg/config"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/pkg/events"
	"github.com/venue-master/admin-console/pkg/httpx"
	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/session"
	"github.com/venue-master/admin-console/pkg/telemetry"
	"github.com/venue-master/admin-console/pkg/tokenstore"
	authApi "github.com/venue-master/admin-console/services/auth/application/api"
	"github.com/venue-master/admin-console/services/auth/application/subscribers"
	bookingApi "github.com/venue-master/admin-console/services/booking/application/api"
	dashboardApi "github.com/venue-master/admin-console/services/dashboard/application/api"
	facilityApi "github.com/venue-master/admin-console/services/facility/application/api"
	userApi "github.com/venue-master/admin-console/services/user/application/api"
	venueApi "github.com/venue-master/admin-console/services/venue/application/api"
)

const sessionSweepInterval = time.Minute

// @title					Venue Admin Console API
// @version				1.0
// @description			Backend for the venue booking admin console. Every call is made on behalf of the signed-in operator of the console session cookie.
// @contact.name			Platform Team
// @contact.email			platform@venue-master.io
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:3000
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	if cfg.Environment == config.EnvDevelopment {
		figure.NewFigure(cfg.ServiceName, "cybermedium", true).Print()
		fmt.Println()
	}

	// Telemetry: OTel tracing + metrics
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := auth.NewSessionStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.Environment == config.EnvProduction,
		cfg.SessionTTL,
	)
	log.Info("session store initialized", "backend", "redis")

	resolver := endpoints.FromConfig(cfg)
	upstreamHTTP := apiclient.NewHTTPClient(cfg.UpstreamTimeout)
	factory := session.NewFactory(session.Config{
		Resolver:       resolver,
		HTTPClient:     upstreamHTTP,
		Logger:         log,
		Publisher:      eventBus,
		MeterProvider:  otel.GetMeterProvider(),
		RefreshTimeout: cfg.RefreshTimeout,
	}, func(id string) tokenstore.Store {
		return tokenstore.NewRedis(redisClient, id, sessionStore.MaxAge())
	})
	sessions := session.NewManager(factory, cfg.SessionIdleTimeout, log)
	go sessions.Run(ctx, sessionSweepInterval)

	if err := subscribers.Register(ctx, eventBus, sessions, log); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	appConfig := &app.Application{
		Config:       cfg,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		Endpoints:    resolver,
		SessionStore: sessionStore,
		Sessions:     sessions,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.LivenessHandler())
	r.Get("/ready", httpx.HealthHandler(httpx.HealthChecks{
		Redis:     redisClient,
		EventBus:  eventBus,
		Upstreams: upstreamProbes(resolver, upstreamHTTP),
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.LoadSession(sessionStore, sessions, log))
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.ListenAddr(), r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	authApi.AuthRoutes(r, a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin(a.Logger))
		r.Use(auth.RequireAdmin(a.Logger))

		dashboardApi.DashboardRoutes(r, a)
		venueApi.VenueRoutes(r, a)
		facilityApi.FacilityRoutes(r, a)
		bookingApi.BookingRoutes(r, a)
		userApi.UserRoutes(r, a)
	})
}

// upstreamProbes returns one readiness probe per upstream service.
func upstreamProbes(resolver endpoints.Resolver, client *http.Client) map[string]httpx.HealthChecker {
	probes := make(map[string]httpx.HealthChecker)
	for _, svc := range endpoints.Services() {
		probes[string(svc)] = httpx.URLProbe{URL: resolver.BaseURL(svc) + "/healthz", Client: client}
	}
	return probes
}
