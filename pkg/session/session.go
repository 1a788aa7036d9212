// Package session holds the signed-in operator state of one console session:
// the cached profile, the authenticated client bound to the session's token
// store, and the login/register/logout transitions.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/metric"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/tokenstore"
	"github.com/venue-master/admin-console/services/auth/domain/events"
	"github.com/venue-master/admin-console/services/auth/domain/models"
	authremote "github.com/venue-master/admin-console/services/auth/infrastructure/remote"
)

// Reasons carried by session events.
const (
	ReasonLogin    = "login"
	ReasonRegister = "register"
	ReasonLogout   = "logout"
)

// Publisher receives session lifecycle events.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, v any) error
}

// Config describes one session. Store is required; everything else has a default.
type Config struct {
	ID             string
	Store          tokenstore.Store
	Resolver       endpoints.Resolver
	HTTPClient     *http.Client
	Logger         logger.Logger
	Publisher      Publisher
	MeterProvider  metric.MeterProvider
	RefreshTimeout time.Duration
}

// Status is the externally visible session state.
type Status struct {
	Authenticated        bool                `json:"authenticated"`
	Admin                bool                `json:"admin"`
	User                 *models.UserProfile `json:"user,omitempty"`
	AccessTokenExpiresAt *time.Time          `json:"accessTokenExpiresAt,omitempty"`
} // @name SessionStatus

// Context is the state of one signed-in (or signed-out) operator.
// It is safe for concurrent use.
type Context struct {
	id     string
	store  tokenstore.Store
	client *apiclient.Client
	auth   *authremote.AuthFacade
	pub    Publisher
	log    logger.Logger

	mu            sync.RWMutex
	authenticated bool
	user          *models.UserProfile
}

// New builds a Context and loads its state from cfg.Store.
func New(ctx context.Context, cfg Config) (*Context, error) {
	if cfg.Store == nil {
		return nil, errors.New("session: token store is required")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.ID != "" {
		log = log.With("session_id", cfg.ID)
	}

	s := &Context{
		id:    cfg.ID,
		store: cfg.Store,
		pub:   cfg.Publisher,
		log:   log,
	}

	opts := []apiclient.Option{
		apiclient.WithLogger(log),
		apiclient.WithAuthExpiredHook(s.onAuthExpired),
		apiclient.WithRefresher(func(ctx context.Context, refreshToken string) (apiclient.Tokens, error) {
			return s.auth.Refresh(ctx, refreshToken)
		}),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.MeterProvider != nil {
		opts = append(opts, apiclient.WithMeterProvider(cfg.MeterProvider))
	}
	if cfg.RefreshTimeout > 0 {
		opts = append(opts, apiclient.WithRefreshTimeout(cfg.RefreshTimeout))
	}
	s.client = apiclient.New(cfg.Resolver, cfg.Store, opts...)
	s.auth = authremote.NewAuthFacade(s.client)

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// load seeds the cached state from the token store. An unreadable profile is
// treated as absent.
func (s *Context) load(ctx context.Context) error {
	token, ok, err := s.store.Get(ctx, tokenstore.AccessToken)
	if err != nil {
		return fmt.Errorf("session: load access token: %w", err)
	}
	raw, hasUser, err := s.store.Get(ctx, tokenstore.User)
	if err != nil {
		return fmt.Errorf("session: load profile: %w", err)
	}

	var user *models.UserProfile
	if hasUser && raw != "" {
		var p models.UserProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			s.log.WarnContext(ctx, "session: ignoring unreadable stored profile", "error", err)
		} else {
			user = &p
		}
	}

	s.mu.Lock()
	s.authenticated = ok && token != ""
	s.user = user
	s.mu.Unlock()
	return nil
}

// ID returns the console session id.
func (s *Context) ID() string { return s.id }

// Client returns the session's authenticated client.
func (s *Context) Client() *apiclient.Client { return s.client }

// Store returns the session's token store.
func (s *Context) Store() tokenstore.Store { return s.store }

// Login signs the operator in and persists the issued credentials.
func (s *Context) Login(ctx context.Context, creds models.Credentials) (*models.UserProfile, error) {
	res, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, res, ReasonLogin)
}

// Register creates an account and signs it in.
func (s *Context) Register(ctx context.Context, reg models.Registration) (*models.UserProfile, error) {
	res, err := s.auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, res, ReasonRegister)
}

func (s *Context) signIn(ctx context.Context, res *models.AuthResult, reason string) (*models.UserProfile, error) {
	if res.AccessToken == "" {
		return nil, fmt.Errorf("session: %s: %w", reason, apiclient.ErrEmptyAccessToken)
	}
	profile, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("session: encode profile: %w", err)
	}

	values := map[tokenstore.Key]string{
		tokenstore.AccessToken: res.AccessToken,
		tokenstore.User:        string(profile),
	}
	if res.RefreshToken != "" {
		values[tokenstore.RefreshToken] = res.RefreshToken
	} else if err := s.store.Clear(ctx, tokenstore.RefreshToken); err != nil {
		return nil, fmt.Errorf("session: clear stale refresh token: %w", err)
	}
	if err := tokenstore.SetAll(ctx, s.store, values); err != nil {
		return nil, fmt.Errorf("session: persist credentials: %w", err)
	}

	user := res.User
	s.mu.Lock()
	s.authenticated = true
	s.user = &user
	s.mu.Unlock()

	s.log.InfoContext(ctx, "session: signed in", "user_id", user.ID, "reason", reason)
	s.publish(ctx, events.TopicSessionLoggedIn, &user, reason)

	out := user
	return &out, nil
}

// Logout clears the stored credentials and the cached state.
func (s *Context) Logout(ctx context.Context) error {
	user := s.reset()
	if err := tokenstore.ClearAll(ctx, s.store); err != nil {
		return fmt.Errorf("session: clear credentials: %w", err)
	}
	s.log.InfoContext(ctx, "session: signed out")
	s.publish(ctx, events.TopicSessionLoggedOut, user, ReasonLogout)
	return nil
}

// onAuthExpired runs after the client has already cleared the store.
func (s *Context) onAuthExpired(ctx context.Context, cause error) {
	user := s.reset()
	reason := apiclient.ErrAuthExpired.Error()
	if cause != nil {
		reason = cause.Error()
	}
	s.publish(ctx, events.TopicSessionExpired, user, reason)
}

// reset clears the cached state and returns the profile that was signed in.
func (s *Context) reset() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.user
	s.authenticated = false
	s.user = nil
	return user
}

func (s *Context) publish(ctx context.Context, topic string, user *models.UserProfile, reason string) {
	if s.pub == nil {
		return
	}
	var userID, email string
	if user != nil {
		userID, email = user.ID, user.Email
	}
	evt := events.NewSessionEvent(s.id, userID, email, reason)
	if err := s.pub.PublishJSON(context.WithoutCancel(ctx), topic, evt); err != nil {
		s.log.WarnContext(ctx, "session: failed to publish event", "topic", topic, "error", err)
	}
}

// CurrentUser returns a copy of the signed-in profile.
func (s *Context) CurrentUser() (*models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// IsAuthenticated reports whether an access token is held.
func (s *Context) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// IsAdmin reports whether the signed-in operator holds an admin role.
func (s *Context) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated && s.user != nil && s.user.IsAdmin()
}

// Status reports the session state. The expiry is read from the stored
// access token's exp claim when the token is a JWT.
func (s *Context) Status(ctx context.Context) (Status, error) {
	user, _ := s.CurrentUser()
	st := Status{
		Authenticated: s.IsAuthenticated(),
		Admin:         s.IsAdmin(),
		User:          user,
	}
	if !st.Authenticated {
		st.User = nil
		return st, nil
	}

	token, ok, err := s.store.Get(ctx, tokenstore.AccessToken)
	if err != nil {
		return Status{}, fmt.Errorf("session: read access token: %w", err)
	}
	if ok {
		st.AccessTokenExpiresAt = tokenExpiry(token)
	}
	return st, nil
}

// tokenExpiry returns the exp claim of a JWT without verifying it. The
// console never holds the signing key; the upstream services verify.
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time.UTC()
	return &t
}
