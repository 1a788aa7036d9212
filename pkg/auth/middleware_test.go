package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"

	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/session"
	"github.com/venue-master/admin-console/pkg/tokenstore"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// newTestManager returns a Manager whose sessions keep credentials in memory,
// one store per session id.
func newTestManager() (*session.Manager, map[string]tokenstore.Store) {
	stores := map[string]tokenstore.Store{}
	factory := session.NewFactory(session.Config{}, func(id string) tokenstore.Store {
		if s, ok := stores[id]; ok {
			return s
		}
		s := tokenstore.NewMemory()
		stores[id] = s
		return s
	})
	return session.NewManager(factory, time.Hour, nil), stores
}

// requestWithSession builds an *http.Request that carries a valid session
// cookie containing the given console session id.
func requestWithSession(t *testing.T, store sessions.Store, id string) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/venues", nil)

	sess, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestLoadSession_ExistingCookie(t *testing.T) {
	store := newTestStore()
	mgr, _ := newTestManager()
	const id = "5b0f3c1e-6f43-4b8e-9d0a-6f4f3c2e1a00"

	var captured *session.Context
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = SessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	LoadSession(store, mgr, logger.NewNop())(next).ServeHTTP(w, requestWithSession(t, store, id))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured == nil || captured.ID() != id {
		t.Fatalf("expected session %s in context, got %v", id, captured)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for an existing session")
	}
}

func TestLoadSession_MissingCookieIssuesNewSession(t *testing.T) {
	store := newTestStore()
	mgr, _ := newTestManager()

	var first string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromCtx(r.Context())
		first = s.ID()
	})

	w := httptest.NewRecorder()
	LoadSession(store, mgr, logger.NewNop())(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionName {
		t.Fatalf("expected one %s cookie, got %v", sessionName, cookies)
	}
	if first == "" {
		t.Fatal("expected a console session id")
	}

	// Replaying the issued cookie resolves the same console session.
	var second string
	next = func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromCtx(r.Context())
		second = s.ID()
	}
	r := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	r.AddCookie(cookies[0])
	LoadSession(store, mgr, logger.NewNop())(next).ServeHTTP(httptest.NewRecorder(), r)
	if second != first {
		t.Fatalf("expected session %s, got %s", first, second)
	}
}

func TestLoadSession_InvalidIDIsReplaced(t *testing.T) {
	store := newTestStore()
	mgr, _ := newTestManager()

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromCtx(r.Context())
		got = s.ID()
	})

	w := httptest.NewRecorder()
	LoadSession(store, mgr, logger.NewNop())(next).ServeHTTP(w, requestWithSession(t, store, "not-a-valid-uuid"))

	if got == "" || got == "not-a-valid-uuid" {
		t.Fatalf("expected a fresh session id, got %q", got)
	}
	if len(w.Result().Cookies()) != 1 {
		t.Fatal("expected the replacement id to be written to the cookie")
	}
}

func TestLoadSession_ManagerFailure(t *testing.T) {
	store := newTestStore()
	mgr := session.NewManager(func(context.Context, string) (*session.Context, error) {
		return nil, errors.New("redis down")
	}, time.Hour, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	w := httptest.NewRecorder()
	LoadSession(store, mgr, logger.NewNop())(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/venues", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

// seedSession stores values for id and returns the session loaded from them.
func seedSession(t *testing.T, mgr *session.Manager, stores map[string]tokenstore.Store, id string, values map[tokenstore.Key]string) *session.Context {
	t.Helper()
	ctx := context.Background()
	if _, err := mgr.Get(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := tokenstore.SetAll(ctx, stores[id], values); err != nil {
		t.Fatal(err)
	}
	mgr.Forget(id)
	s, err := mgr.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRequireLogin(t *testing.T) {
	mgr, stores := newTestManager()
	signedIn := seedSession(t, mgr, stores, "signed-in", map[tokenstore.Key]string{tokenstore.AccessToken: "acc-1"})
	anonymous := seedSession(t, mgr, stores, "anonymous", nil)

	tests := []struct {
		name string
		sess *session.Context
		want int
	}{
		{"no session", nil, http.StatusUnauthorized},
		{"signed out", anonymous, http.StatusUnauthorized},
		{"signed in", signedIn, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			r := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
			if tt.sess != nil {
				r = r.WithContext(WithSession(r.Context(), tt.sess))
			}
			w := httptest.NewRecorder()
			RequireLogin(logger.NewNop())(next).ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	mgr, stores := newTestManager()
	admin := seedSession(t, mgr, stores, "admin", map[tokenstore.Key]string{
		tokenstore.AccessToken: "acc",
		tokenstore.User:        `{"id":"u-1","roles":["SUPER_ADMIN"]}`,
	})
	player := seedSession(t, mgr, stores, "player", map[tokenstore.Key]string{
		tokenstore.AccessToken: "acc",
		tokenstore.User:        `{"id":"u-2","roles":["USER"]}`,
	})

	for name, tc := range map[string]struct {
		sess *session.Context
		want int
	}{
		"admin":  {admin, http.StatusOK},
		"player": {player, http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			r := httptest.NewRequest(http.MethodDelete, "/api/venues/v1", nil)
			r = r.WithContext(WithSession(r.Context(), tc.sess))
			w := httptest.NewRecorder()
			RequireAdmin(logger.NewNop())(next).ServeHTTP(w, r)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestEndSession_ExpiresCookie(t *testing.T) {
	store := newTestStore()
	r := requestWithSession(t, store, "5b0f3c1e-6f43-4b8e-9d0a-6f4f3c2e1a00")
	w := httptest.NewRecorder()

	if err := EndSession(store, w, r); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expired cookie, got %v", cookies)
	}
}
