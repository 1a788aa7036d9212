package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/venue-master/admin-console/pkg/httpx"
	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/session"
)

const sessionName = "venue_admin_session"
const sessionIDKey = "console_session_id"

// LoadSession is a chi middleware that resolves the console session of the
// request. It reads the session cookie, issuing a fresh console session id
// when the cookie is missing or invalid, and injects the matching
// session.Context into the request context.
//
// After this middleware, handlers can safely call auth.SessionFromCtx(r.Context()).
func LoadSession(store sessions.Store, mgr *session.Manager, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
			}
			if cookie == nil {
				httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
				return
			}

			id, _ := cookie.Values[sessionIDKey].(string)
			if _, perr := uuid.Parse(id); perr != nil {
				id = uuid.NewString()
				cookie.Values[sessionIDKey] = id
				if err := cookie.Save(r, w); err != nil {
					log.ErrorContext(r.Context(), "failed to save session cookie", "error", err)
					httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
					return
				}
			}

			s, err := mgr.Get(r.Context(), id)
			if err != nil {
				log.ErrorContext(r.Context(), "failed to load console session", "session_id", id, "error", err)
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"error": "session unavailable"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// RequireLogin returns 401 unless the console session holds an access token.
func RequireLogin(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := SessionFromCtx(r.Context())
			if err != nil || !s.IsAuthenticated() {
				log.DebugContext(r.Context(), "rejecting unauthenticated request", "path", r.URL.Path)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns 403 unless the signed-in operator holds an admin role.
// Mount it after RequireLogin.
func RequireAdmin(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := SessionFromCtx(r.Context())
			if err != nil || !s.IsAdmin() {
				log.WarnContext(r.Context(), "rejecting non-admin request", "path", r.URL.Path)
				httpx.JSON(w, http.StatusForbidden, map[string]string{"error": "administrator role required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EndSession expires the session cookie. The next request starts a new
// console session.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	cookie, err := store.Get(r, sessionName)
	if err != nil && cookie == nil {
		return err
	}
	cookie.Options.MaxAge = -1
	return cookie.Save(r, w)
}
