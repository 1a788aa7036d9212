package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/errhttp"
	"github.com/venue-master/admin-console/pkg/httpx"
	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/session"
	pkgvalidator "github.com/venue-master/admin-console/pkg/validator"
	"github.com/venue-master/admin-console/services/auth/domain/models"
)

// AuthHandlers drives the sign-in state of the request's console session.
type AuthHandlers struct {
	cookies  sessions.Store
	sessions *session.Manager
	log      logger.Logger
}

// NewAuthHandlers returns AuthHandlers. cookies and sessions must be the same
// instances LoadSession was built with.
func NewAuthHandlers(cookies sessions.Store, mgr *session.Manager, log logger.Logger) *AuthHandlers {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuthHandlers{cookies: cookies, sessions: mgr, log: log}
}

// Login signs the operator in.
//
//	@Summary	Sign in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.Credentials	true	"Credentials"
//	@Success	200		{object}	session.Status
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := pkgvalidator.ValidateRequest[models.Credentials](w, r)
	if !ok {
		return
	}
	s, err := auth.SessionFromCtx(r.Context())
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	if _, err := s.Login(r.Context(), *creds); err != nil {
		h.log.InfoContext(r.Context(), "sign in failed", "email", creds.Email, "error", err)
		errhttp.Respond(w, r, err)
		return
	}
	h.writeStatus(w, r, s, http.StatusOK)
}

// Register creates an account and signs it in.
//
//	@Summary	Register
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.Registration	true	"Account"
//	@Success	201		{object}	session.Status
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	reg, ok := pkgvalidator.ValidateRequest[models.Registration](w, r)
	if !ok {
		return
	}
	s, err := auth.SessionFromCtx(r.Context())
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	if _, err := s.Register(r.Context(), *reg); err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	h.writeStatus(w, r, s, http.StatusCreated)
}

// Logout clears the session credentials and expires the cookie.
//
//	@Summary	Sign out
//	@Tags		auth
//	@Success	204
//	@Router		/auth/logout [post]
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	s, err := auth.SessionFromCtx(r.Context())
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	if err := s.Logout(r.Context()); err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	h.sessions.Forget(s.ID())
	if err := auth.EndSession(h.cookies, w, r); err != nil {
		h.log.WarnContext(r.Context(), "failed to expire session cookie", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the sign-in state.
//
//	@Summary	Session status
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	session.Status
//	@Router		/auth/session [get]
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	s, err := auth.SessionFromCtx(r.Context())
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	h.writeStatus(w, r, s, http.StatusOK)
}

func (h *AuthHandlers) writeStatus(w http.ResponseWriter, r *http.Request, s *session.Context, code int) {
	st, err := s.Status(r.Context())
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, code, st)
}
