package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/services/auth/application/handlers"
)

// AuthRoutes registers the sign-in endpoints. They need a console session in
// the request context but no signed-in operator, so mount them after
// auth.LoadSession and outside auth.RequireLogin.
func AuthRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewAuthHandlers(a.SessionStore, a.Sessions, a.Logger)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.Session)
	})
}
