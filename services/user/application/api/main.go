package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/services/user/application/handlers"
)

// UserRoutes registers user endpoints on the provided chi router.
func UserRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewUserHandlers(a.ClientSource())
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/me", h.Me)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/roles", h.UpdateRoles)
		r.Patch("/{id}/activate", h.Activate)
		r.Patch("/{id}/deactivate", h.Deactivate)
	})
}
