package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/services/facility/application/handlers"
)

// FacilityRoutes registers facility endpoints on the provided chi router.
func FacilityRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewFacilityHandlers(a.ClientSource())
	r.Route("/facilities", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/schedule", h.Schedule)
	})
}
