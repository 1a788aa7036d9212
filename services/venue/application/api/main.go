package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/services/venue/application/handlers"
)

// VenueRoutes registers venue endpoints on the provided chi router.
func VenueRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewVenueHandlers(a.ClientSource())
	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
