package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/services/booking/application/handlers"
)

// BookingRoutes registers booking endpoints on the provided chi router.
func BookingRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewBookingHandlers(a.ClientSource())
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/stats", h.Stats)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Patch("/{id}/cancel", h.Cancel)
		r.Post("/{id}/confirm", h.Confirm)
	})
}
