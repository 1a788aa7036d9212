package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/services/dashboard/application/handlers"
)

// DashboardRoutes registers the dashboard endpoint on the provided chi router.
func DashboardRoutes(r chi.Router, a *app.Application) {
	r.Get("/dashboard", handlers.NewDashboardHandler(a.ClientSource()).Execute)
}
