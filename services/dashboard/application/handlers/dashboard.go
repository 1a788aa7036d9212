package handlers

import (
	"net/http"

	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/errhttp"
	"github.com/venue-master/admin-console/pkg/httpx"
	appsvcs "github.com/venue-master/admin-console/services/dashboard/application/services"
)

// DashboardHandler serves the overview counts.
type DashboardHandler struct {
	clients auth.ClientSource
}

func NewDashboardHandler(clients auth.ClientSource) *DashboardHandler {
	return &DashboardHandler{clients: clients}
}

// Execute returns venue, facility, booking and user counts.
//
//	@Summary	Dashboard summary
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	models.Summary
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	502	{object}	httpx.ErrorResponse
//	@Router		/dashboard [get]
func (h *DashboardHandler) Execute(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients(r)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	summary, err := appsvcs.Summarize(r.Context(), client)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
