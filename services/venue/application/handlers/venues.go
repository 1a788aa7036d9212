package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/errhttp"
	"github.com/venue-master/admin-console/pkg/httpx"
	pkgvalidator "github.com/venue-master/admin-console/pkg/validator"
	"github.com/venue-master/admin-console/services/venue/domain/models"
	"github.com/venue-master/admin-console/services/venue/infrastructure/remote"
)

// VenueHandlers serves the venue screens.
type VenueHandlers struct {
	clients auth.ClientSource
}

// NewVenueHandlers returns VenueHandlers resolving upstream clients via clients.
func NewVenueHandlers(clients auth.ClientSource) *VenueHandlers {
	return &VenueHandlers{clients: clients}
}

func (h *VenueHandlers) facade(w http.ResponseWriter, r *http.Request) (*remote.VenueFacade, bool) {
	client, err := h.clients(r)
	if err != nil {
		errhttp.Respond(w, r, err)
		return nil, false
	}
	return remote.NewVenueFacade(client), true
}

// List returns venues.
//
//	@Summary	List venues
//	@Tags		venues
//	@Produce	json
//	@Param		limit	query		int	false	"Page size"
//	@Param		offset	query		int	false	"Page offset"
//	@Success	200		{array}		models.Venue
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Router		/venues [get]
func (h *VenueHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Page(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	venues, err := f.List(r.Context(), models.ListParams{Limit: limit, Offset: offset})
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSONList(w, http.StatusOK, venues)
}

// Get returns one venue.
//
//	@Summary	Get venue
//	@Tags		venues
//	@Produce	json
//	@Param		id	path		string	true	"Venue ID"
//	@Success	200	{object}	models.Venue
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/venues/{id} [get]
func (h *VenueHandlers) Get(w http.ResponseWriter, r *http.Request) {
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	venue, err := f.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, venue)
}

// Create adds a venue.
//
//	@Summary	Create venue
//	@Tags		venues
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.VenueInput	true	"Venue"
//	@Success	201		{object}	models.Venue
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/venues [post]
func (h *VenueHandlers) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.VenueInput](w, r)
	if !ok {
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	venue, err := f.Create(r.Context(), *in)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, venue)
}

// Update replaces a venue.
//
//	@Summary	Update venue
//	@Tags		venues
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Venue ID"
//	@Param		request	body		models.VenueInput	true	"Venue"
//	@Success	200		{object}	models.Venue
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/venues/{id} [put]
func (h *VenueHandlers) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.VenueInput](w, r)
	if !ok {
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	venue, err := f.Update(r.Context(), chi.URLParam(r, "id"), *in)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, venue)
}

// Delete removes a venue.
//
//	@Summary	Delete venue
//	@Tags		venues
//	@Param		id	path	string	true	"Venue ID"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/venues/{id} [delete]
func (h *VenueHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	if err := f.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
