package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/errhttp"
	"github.com/venue-master/admin-console/pkg/httpx"
	pkgvalidator "github.com/venue-master/admin-console/pkg/validator"
	appsvcs "github.com/venue-master/admin-console/services/booking/application/services"
	"github.com/venue-master/admin-console/services/booking/domain/models"
	"github.com/venue-master/admin-console/services/booking/infrastructure/remote"
)

// BookingHandlers serves the booking screens. Status changes go through
// BookingService so disallowed transitions never reach the booking service.
type BookingHandlers struct {
	clients auth.ClientSource
}

// NewBookingHandlers returns BookingHandlers resolving upstream clients via clients.
func NewBookingHandlers(clients auth.ClientSource) *BookingHandlers {
	return &BookingHandlers{clients: clients}
}

func (h *BookingHandlers) facade(w http.ResponseWriter, r *http.Request) (*remote.BookingFacade, bool) {
	client, err := h.clients(r)
	if err != nil {
		errhttp.Respond(w, r, err)
		return nil, false
	}
	return remote.NewBookingFacade(client), true
}

func listParams(r *http.Request) (models.ListParams, error) {
	limit, offset, err := httpx.Page(r)
	if err != nil {
		return models.ListParams{}, err
	}
	q := r.URL.Query()
	p := models.ListParams{
		UserID:     q.Get("userId"),
		FacilityID: q.Get("facilityId"),
		Status:     models.Status(q.Get("status")),
		Limit:      limit,
		Offset:     offset,
	}
	if p.Status != "" && !p.Status.Valid() {
		return models.ListParams{}, errUnknownStatus
	}
	return p, nil
}

// List returns bookings.
//
//	@Summary	List bookings
//	@Tags		bookings
//	@Produce	json
//	@Param		userId		query		string	false	"User ID"
//	@Param		facilityId	query		string	false	"Facility ID"
//	@Param		status		query		string	false	"Status"	Enums(PENDING_PAYMENT, CONFIRMED, CANCELLED, COMPLETED, PAYMENT_RETRY)
//	@Param		limit		query		int		false	"Page size"
//	@Param		offset		query		int		false	"Page offset"
//	@Success	200			{array}		models.Booking
//	@Failure	400			{object}	httpx.ErrorResponse
//	@Router		/bookings [get]
func (h *BookingHandlers) List(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	bookings, err := f.List(r.Context(), params)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSONList(w, http.StatusOK, bookings)
}

// Stats returns booking aggregates for the same filters as List.
//
//	@Summary	Booking statistics
//	@Tags		bookings
//	@Produce	json
//	@Param		userId		query		string	false	"User ID"
//	@Param		facilityId	query		string	false	"Facility ID"
//	@Success	200			{object}	models.Stats
//	@Router		/bookings/stats [get]
func (h *BookingHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	stats, err := f.Stats(r.Context(), params)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

// Get returns one booking.
//
//	@Summary	Get booking
//	@Tags		bookings
//	@Produce	json
//	@Param		id	path		string	true	"Booking ID"
//	@Success	200	{object}	models.Booking
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/bookings/{id} [get]
func (h *BookingHandlers) Get(w http.ResponseWriter, r *http.Request) {
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	booking, err := f.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, booking)
}

// Create books a facility on behalf of a user.
//
//	@Summary	Create booking
//	@Tags		bookings
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.BookingInput	true	"Booking"
//	@Success	201		{object}	models.Booking
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/bookings [post]
func (h *BookingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.BookingInput](w, r)
	if !ok {
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	booking, err := f.Create(r.Context(), *in)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, booking)
}

// UpdateStatus moves a booking to another status.
//
//	@Summary	Update booking status
//	@Tags		bookings
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Booking ID"
//	@Param		request	body		models.StatusUpdate	true	"Target status"
//	@Success	200		{object}	models.Booking
//	@Failure	409		{object}	httpx.ErrorResponse
//	@Router		/bookings/{id}/status [patch]
func (h *BookingHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.StatusUpdate](w, r)
	if !ok {
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	booking, err := appsvcs.NewBookingService(f).UpdateStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, booking)
}

// Cancel cancels a booking.
//
//	@Summary	Cancel booking
//	@Tags		bookings
//	@Produce	json
//	@Param		id	path		string	true	"Booking ID"
//	@Success	200	{object}	models.Booking
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/bookings/{id}/cancel [patch]
func (h *BookingHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	booking, err := appsvcs.NewBookingService(f).Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, booking)
}

// Confirm confirms a booking awaiting payment.
//
//	@Summary	Confirm booking
//	@Tags		bookings
//	@Produce	json
//	@Param		id	path		string	true	"Booking ID"
//	@Success	200	{object}	models.Booking
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/bookings/{id}/confirm [post]
func (h *BookingHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	booking, err := appsvcs.NewBookingService(f).Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, booking)
}
