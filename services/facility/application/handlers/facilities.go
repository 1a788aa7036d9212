package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/errhttp"
	"github.com/venue-master/admin-console/pkg/httpx"
	pkgvalidator "github.com/venue-master/admin-console/pkg/validator"
	"github.com/venue-master/admin-console/services/facility/domain/models"
	"github.com/venue-master/admin-console/services/facility/infrastructure/remote"
)

const dateLayout = "2006-01-02"

// FacilityHandlers serves the facility screens.
type FacilityHandlers struct {
	clients auth.ClientSource
}

func NewFacilityHandlers(clients auth.ClientSource) *FacilityHandlers {
	return &FacilityHandlers{clients: clients}
}

func (h *FacilityHandlers) facade(w http.ResponseWriter, r *http.Request) (*remote.FacilityFacade, bool) {
	client, err := h.clients(r)
	if err != nil {
		errhttp.Respond(w, r, err)
		return nil, false
	}
	return remote.NewFacilityFacade(client), true
}

// List returns facilities, optionally narrowed to one venue.
//
//	@Summary	List facilities
//	@Tags		facilities
//	@Produce	json
//	@Param		venueId		query		string	false	"Venue ID"
//	@Param		available	query		bool	false	"Only bookable facilities"
//	@Param		limit		query		int		false	"Page size"
//	@Param		offset		query		int		false	"Page offset"
//	@Success	200			{array}		models.Facility
//	@Failure	400			{object}	httpx.ErrorResponse
//	@Failure	401			{object}	httpx.ErrorResponse
//	@Router		/facilities [get]
func (h *FacilityHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Page(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	available, err := httpx.QueryBool(r, "available")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	facilities, err := f.List(r.Context(), models.ListParams{
		VenueID:   r.URL.Query().Get("venueId"),
		Available: available,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSONList(w, http.StatusOK, facilities)
}

// Get returns one facility.
//
//	@Summary	Get facility
//	@Tags		facilities
//	@Produce	json
//	@Param		id	path		string	true	"Facility ID"
//	@Success	200	{object}	models.Facility
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/facilities/{id} [get]
func (h *FacilityHandlers) Get(w http.ResponseWriter, r *http.Request) {
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	facility, err := f.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, facility)
}

// Create adds a facility to a venue.
//
//	@Summary	Create facility
//	@Tags		facilities
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.FacilityInput	true	"Facility"
//	@Success	201		{object}	models.Facility
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/facilities [post]
func (h *FacilityHandlers) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.FacilityInput](w, r)
	if !ok {
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	facility, err := f.Create(r.Context(), *in)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, facility)
}

// Update replaces a facility.
//
//	@Summary	Update facility
//	@Tags		facilities
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Facility ID"
//	@Param		request	body		models.FacilityInput	true	"Facility"
//	@Success	200		{object}	models.Facility
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/facilities/{id} [put]
func (h *FacilityHandlers) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.FacilityInput](w, r)
	if !ok {
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	facility, err := f.Update(r.Context(), chi.URLParam(r, "id"), *in)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, facility)
}

// Delete removes a facility.
//
//	@Summary	Delete facility
//	@Tags		facilities
//	@Param		id	path	string	true	"Facility ID"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/facilities/{id} [delete]
func (h *FacilityHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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

// Schedule returns the opening schedule of a facility between two dates.
//
//	@Summary	Facility schedule
//	@Tags		facilities
//	@Produce	json
//	@Param		id		path		string	true	"Facility ID"
//	@Param		from	query		string	false	"First day (YYYY-MM-DD)"
//	@Param		to		query		string	false	"Last day (YYYY-MM-DD)"
//	@Success	200		{array}		models.ScheduleDay
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/facilities/{id}/schedule [get]
func (h *FacilityHandlers) Schedule(w http.ResponseWriter, r *http.Request) {
	params, err := scheduleParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	days, err := f.Schedule(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSONList(w, http.StatusOK, days)
}

func scheduleParams(r *http.Request) (models.ScheduleParams, error) {
	q := r.URL.Query()
	p := models.ScheduleParams{From: q.Get("from"), To: q.Get("to")}

	var from, to time.Time
	var err error
	if p.From != "" {
		if from, err = time.Parse(dateLayout, p.From); err != nil {
			return p, errors.New("from must be a date in YYYY-MM-DD format")
		}
	}
	if p.To != "" {
		if to, err = time.Parse(dateLayout, p.To); err != nil {
			return p, errors.New("to must be a date in YYYY-MM-DD format")
		}
	}
	if p.From != "" && p.To != "" && to.Before(from) {
		return p, errors.New("to must not be before from")
	}
	return p, nil
}
