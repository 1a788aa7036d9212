// Package remote implements the booking facade over the booking service.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/services/booking/domain/models"
)

const bookingsPath = "/v1/bookings"

// BookingFacade issues booking calls.
type BookingFacade struct {
	client apiclient.Doer
}

// NewBookingFacade returns a BookingFacade sending through client.
func NewBookingFacade(client apiclient.Doer) *BookingFacade {
	return &BookingFacade{client: client}
}

// List returns bookings matching params.
func (f *BookingFacade) List(ctx context.Context, params models.ListParams) ([]models.Booking, error) {
	var out []models.Booking
	req := bookingRequest(http.MethodGet, bookingsPath, nil)
	req.Query = params.Values()
	if err := f.client.DoJSON(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

// Get returns one booking.
func (f *BookingFacade) Get(ctx context.Context, id string) (*models.Booking, error) {
	return f.one(ctx, http.MethodGet, bookingPath(id), nil, "get booking "+id)
}

// Create places a booking on behalf of a user.
func (f *BookingFacade) Create(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	return f.one(ctx, http.MethodPost, bookingsPath, in, "create booking")
}

// UpdateStatus sets the booking status directly.
func (f *BookingFacade) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Booking, error) {
	return f.one(ctx, http.MethodPatch, bookingPath(id)+"/status", models.StatusUpdate{Status: status}, "update booking "+id+" status")
}

// Cancel cancels a booking.
func (f *BookingFacade) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	return f.one(ctx, http.MethodPatch, bookingPath(id)+"/cancel", nil, "cancel booking "+id)
}

// Confirm confirms a pending booking.
func (f *BookingFacade) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	return f.one(ctx, http.MethodPost, bookingPath(id)+"/confirm", nil, "confirm booking "+id)
}

// Stats returns booking aggregates for params.
func (f *BookingFacade) Stats(ctx context.Context, params models.ListParams) (*models.Stats, error) {
	var out models.Stats
	req := bookingRequest(http.MethodGet, bookingsPath+"/stats", nil)
	req.Query = params.Values()
	if err := f.client.DoJSON(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	return &out, nil
}

func (f *BookingFacade) one(ctx context.Context, method, path string, body any, op string) (*models.Booking, error) {
	var out models.Booking
	if err := f.client.DoJSON(ctx, bookingRequest(method, path, body), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

func bookingPath(id string) string {
	return bookingsPath + "/" + url.PathEscape(id)
}

func bookingRequest(method, path string, body any) apiclient.Request {
	return apiclient.Request{Method: method, Service: endpoints.Booking, Path: path, Body: body}
}
