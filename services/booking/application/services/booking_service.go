package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	bookingdomain "github.com/venue-master/admin-console/services/booking/domain"
	"github.com/venue-master/admin-console/services/booking/domain/models"
	domainsvcs "github.com/venue-master/admin-console/services/booking/domain/services"
)

// BookingAPI is the subset of the booking facade the service drives.
type BookingAPI interface {
	Get(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	Confirm(ctx context.Context, id string) (*models.Booking, error)
}

// BookingService guards status changes: the current booking is fetched and
// the transition checked before the booking service is asked to apply it.
type BookingService struct {
	api BookingAPI
}

// NewBookingService returns a BookingService over api.
func NewBookingService(api BookingAPI) *BookingService {
	return &BookingService{api: api}
}

// Confirm confirms a PENDING_PAYMENT booking.
func (s *BookingService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	if err := s.check(ctx, id, models.StatusConfirmed); err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	return s.api.Confirm(ctx, id)
}

// Cancel cancels a PENDING_PAYMENT or CONFIRMED booking.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	if err := s.check(ctx, id, models.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	return s.api.Cancel(ctx, id)
}

// UpdateStatus moves a booking to status.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Booking, error) {
	if err := s.check(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return s.api.UpdateStatus(ctx, id, status)
}

func (s *BookingService) check(ctx context.Context, id string, to models.Status) error {
	if err := uuid.Validate(id); err != nil {
		return bookingdomain.ErrInvalidID
	}
	current, err := s.api.Get(ctx, id)
	if err != nil {
		return err
	}
	return domainsvcs.ValidateTransition(*current, to)
}
