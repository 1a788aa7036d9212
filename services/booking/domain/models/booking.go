package models

import (
	"net/url"
	"strconv"
	"time"
)

// Status is a booking lifecycle state.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED"
	StatusCancelled      Status = "CANCELLED"
	StatusCompleted      Status = "COMPLETED"
	StatusPaymentRetry   Status = "PAYMENT_RETRY"
)

// Statuses lists every known status.
var Statuses = []Status{
	StatusPendingPayment,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusPaymentRetry,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// FacilitySummary is the facility snapshot embedded in a booking.
type FacilitySummary struct {
	ID      string `json:"id"`
	VenueID string `json:"venueId,omitempty"`
	Name    string `json:"name"`
} // @name FacilitySummary

// Booking is a reservation of a facility for a time range.
type Booking struct {
	ID            string           `json:"id" example:"3d1f0a52-8c4b-4f0e-9b44-5f0f1f1c2a11"`
	FacilityID    string           `json:"facilityId"`
	UserID        string           `json:"userId"`
	StartsAt      time.Time        `json:"startsAt"`
	EndsAt        time.Time        `json:"endsAt"`
	Status        Status           `json:"status" example:"PENDING_PAYMENT"`
	AmountCents   int64            `json:"amountCents" example:"5000"`
	Currency      string           `json:"currency" example:"USD"`
	PaymentIntent string           `json:"paymentIntent,omitempty"`
	Facility      *FacilitySummary `json:"facility,omitempty"`
} // @name Booking

// CanConfirm reports whether the booking may be confirmed.
func (b Booking) CanConfirm() bool {
	return b.Status == StatusPendingPayment
}

// CanCancel reports whether the booking may be cancelled.
func (b Booking) CanCancel() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// BookingInput is the create body.
type BookingInput struct {
	FacilityID string    `json:"facilityId" validate:"required,uuid"`
	UserID     string    `json:"userId" validate:"required,uuid"`
	StartsAt   time.Time `json:"startsAt" validate:"required"`
	EndsAt     time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
} // @name BookingInput

// StatusUpdate is the body of a status change.
type StatusUpdate struct {
	Status Status `json:"status" validate:"required,oneof=PENDING_PAYMENT CONFIRMED CANCELLED COMPLETED PAYMENT_RETRY"`
} // @name StatusUpdate

// ListParams filters the booking list and the stats query.
type ListParams struct {
	UserID     string
	FacilityID string
	Status     Status
	Limit      int
	Offset     int
}

// Values encodes the non-zero params as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.UserID != "" {
		v.Set("userId", p.UserID)
	}
	if p.FacilityID != "" {
		v.Set("facilityId", p.FacilityID)
	}
	if p.Status != "" {
		v.Set("status", string(p.Status))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	return v
}

// Stats aggregates bookings by status.
type Stats struct {
	Total        int            `json:"total" example:"42"`
	ByStatus     map[Status]int `json:"byStatus"`
	RevenueCents int64          `json:"revenueCents" example:"125000"`
	Currency     string         `json:"currency,omitempty" example:"USD"`
} // @name BookingStats
