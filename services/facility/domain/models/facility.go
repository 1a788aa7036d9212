package models

import (
	"net/url"
	"strconv"
	"time"
)

// Facility is a bookable unit inside a venue, such as a court or a pitch.
type Facility struct {
	ID               string `json:"id" example:"0b7a5d1c-3f2e-4f61-9a0e-2a1d6c7b8e90"`
	VenueID          string `json:"venueId" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Name             string `json:"name" example:"Court 3"`
	Description      string `json:"description,omitempty"`
	Surface          string `json:"surface,omitempty" example:"clay"`
	OpenAt           string `json:"openAt" example:"07:00"`
	CloseAt          string `json:"closeAt" example:"22:00"`
	Available        bool   `json:"available"`
	WeekdayRateCents int64  `json:"weekdayRateCents" example:"2500"`
	WeekendRateCents int64  `json:"weekendRateCents" example:"3500"`
	Currency         string `json:"currency" example:"USD"`
} // @name Facility

// RateFor returns the hourly rate in cents that applies on t's day.
func (f Facility) RateFor(t time.Time) int64 {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return f.WeekendRateCents
	default:
		return f.WeekdayRateCents
	}
}

// FacilityInput is the create/update body.
type FacilityInput struct {
	VenueID          string `json:"venueId" validate:"required,uuid"`
	Name             string `json:"name" validate:"required,min=1,max=255"`
	Description      string `json:"description,omitempty" validate:"max=2000"`
	Surface          string `json:"surface,omitempty" validate:"max=64"`
	OpenAt           string `json:"openAt" validate:"required,datetime=15:04"`
	CloseAt          string `json:"closeAt" validate:"required,datetime=15:04"`
	Available        bool   `json:"available"`
	WeekdayRateCents int64  `json:"weekdayRateCents" validate:"gte=0"`
	WeekendRateCents int64  `json:"weekendRateCents" validate:"gte=0"`
	Currency         string `json:"currency" validate:"required,iso4217"`
} // @name FacilityInput

// ListParams filters the facility list.
type ListParams struct {
	VenueID   string
	Available *bool
	Limit     int
	Offset    int
}

// Values encodes the non-zero params as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.VenueID != "" {
		v.Set("venueId", p.VenueID)
	}
	if p.Available != nil {
		v.Set("available", strconv.FormatBool(*p.Available))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	return v
}

// ScheduleParams bounds a schedule lookup. Dates are YYYY-MM-DD.
type ScheduleParams struct {
	From string
	To   string
}

// Values encodes the params as a query string.
func (p ScheduleParams) Values() url.Values {
	v := url.Values{}
	if p.From != "" {
		v.Set("from", p.From)
	}
	if p.To != "" {
		v.Set("to", p.To)
	}
	return v
}

// Slot is one open interval within a day.
type Slot struct {
	OpenAt  string `json:"openAt" example:"07:00"`
	CloseAt string `json:"closeAt" example:"12:00"`
} // @name Slot

// ScheduleDay is the opening schedule of a facility on one date.
type ScheduleDay struct {
	Date   string `json:"date" example:"2026-10-24"`
	Closed bool   `json:"closed"`
	Reason string `json:"reason,omitempty" example:"Resurfacing"`
	Slots  []Slot `json:"slots"`
} // @name ScheduleDay
