package models

import (
	"net/url"
	"strconv"
)

// Venue is a site that hosts bookable facilities.
type Venue struct {
	ID          string `json:"id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Name        string `json:"name" example:"Riverside Sports Park"`
	Description string `json:"description,omitempty" example:"Eight courts by the river"`
	Address     string `json:"address,omitempty" example:"100 River Rd"`
	City        string `json:"city,omitempty" example:"Austin"`
	State       string `json:"state,omitempty" example:"TX"`
	ZipCode     string `json:"zipCode,omitempty" example:"78701"`
	Country     string `json:"country,omitempty" example:"US"`
	Phone       string `json:"phone,omitempty" example:"+1 512 555 0100"`
	Email       string `json:"email,omitempty" example:"desk@riverside.example"`
	Website     string `json:"website,omitempty" example:"https://riverside.example"`
	Timezone    string `json:"timezone,omitempty" example:"America/Chicago"`
} // @name Venue

// VenueInput is the create/update body.
type VenueInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Address     string `json:"address,omitempty" validate:"max=255"`
	City        string `json:"city,omitempty" validate:"max=120"`
	State       string `json:"state,omitempty" validate:"max=120"`
	ZipCode     string `json:"zipCode,omitempty" validate:"max=20"`
	Country     string `json:"country,omitempty" validate:"max=120"`
	Phone       string `json:"phone,omitempty" validate:"max=32"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	Timezone    string `json:"timezone,omitempty" validate:"omitempty,timezone"`
} // @name VenueInput

// ListParams filters the venue list.
type ListParams struct {
	Limit  int
	Offset int
}

// Values encodes the non-zero params as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	return v
}
