package models

import (
	"net/url"
	"strconv"
)

// Known account roles.
const (
	RoleUser       = "USER"
	RoleStaff      = "STAFF"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User is a platform account as seen by administrators.
type User struct {
	ID        string   `json:"id" example:"3f0a6d6e-1d4b-4a57-9b3e-0c6b8f5f9a11"`
	Email     string   `json:"email" example:"player@example.com"`
	FirstName string   `json:"firstName" example:"Sam"`
	LastName  string   `json:"lastName" example:"Okafor"`
	Phone     string   `json:"phone,omitempty" example:"+1 512 555 0199"`
	Roles     []string `json:"roles" example:"USER"`
	Active    bool     `json:"active"`
} // @name User

// UserUpdate is the update body.
type UserUpdate struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=32"`
} // @name UserUpdate

// RolesUpdate replaces a user's roles.
type RolesUpdate struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=USER STAFF ADMIN SUPER_ADMIN"`
} // @name RolesUpdate

// ListParams filters the user list.
type ListParams struct {
	Search string
	Role   string
	Active *bool
	Limit  int
	Offset int
}

// Values encodes the non-zero params as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Role != "" {
		v.Set("role", p.Role)
	}
	if p.Active != nil {
		v.Set("active", strconv.FormatBool(*p.Active))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	return v
}
