package models

import "slices"

// Roles that grant console administration.
const (
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email" example:"ops@venue-master.io"`
	Password string `json:"password" validate:"required" example:"s3cret-pass"`
} // @name Credentials

// Registration is the register request body.
type Registration struct {
	Email     string `json:"email" validate:"required,email" example:"ops@venue-master.io"`
	Password  string `json:"password" validate:"required,min=8" example:"s3cret-pass"`
	FirstName string `json:"firstName" validate:"required,max=100" example:"Dana"`
	LastName  string `json:"lastName" validate:"required,max=100" example:"Reyes"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=32" example:"+1 512 555 0100"`
} // @name Registration

// UserProfile is the cached identity of the signed-in operator.
type UserProfile struct {
	ID        string   `json:"id" example:"3f0a6d6e-1d4b-4a57-9b3e-0c6b8f5f9a11"`
	Email     string   `json:"email" example:"ops@venue-master.io"`
	FirstName string   `json:"firstName" example:"Dana"`
	LastName  string   `json:"lastName" example:"Reyes"`
	Roles     []string `json:"roles" example:"ADMIN"`
} // @name UserProfile

// HasRole reports whether the profile carries role.
func (p UserProfile) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// IsAdmin reports whether the profile may administer the console.
func (p UserProfile) IsAdmin() bool {
	return p.HasRole(RoleAdmin) || p.HasRole(RoleSuperAdmin)
}

// FullName joins first and last name.
func (p UserProfile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// AuthResult is returned by login and register.
type AuthResult struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expiresIn,omitempty"`
	User         UserProfile `json:"user"`
}
