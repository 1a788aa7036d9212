package domain

import "errors"

var (
	// ErrInvalidTransition is returned when a booking status change is not
	// allowed from the booking's current status.
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrInvalidID is returned for a booking id that is not a UUID.
	ErrInvalidID = errors.New("invalid booking id")
)
