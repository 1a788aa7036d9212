// Package services holds the booking status rules. They operate purely on
// domain types; the booking service remains the authority and re-checks them.
package services

import (
	"fmt"

	"github.com/venue-master/admin-console/services/booking/domain"
	"github.com/venue-master/admin-console/services/booking/domain/models"
)

// ValidateTransition reports whether b may move to status to.
//
// Rules:
//   - CONFIRMED only from PENDING_PAYMENT
//   - CANCELLED from PENDING_PAYMENT or CONFIRMED
//   - COMPLETED only from CONFIRMED
//   - PAYMENT_RETRY only from PENDING_PAYMENT
//   - PENDING_PAYMENT only from PAYMENT_RETRY
func ValidateTransition(b models.Booking, to models.Status) error {
	var ok bool
	switch to {
	case models.StatusConfirmed:
		ok = b.CanConfirm()
	case models.StatusCancelled:
		ok = b.CanCancel()
	case models.StatusCompleted:
		ok = b.Status == models.StatusConfirmed
	case models.StatusPaymentRetry:
		ok = b.Status == models.StatusPendingPayment
	case models.StatusPendingPayment:
		ok = b.Status == models.StatusPaymentRetry
	}
	if !ok {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, displayStatus(b.Status), displayStatus(to))
	}
	return nil
}

func displayStatus(s models.Status) string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}
