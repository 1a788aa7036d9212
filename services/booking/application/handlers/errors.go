package handlers

import "errors"

var errUnknownStatus = errors.New("status must be one of PENDING_PAYMENT, CONFIRMED, CANCELLED, COMPLETED, PAYMENT_RETRY")
