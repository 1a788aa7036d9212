// Package errhttp maps console and upstream errors to HTTP responses.
// Add a case to mapError for each new domain sentinel error.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/httpx"
	"github.com/venue-master/admin-console/pkg/telemetry"
	bookingdomain "github.com/venue-master/admin-console/services/booking/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is/As so wrapped errors are matched correctly. Upstream 5xx
// answers and unrecognized errors are not echoed to the browser.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := mapError(err)
	httpx.JSONError(w, status, msg)
}

func mapError(err error) (int, string) {
	var (
		validationErr *apiclient.ValidationError
		httpErr       *apiclient.HTTPError
		networkErr    *apiclient.NetworkError
	)
	switch {
	case errors.Is(err, apiclient.ErrAuthExpired), errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized, "session expired, sign in again" // 401
	case errors.Is(err, bookingdomain.ErrInvalidID):
		return http.StatusBadRequest, bookingdomain.ErrInvalidID.Error() // 400
	case errors.Is(err, bookingdomain.ErrInvalidTransition):
		return http.StatusConflict, err.Error() // 409
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, messageOr(validationErr.Message(), "invalid request") // 422
	case errors.As(err, &httpErr):
		if httpErr.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway, "upstream service error" // 502
		}
		return httpErr.Status, messageOr(httpErr.Message, http.StatusText(httpErr.Status))
	case errors.As(err, &networkErr):
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, "upstream service timed out" // 504
		}
		return http.StatusBadGateway, "upstream service unreachable" // 502
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError) // 500
	}
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

// Respond writes err like WriteError and reports server-side failures to
// Sentry on the request's hub.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := mapError(err)
	if status >= http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
	}
	httpx.JSONError(w, status, msg)
}
