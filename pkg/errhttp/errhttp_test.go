package errhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/auth"
	bookingdomain "github.com/venue-master/admin-console/services/booking/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	notFound := &apiclient.HTTPError{Method: "GET", URL: "http://booking/v1/bookings/b1", Status: http.StatusNotFound, Message: "booking not found"}
	upstream500 := &apiclient.HTTPError{Method: "GET", URL: "http://gateway/v1/venues", Status: http.StatusInternalServerError, Message: "pq: connection refused"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"auth expired", &apiclient.AuthExpiredError{Cause: apiclient.ErrNoRefreshToken}, http.StatusUnauthorized, "session expired, sign in again"},
		{"wrapped auth expired", fmt.Errorf("list venues: %w", &apiclient.AuthExpiredError{}), http.StatusUnauthorized, "session expired, sign in again"},
		{"no session", auth.ErrSessionNotFound, http.StatusUnauthorized, "session expired, sign in again"},
		{"invalid transition", fmt.Errorf("confirm booking b1: %w", bookingdomain.ErrInvalidTransition), http.StatusConflict, "confirm booking b1: invalid booking status transition"},
		{"invalid id", fmt.Errorf("confirm booking: %w", bookingdomain.ErrInvalidID), http.StatusBadRequest, "invalid booking id"},
		{"validation", &apiclient.ValidationError{HTTP: &apiclient.HTTPError{Status: http.StatusBadRequest, Message: "name is required"}}, http.StatusUnprocessableEntity, "name is required"},
		{"upstream 404", fmt.Errorf("get booking: %w", notFound), http.StatusNotFound, "booking not found"},
		{"upstream 403 without message", &apiclient.HTTPError{Status: http.StatusForbidden}, http.StatusForbidden, "Forbidden"},
		{"upstream 500 masked", upstream500, http.StatusBadGateway, "upstream service error"},
		{"network", &apiclient.NetworkError{Method: "GET", URL: "http://gateway", Err: errors.New("connection refused")}, http.StatusBadGateway, "upstream service unreachable"},
		{"timeout", &apiclient.NetworkError{Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, "upstream service timed out"},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response body is not valid JSON: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, body["error"])
			}
		})
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, apiclient.ErrAuthExpired)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestRespond_UsesSameMapping(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	Respond(w, r, &apiclient.NetworkError{Err: errors.New("connection refused")})

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}
