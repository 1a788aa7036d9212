package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"code":"conflict","message":"slot taken"}`, "slot taken"},
		{"error field", `{"error":"invalid facilityId"}`, "invalid facilityId"},
		{"code only", `{"code":"not_found"}`, "not_found"},
		{"not json", `<html>bad gateway</html>`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serverMessage([]byte(tt.body)))
		})
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		method         string
		status         int
		wantValidation bool
	}{
		{http.MethodPost, http.StatusBadRequest, true},
		{http.MethodPut, http.StatusUnprocessableEntity, true},
		{http.MethodPatch, http.StatusBadRequest, true},
		{http.MethodGet, http.StatusBadRequest, false},
		{http.MethodDelete, http.StatusUnprocessableEntity, false},
		{http.MethodPost, http.StatusConflict, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %d", tt.method, tt.status), func(t *testing.T) {
			err := statusError(tt.method, "http://localhost:8080/v1/venues", &Response{
				StatusCode: tt.status,
				Body:       []byte(`{"message":"bad input"}`),
			})
			var ve *ValidationError
			assert.Equal(t, tt.wantValidation, errors.As(err, &ve))

			var he *HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.status, he.Status)
			assert.Equal(t, "bad input", he.Message)
		})
	}
}

func TestAuthExpiredError(t *testing.T) {
	cause := &HTTPError{Method: http.MethodGet, URL: "u", Status: http.StatusUnauthorized}
	err := fmt.Errorf("list venues: %w", &AuthExpiredError{Cause: cause})

	assert.True(t, IsAuthExpired(err))
	assert.ErrorIs(t, err, ErrAuthExpired)
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Contains(t, err.Error(), "authentication expired")

	assert.Equal(t, "authentication expired", (&AuthExpiredError{}).Error())
	assert.False(t, IsAuthExpired(cause))
}

func TestNetworkError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &NetworkError{Method: http.MethodGet, URL: "http://localhost:8083/v1/bookings", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "GET http://localhost:8083/v1/bookings: connection refused", err.Error())
}
