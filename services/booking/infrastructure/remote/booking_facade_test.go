package remote

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/apiclient/apiclienttest"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/services/booking/domain/models"
)

func TestBookingFacade_Routes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(f *BookingFacade) error
		wantMethod string
		wantPath   string
		wantQuery  string
		wantBody   any
	}{
		{"list", func(f *BookingFacade) error {
			_, err := f.List(ctx, models.ListParams{Status: models.StatusConfirmed})
			return err
		}, http.MethodGet, "/v1/bookings", "status=CONFIRMED", nil},
		{"get", func(f *BookingFacade) error { _, err := f.Get(ctx, "b1"); return err }, http.MethodGet, "/v1/bookings/b1", "", nil},
		{"update status", func(f *BookingFacade) error {
			_, err := f.UpdateStatus(ctx, "b1", models.StatusCompleted)
			return err
		}, http.MethodPatch, "/v1/bookings/b1/status", "", models.StatusUpdate{Status: models.StatusCompleted}},
		{"cancel", func(f *BookingFacade) error { _, err := f.Cancel(ctx, "b1"); return err }, http.MethodPatch, "/v1/bookings/b1/cancel", "", nil},
		{"confirm", func(f *BookingFacade) error { _, err := f.Confirm(ctx, "b1"); return err }, http.MethodPost, "/v1/bookings/b1/confirm", "", nil},
		{"stats", func(f *BookingFacade) error {
			_, err := f.Stats(ctx, models.ListParams{FacilityID: "f1"})
			return err
		}, http.MethodGet, "/v1/bookings/stats", "facilityId=f1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &apiclienttest.Recorder{}
			require.NoError(t, tt.call(NewBookingFacade(rec)))

			req := rec.Last()
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, endpoints.Booking, req.Service)
			assert.Equal(t, tt.wantPath, req.Path)
			assert.Equal(t, tt.wantQuery, req.Query.Encode())
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, req.Body)
			}
		})
	}
}

func TestBookingFacade_Stats_Decodes(t *testing.T) {
	rec := &apiclienttest.Recorder{Reply: map[string]any{
		"total":        3,
		"byStatus":     map[string]int{"CONFIRMED": 2, "CANCELLED": 1},
		"revenueCents": 10000,
	}}

	stats, err := NewBookingFacade(rec).Stats(context.Background(), models.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[models.StatusConfirmed])
	assert.EqualValues(t, 10000, stats.RevenueCents)
}

func TestBookingFacade_WrapsErrors(t *testing.T) {
	httpErr := &apiclient.HTTPError{Method: http.MethodPost, Status: http.StatusConflict, Message: "already confirmed"}
	rec := &apiclienttest.Recorder{Err: httpErr}

	_, err := NewBookingFacade(rec).Confirm(context.Background(), "b1")
	require.Error(t, err)

	var got *apiclient.HTTPError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Contains(t, err.Error(), "confirm booking b1")
}
