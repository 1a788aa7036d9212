package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-master/admin-console/pkg/apiclient"
	bookingdomain "github.com/venue-master/admin-console/services/booking/domain"
	"github.com/venue-master/admin-console/services/booking/domain/models"
)

const bookingID = "3d1f0a52-8c4b-4f0e-9b44-5f0f1f1c2a11"

type fakeAPI struct {
	current *models.Booking
	getErr  error
	calls   []string
}

func (f *fakeAPI) Get(_ context.Context, id string) (*models.Booking, error) {
	f.calls = append(f.calls, "get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.current
	b.ID = id
	return &b, nil
}

func (f *fakeAPI) UpdateStatus(_ context.Context, id string, status models.Status) (*models.Booking, error) {
	f.calls = append(f.calls, "status:"+string(status))
	return &models.Booking{ID: id, Status: status}, nil
}

func (f *fakeAPI) Cancel(_ context.Context, id string) (*models.Booking, error) {
	f.calls = append(f.calls, "cancel")
	return &models.Booking{ID: id, Status: models.StatusCancelled}, nil
}

func (f *fakeAPI) Confirm(_ context.Context, id string) (*models.Booking, error) {
	f.calls = append(f.calls, "confirm")
	return &models.Booking{ID: id, Status: models.StatusConfirmed}, nil
}

func TestBookingService_ConfirmPending(t *testing.T) {
	api := &fakeAPI{current: &models.Booking{Status: models.StatusPendingPayment}}
	b, err := NewBookingService(api).Confirm(context.Background(), bookingID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.Equal(t, []string{"get", "confirm"}, api.calls)
}

func TestBookingService_ConfirmRejectedBeforeUpstream(t *testing.T) {
	api := &fakeAPI{current: &models.Booking{Status: models.StatusCancelled}}
	_, err := NewBookingService(api).Confirm(context.Background(), bookingID)

	require.ErrorIs(t, err, bookingdomain.ErrInvalidTransition)
	assert.Equal(t, []string{"get"}, api.calls)
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		status models.Status
		ok     bool
	}{
		{models.StatusPendingPayment, true},
		{models.StatusConfirmed, true},
		{models.StatusCompleted, false},
		{models.StatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			api := &fakeAPI{current: &models.Booking{Status: tt.status}}
			_, err := NewBookingService(api).Cancel(context.Background(), bookingID)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, []string{"get", "cancel"}, api.calls)
				return
			}
			require.ErrorIs(t, err, bookingdomain.ErrInvalidTransition)
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	api := &fakeAPI{current: &models.Booking{Status: models.StatusConfirmed}}
	b, err := NewBookingService(api).UpdateStatus(context.Background(), bookingID, models.StatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, b.Status)
	assert.Equal(t, []string{"get", "status:COMPLETED"}, api.calls)
}

func TestBookingService_InvalidID(t *testing.T) {
	api := &fakeAPI{current: &models.Booking{Status: models.StatusPendingPayment}}
	_, err := NewBookingService(api).Confirm(context.Background(), "../users")

	require.ErrorIs(t, err, bookingdomain.ErrInvalidID)
	assert.Empty(t, api.calls)
}

func TestBookingService_PropagatesLookupError(t *testing.T) {
	expired := &apiclient.AuthExpiredError{Cause: apiclient.ErrNoRefreshToken}
	api := &fakeAPI{getErr: expired}
	_, err := NewBookingService(api).Cancel(context.Background(), bookingID)

	require.True(t, apiclient.IsAuthExpired(err))
	assert.Equal(t, []string{"get"}, api.calls)

	api = &fakeAPI{getErr: &apiclient.HTTPError{Status: http.StatusNotFound}}
	_, err = NewBookingService(api).Cancel(context.Background(), bookingID)
	var httpErr *apiclient.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
