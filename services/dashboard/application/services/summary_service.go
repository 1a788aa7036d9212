package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/venue-master/admin-console/pkg/apiclient"
	bookingmodels "github.com/venue-master/admin-console/services/booking/domain/models"
	bookingremote "github.com/venue-master/admin-console/services/booking/infrastructure/remote"
	"github.com/venue-master/admin-console/services/dashboard/domain/models"
	facilitymodels "github.com/venue-master/admin-console/services/facility/domain/models"
	facilityremote "github.com/venue-master/admin-console/services/facility/infrastructure/remote"
	usermodels "github.com/venue-master/admin-console/services/user/domain/models"
	userremote "github.com/venue-master/admin-console/services/user/infrastructure/remote"
	venuemodels "github.com/venue-master/admin-console/services/venue/domain/models"
	venueremote "github.com/venue-master/admin-console/services/venue/infrastructure/remote"
)

// Summarize counts venues, facilities, bookings and users concurrently over
// client. The first failure cancels the remaining calls and is returned.
func Summarize(ctx context.Context, client apiclient.Doer) (*models.Summary, error) {
	out := models.Summary{Window: models.CountWindow}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := venueremote.NewVenueFacade(client).List(ctx, venuemodels.ListParams{Limit: models.CountWindow})
		out.Venues = len(list)
		return err
	})
	g.Go(func() error {
		list, err := facilityremote.NewFacilityFacade(client).List(ctx, facilitymodels.ListParams{Limit: models.CountWindow})
		out.Facilities = len(list)
		return err
	})
	g.Go(func() error {
		list, err := bookingremote.NewBookingFacade(client).List(ctx, bookingmodels.ListParams{Limit: models.CountWindow})
		out.Bookings = len(list)
		return err
	})
	g.Go(func() error {
		list, err := userremote.NewUserFacade(client).List(ctx, usermodels.ListParams{Limit: models.CountWindow})
		out.Users = len(list)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &out, nil
}
