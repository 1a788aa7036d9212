// Package remote implements the venue facade over the gateway.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/services/venue/domain/models"
)

const venuesPath = "/v1/venues"

// VenueFacade issues venue catalogue calls.
type VenueFacade struct {
	client apiclient.Doer
}

// NewVenueFacade returns a VenueFacade sending through client.
func NewVenueFacade(client apiclient.Doer) *VenueFacade {
	return &VenueFacade{client: client}
}

// List returns venues matching params.
func (f *VenueFacade) List(ctx context.Context, params models.ListParams) ([]models.Venue, error) {
	var venues []models.Venue
	req := venueRequest(http.MethodGet, venuesPath, nil)
	req.Query = params.Values()
	if err := f.client.DoJSON(ctx, req, &venues); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// Get returns one venue.
func (f *VenueFacade) Get(ctx context.Context, id string) (*models.Venue, error) {
	var v models.Venue
	if err := f.client.DoJSON(ctx, venueRequest(http.MethodGet, venuePath(id), nil), &v); err != nil {
		return nil, fmt.Errorf("get venue %s: %w", id, err)
	}
	return &v, nil
}

// Create adds a venue.
func (f *VenueFacade) Create(ctx context.Context, in models.VenueInput) (*models.Venue, error) {
	var v models.Venue
	if err := f.client.DoJSON(ctx, venueRequest(http.MethodPost, venuesPath, in), &v); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return &v, nil
}

// Update replaces a venue's details.
func (f *VenueFacade) Update(ctx context.Context, id string, in models.VenueInput) (*models.Venue, error) {
	var v models.Venue
	if err := f.client.DoJSON(ctx, venueRequest(http.MethodPut, venuePath(id), in), &v); err != nil {
		return nil, fmt.Errorf("update venue %s: %w", id, err)
	}
	return &v, nil
}

// Delete removes a venue.
func (f *VenueFacade) Delete(ctx context.Context, id string) error {
	if err := f.client.DoJSON(ctx, venueRequest(http.MethodDelete, venuePath(id), nil), nil); err != nil {
		return fmt.Errorf("delete venue %s: %w", id, err)
	}
	return nil
}

func venuePath(id string) string {
	return venuesPath + "/" + url.PathEscape(id)
}

func venueRequest(method, path string, body any) apiclient.Request {
	return apiclient.Request{Method: method, Service: endpoints.Gateway, Path: path, Body: body}
}
