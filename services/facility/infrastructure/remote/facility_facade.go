// Package remote implements the facility facade over the booking service.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/services/facility/domain/models"
)

const facilitiesPath = "/v1/facilities"

// FacilityFacade issues facility calls.
type FacilityFacade struct {
	client apiclient.Doer
}

// NewFacilityFacade returns a FacilityFacade sending through client.
func NewFacilityFacade(client apiclient.Doer) *FacilityFacade {
	return &FacilityFacade{client: client}
}

// List returns facilities matching params.
func (f *FacilityFacade) List(ctx context.Context, params models.ListParams) ([]models.Facility, error) {
	var out []models.Facility
	req := facilityRequest(http.MethodGet, facilitiesPath, nil)
	req.Query = params.Values()
	if err := f.client.DoJSON(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	return out, nil
}

// Get returns one facility.
func (f *FacilityFacade) Get(ctx context.Context, id string) (*models.Facility, error) {
	var out models.Facility
	if err := f.client.DoJSON(ctx, facilityRequest(http.MethodGet, facilityPath(id), nil), &out); err != nil {
		return nil, fmt.Errorf("get facility %s: %w", id, err)
	}
	return &out, nil
}

// Create adds a facility.
func (f *FacilityFacade) Create(ctx context.Context, in models.FacilityInput) (*models.Facility, error) {
	var out models.Facility
	if err := f.client.DoJSON(ctx, facilityRequest(http.MethodPost, facilitiesPath, in), &out); err != nil {
		return nil, fmt.Errorf("create facility: %w", err)
	}
	return &out, nil
}

// Update replaces a facility's details.
func (f *FacilityFacade) Update(ctx context.Context, id string, in models.FacilityInput) (*models.Facility, error) {
	var out models.Facility
	if err := f.client.DoJSON(ctx, facilityRequest(http.MethodPut, facilityPath(id), in), &out); err != nil {
		return nil, fmt.Errorf("update facility %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a facility.
func (f *FacilityFacade) Delete(ctx context.Context, id string) error {
	if err := f.client.DoJSON(ctx, facilityRequest(http.MethodDelete, facilityPath(id), nil), nil); err != nil {
		return fmt.Errorf("delete facility %s: %w", id, err)
	}
	return nil
}

// Schedule returns the facility's opening schedule between params.From and params.To.
func (f *FacilityFacade) Schedule(ctx context.Context, id string, params models.ScheduleParams) ([]models.ScheduleDay, error) {
	var days []models.ScheduleDay
	req := facilityRequest(http.MethodGet, facilityPath(id)+"/schedule", nil)
	req.Query = params.Values()
	if err := f.client.DoJSON(ctx, req, &days); err != nil {
		return nil, fmt.Errorf("facility %s schedule: %w", id, err)
	}
	return days, nil
}

func facilityPath(id string) string {
	return facilitiesPath + "/" + url.PathEscape(id)
}

func facilityRequest(method, path string, body any) apiclient.Request {
	return apiclient.Request{Method: method, Service: endpoints.Booking, Path: path, Body: body}
}
