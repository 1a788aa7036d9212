// Package remote implements the user facade over the gateway.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/services/user/domain/models"
)

const usersPath = "/v1/users"

// UserFacade issues user administration calls.
type UserFacade struct {
	client apiclient.Doer
}

// NewUserFacade returns a UserFacade sending through client.
func NewUserFacade(client apiclient.Doer) *UserFacade {
	return &UserFacade{client: client}
}

// List returns users matching params.
func (f *UserFacade) List(ctx context.Context, params models.ListParams) ([]models.User, error) {
	var out []models.User
	req := userRequest(http.MethodGet, usersPath, nil)
	req.Query = params.Values()
	if err := f.client.DoJSON(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// Me returns the account behind the current access token.
func (f *UserFacade) Me(ctx context.Context) (*models.User, error) {
	return f.one(ctx, http.MethodGet, usersPath+"/me", nil, "get current user")
}

// Get returns one user.
func (f *UserFacade) Get(ctx context.Context, id string) (*models.User, error) {
	return f.one(ctx, http.MethodGet, userPath(id), nil, "get user "+id)
}

// Update replaces a user's profile fields.
func (f *UserFacade) Update(ctx context.Context, id string, in models.UserUpdate) (*models.User, error) {
	return f.one(ctx, http.MethodPut, userPath(id), in, "update user "+id)
}

// UpdateRoles replaces a user's roles.
func (f *UserFacade) UpdateRoles(ctx context.Context, id string, roles []string) (*models.User, error) {
	return f.one(ctx, http.MethodPatch, userPath(id)+"/roles", models.RolesUpdate{Roles: roles}, "update user "+id+" roles")
}

// Activate re-enables a user account.
func (f *UserFacade) Activate(ctx context.Context, id string) (*models.User, error) {
	return f.one(ctx, http.MethodPatch, userPath(id)+"/activate", nil, "activate user "+id)
}

// Deactivate disables a user account.
func (f *UserFacade) Deactivate(ctx context.Context, id string) (*models.User, error) {
	return f.one(ctx, http.MethodPatch, userPath(id)+"/deactivate", nil, "deactivate user "+id)
}

func (f *UserFacade) one(ctx context.Context, method, path string, body any, op string) (*models.User, error) {
	var out models.User
	if err := f.client.DoJSON(ctx, userRequest(method, path, body), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

func userPath(id string) string {
	return usersPath + "/" + url.PathEscape(id)
}

func userRequest(method, path string, body any) apiclient.Request {
	return apiclient.Request{Method: method, Service: endpoints.Gateway, Path: path, Body: body}
}
