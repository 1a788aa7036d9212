// Package remote implements the auth facade over the auth service.
// Every call is anonymous: a 401 from login means bad credentials.
package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/services/auth/domain/models"
)

const (
	loginPath    = "/v1/auth/login"
	registerPath = "/v1/auth/register"
)

// AuthFacade issues the auth service calls.
type AuthFacade struct {
	client apiclient.Doer
}

// NewAuthFacade returns an AuthFacade sending through client.
func NewAuthFacade(client apiclient.Doer) *AuthFacade {
	return &AuthFacade{client: client}
}

// Login exchanges credentials for tokens and the operator profile.
func (f *AuthFacade) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := f.client.DoJSON(ctx, authRequest(loginPath, creds), &res); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &res, nil
}

// Register creates an account and signs it in.
func (f *AuthFacade) Register(ctx context.Context, reg models.Registration) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := f.client.DoJSON(ctx, authRequest(registerPath, reg), &res); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &res, nil
}

// Refresh exchanges a refresh token for a new access token. It satisfies
// apiclient.Refresher.
func (f *AuthFacade) Refresh(ctx context.Context, refreshToken string) (apiclient.Tokens, error) {
	var tokens apiclient.Tokens
	req := authRequest(apiclient.RefreshPath, map[string]string{"refreshToken": refreshToken})
	if err := f.client.DoJSON(ctx, req, &tokens); err != nil {
		return apiclient.Tokens{}, fmt.Errorf("refresh: %w", err)
	}
	return tokens, nil
}

func authRequest(path string, body any) apiclient.Request {
	return apiclient.Request{
		Method:    http.MethodPost,
		Service:   endpoints.Auth,
		Path:      path,
		Body:      body,
		Anonymous: true,
	}
}
