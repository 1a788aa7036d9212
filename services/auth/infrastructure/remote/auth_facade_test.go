package remote

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/apiclient/apiclienttest"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/services/auth/domain/models"
)

func TestAuthFacade_Login(t *testing.T) {
	rec := &apiclienttest.Recorder{Reply: map[string]any{
		"accessToken":  "tok1",
		"refreshToken": "r1",
		"expiresIn":    900,
		"user":         map[string]any{"id": "u1", "email": "ops@venue-master.io", "roles": []string{"ADMIN"}},
	}}
	creds := models.Credentials{Email: "ops@venue-master.io", Password: "pw"}

	res, err := NewAuthFacade(rec).Login(context.Background(), creds)
	require.NoError(t, err)

	req := rec.Last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, endpoints.Auth, req.Service)
	assert.Equal(t, "/v1/auth/login", req.Path)
	assert.True(t, req.Anonymous)
	assert.Equal(t, creds, req.Body)

	assert.Equal(t, "tok1", res.AccessToken)
	assert.Equal(t, "r1", res.RefreshToken)
	assert.Equal(t, 900, res.ExpiresIn)
	assert.True(t, res.User.IsAdmin())
}

func TestAuthFacade_Register(t *testing.T) {
	rec := &apiclienttest.Recorder{Reply: map[string]any{"accessToken": "tok1", "user": map[string]any{"id": "u2"}}}
	reg := models.Registration{Email: "new@venue-master.io", Password: "longenough", FirstName: "Sam", LastName: "Lee"}

	res, err := NewAuthFacade(rec).Register(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "/v1/auth/register", rec.Last().Path)
	assert.True(t, rec.Last().Anonymous)
	assert.Equal(t, "u2", res.User.ID)
}

func TestAuthFacade_Refresh(t *testing.T) {
	rec := &apiclienttest.Recorder{Reply: map[string]string{"accessToken": "tok2", "refreshToken": "r2"}}

	tokens, err := NewAuthFacade(rec).Refresh(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, apiclient.Tokens{AccessToken: "tok2", RefreshToken: "r2"}, tokens)
	assert.Equal(t, apiclient.RefreshPath, rec.Last().Path)
	assert.Equal(t, map[string]string{"refreshToken": "r1"}, rec.Last().Body)
}

func TestAuthFacade_PropagatesErrors(t *testing.T) {
	upstream := &apiclient.HTTPError{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	rec := &apiclienttest.Recorder{Err: upstream}

	_, err := NewAuthFacade(rec).Login(context.Background(), models.Credentials{})
	var he *apiclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.True(t, errors.Is(err, upstream))
}
