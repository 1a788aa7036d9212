package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/apiclient/apiclienttest"
	"github.com/venue-master/admin-console/pkg/app"
	"github.com/venue-master/admin-console/services/venue/domain/models"
)

func newRouter(rec *apiclienttest.Recorder) http.Handler {
	r := chi.NewRouter()
	VenueRoutes(r, &app.Application{Clients: rec.Source()})
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestVenueRoutes_List(t *testing.T) {
	rec := &apiclienttest.Recorder{Reply: []models.Venue{{ID: "v1", Name: "Riverside"}}}
	w := serve(newRouter(rec), http.MethodGet, "/venues?limit=100", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"v1","name":"Riverside"}]`, w.Body.String())
	assert.Equal(t, "/v1/venues", rec.Last().Path)
	assert.Equal(t, "100", rec.Last().Query.Get("limit"))
}

func TestVenueRoutes_ListEmptyIsArray(t *testing.T) {
	w := serve(newRouter(&apiclienttest.Recorder{}), http.MethodGet, "/venues", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestVenueRoutes_ListBadLimit(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	w := serve(newRouter(rec), http.MethodGet, "/venues?limit=lots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, rec.Requests)
}

func TestVenueRoutes_Create(t *testing.T) {
	rec := &apiclienttest.Recorder{Reply: models.Venue{ID: "v9", Name: "Northgate"}}
	w := serve(newRouter(rec), http.MethodPost, "/venues", `{"name":"Northgate","city":"Austin"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.MethodPost, rec.Last().Method)
	assert.Equal(t, models.VenueInput{Name: "Northgate", City: "Austin"}, rec.Last().Body)
}

func TestVenueRoutes_CreateInvalid(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	w := serve(newRouter(rec), http.MethodPost, "/venues", `{"email":"not-an-email"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"name"`)
	assert.Empty(t, rec.Requests)
}

func TestVenueRoutes_UpdateAndDelete(t *testing.T) {
	rec := &apiclienttest.Recorder{Reply: models.Venue{ID: "v1", Name: "Riverside"}}
	h := newRouter(rec)

	w := serve(h, http.MethodPut, "/venues/v1", `{"name":"Riverside"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/v1/venues/v1", rec.Last().Path)

	w = serve(h, http.MethodDelete, "/venues/v1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.MethodDelete, rec.Last().Method)
}

func TestVenueRoutes_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"auth expired", &apiclient.AuthExpiredError{Cause: apiclient.ErrNoRefreshToken}, http.StatusUnauthorized},
		{"not found", &apiclient.HTTPError{Status: http.StatusNotFound, Message: "venue not found"}, http.StatusNotFound},
		{"upstream down", &apiclient.NetworkError{Err: errors.New("connection refused")}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(&apiclienttest.Recorder{Err: tt.err}), http.MethodGet, "/venues/v1", "")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestVenueRoutes_NoSession(t *testing.T) {
	r := chi.NewRouter()
	VenueRoutes(r, &app.Application{})
	w := serve(r, http.MethodGet, "/venues", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "sign in")
}
