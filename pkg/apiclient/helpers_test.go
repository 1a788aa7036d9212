package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/pkg/tokenstore"
)

// upstream fakes the auth, gateway and booking services on one listener.
type upstream struct {
	srv          *httptest.Server
	mux          *http.ServeMux
	refreshCalls atomic.Int32

	mu           sync.Mutex
	refreshBody  []string
	authHeaders  []string
	refreshReply func(w http.ResponseWriter, r *http.Request)
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{mux: http.NewServeMux()}
	u.mux.HandleFunc("POST "+RefreshPath, func(w http.ResponseWriter, r *http.Request) {
		u.refreshCalls.Add(1)
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		u.mu.Lock()
		u.refreshBody = append(u.refreshBody, body.RefreshToken)
		reply := u.refreshReply
		u.mu.Unlock()
		if reply == nil {
			writeJSON(w, http.StatusOK, map[string]string{"accessToken": "tok2"})
			return
		}
		reply(w, r)
	})
	u.srv = httptest.NewServer(u.mux)
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) setRefreshReply(h func(w http.ResponseWriter, r *http.Request)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.refreshReply = h
}

// recordAuth stores the Authorization header of a resource request.
func (u *upstream) recordAuth(r *http.Request) string {
	h := r.Header.Get("Authorization")
	u.mu.Lock()
	u.authHeaders = append(u.authHeaders, h)
	u.mu.Unlock()
	return h
}

func (u *upstream) seenAuth() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.authHeaders...)
}

func (u *upstream) resolver(t *testing.T) endpoints.Resolver {
	t.Helper()
	parsed, err := url.Parse(u.srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	return endpoints.New(endpoints.Settings{
		BaseURL:     "http://" + parsed.Hostname(),
		GatewayPort: port,
		AuthPort:    port,
		BookingPort: port,
	})
}

func (u *upstream) client(t *testing.T, store tokenstore.Store, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(u.srv.Client())}, opts...)
	return New(u.resolver(t), store, opts...)
}

// tokenGated answers 200 for "Bearer <valid>" and 401 otherwise.
func tokenGated(u *upstream, valid string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if u.recordAuth(r) != "Bearer "+valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]string{{"id": "v1", "name": "Riverside Courts"}})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func seededStore(t *testing.T, values map[tokenstore.Key]string) *tokenstore.Memory {
	t.Helper()
	s := tokenstore.NewMemory()
	require.NoError(t, tokenstore.SetAll(context.Background(), s, values))
	return s
}

func storeValue(t *testing.T, s tokenstore.Store, k tokenstore.Key) (string, bool) {
	t.Helper()
	v, ok, err := s.Get(context.Background(), k)
	require.NoError(t, err)
	return v, ok
}

func listVenues() Request {
	return Request{Method: http.MethodGet, Service: endpoints.Gateway, Path: "/v1/venues"}
}

// expiryRecorder counts AuthExpiredHook invocations.
type expiryRecorder struct {
	calls atomic.Int32
}

func (e *expiryRecorder) hook(context.Context, error) {
	e.calls.Add(1)
}
