package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-master/admin-console/pkg/apiclient"
)

// routeDoer answers each path with a list of the configured length.
type routeDoer struct {
	mu     sync.Mutex
	counts map[string]int
	fail   map[string]error
	seen   []apiclient.Request
}

func (d *routeDoer) DoJSON(_ context.Context, req apiclient.Request, out any) error {
	d.mu.Lock()
	d.seen = append(d.seen, req)
	d.mu.Unlock()

	if err := d.fail[req.Path]; err != nil {
		return err
	}
	items := make([]json.RawMessage, d.counts[req.Path])
	for i := range items {
		items[i] = json.RawMessage(`{}`)
	}
	raw, _ := json.Marshal(items)
	return json.Unmarshal(raw, out)
}

func TestSummarize_Counts(t *testing.T) {
	d := &routeDoer{counts: map[string]int{
		"/v1/venues":     3,
		"/v1/facilities": 12,
		"/v1/bookings":   100,
		"/v1/users":      0,
	}}
	s, err := Summarize(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Venues)
	assert.Equal(t, 12, s.Facilities)
	assert.Equal(t, 100, s.Bookings)
	assert.Equal(t, 0, s.Users)
	assert.True(t, s.Capped(s.Bookings))

	require.Len(t, d.seen, 4)
	for _, req := range d.seen {
		assert.Equal(t, "100", req.Query.Get("limit"), req.Path)
		assert.True(t, strings.HasPrefix(req.Path, "/v1/"))
	}
}

func TestSummarize_FirstErrorWins(t *testing.T) {
	expired := &apiclient.AuthExpiredError{Cause: errors.New("refresh token revoked")}
	d := &routeDoer{
		counts: map[string]int{},
		fail:   map[string]error{"/v1/users": expired},
	}
	_, err := Summarize(context.Background(), d)
	require.Error(t, err)
	assert.True(t, apiclient.IsAuthExpired(err))
}

func TestSummarize_UpstreamStatus(t *testing.T) {
	d := &routeDoer{
		counts: map[string]int{},
		fail:   map[string]error{"/v1/facilities": &apiclient.HTTPError{Status: http.StatusForbidden}},
	}
	_, err := Summarize(context.Background(), d)
	var httpErr *apiclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
}
