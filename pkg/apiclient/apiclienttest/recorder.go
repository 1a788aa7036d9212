// Package apiclienttest provides a recording apiclient.Doer for facade tests.
package apiclienttest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/venue-master/admin-console/pkg/apiclient"
)

// Recorder captures every request and answers with Reply, encoded as JSON
// into the caller's out value. Err, when set, is returned instead.
type Recorder struct {
	mu       sync.Mutex
	Requests []apiclient.Request
	Reply    any
	Err      error
}

// DoJSON implements apiclient.Doer.
func (r *Recorder) DoJSON(_ context.Context, req apiclient.Request, out any) error {
	r.mu.Lock()
	r.Requests = append(r.Requests, req)
	reply, err := r.Reply, r.Err
	r.mu.Unlock()

	if err != nil {
		return err
	}
	if out == nil || reply == nil {
		return nil
	}
	data, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Last returns the most recent request.
func (r *Recorder) Last() apiclient.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Requests) == 0 {
		return apiclient.Request{}
	}
	return r.Requests[len(r.Requests)-1]
}

// Source returns a request-to-client resolver that always yields r, for
// handler tests that bypass the console session.
func (r *Recorder) Source() func(*http.Request) (apiclient.Doer, error) {
	return func(*http.Request) (apiclient.Doer, error) { return r, nil }
}
