package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/venue-master/admin-console/pkg/endpoints"
)

// Request describes one logical call. Client.Do never mutates it.
type Request struct {
	Method  string
	Service endpoints.Service
	Path    string
	Query   url.Values
	// Body is JSON encoded when non-nil.
	Body   any
	Header http.Header
	// Anonymous requests carry no bearer token and bypass 401 recovery.
	// Login, register and refresh use it: a 401 there is not an expired session.
	Anonymous bool
}

// Response is a fully read upstream answer.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if v == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// attempt is the value passed through the send path. The original call is
// attempt 0; its one permitted replay is attempt 1. Copies are cheap and
// nothing below Do holds on to one.
type attempt struct {
	req   *Request
	url   string
	body  []byte
	n     int
	token string
}

func newAttempt(req *Request, resolver endpoints.Resolver) (attempt, error) {
	u := resolver.BaseURL(req.Service) + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	a := attempt{req: req, url: u}
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return attempt{}, fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		a.body = b
	}
	return a, nil
}

func (a attempt) replay() attempt {
	a.n = 1
	return a
}

func (a attempt) withToken(token string) attempt {
	a.token = token
	return a
}

func (a attempt) replayed() bool { return a.n > 0 }

func (a attempt) method() string {
	if a.req.Method == "" {
		return http.MethodGet
	}
	return a.req.Method
}

// httpRequest builds a fresh *http.Request; bodies are re-read per attempt.
func (a attempt) httpRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if a.body != nil {
		body = bytes.NewReader(a.body)
	}
	hr, err := http.NewRequestWithContext(ctx, a.method(), a.url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range a.req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	hr.Header.Set("Accept", "application/json")
	if a.body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		hr.Header.Set("Authorization", "Bearer "+a.token)
	}
	return hr, nil
}
