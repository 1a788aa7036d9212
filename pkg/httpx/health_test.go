package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/venue-master/admin-console/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type readiness struct {
	Status    string            `json:"status"`
	Redis     string            `json:"redis"`
	EventBus  string            `json:"event_bus"`
	Upstreams map[string]string `json:"upstreams"`
}

func serveHealth(t *testing.T, checks httpx.HealthChecks) (int, readiness) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))
	var resp readiness
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{
		Redis:     &stubChecker{},
		EventBus:  &stubChecker{},
		Upstreams: map[string]httpx.HealthChecker{"auth": &stubChecker{}, "gateway": &stubChecker{}},
	})

	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Status != "ok" || resp.Upstreams["auth"] != "ok" || resp.Upstreams["gateway"] != "ok" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHealthHandler_RedisDown(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{
		Redis:    &stubChecker{err: errors.New("timeout")},
		EventBus: &stubChecker{},
	})

	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if resp.Status != "degraded" || resp.Redis != "unreachable" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHealthHandler_EventBusDown(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{
		Redis:    &stubChecker{},
		EventBus: &stubChecker{err: errors.New("closed")},
	})

	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if resp.Status != "degraded" || resp.EventBus != "unreachable" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHealthHandler_UpstreamDown(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{
		Redis:    &stubChecker{},
		EventBus: &stubChecker{},
		Upstreams: map[string]httpx.HealthChecker{
			"auth":    &stubChecker{},
			"booking": &stubChecker{err: errors.New("connection refused")},
		},
	})

	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if resp.Upstreams["booking"] != "unreachable" || resp.Upstreams["auth"] != "ok" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHealthHandler_NilCheckersSkipped(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{})
	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ok with no checkers, got %d %+v", code, resp)
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.HealthHandler(httpx.HealthChecks{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}

func TestLivenessHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.LivenessHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestURLProbe(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	ctx := context.Background()
	if err := (httpx.URLProbe{URL: healthy.URL + "/healthz", Client: healthy.Client()}).Ping(ctx); err != nil {
		t.Errorf("healthy probe: %v", err)
	}
	if err := (httpx.URLProbe{URL: failing.URL + "/healthz"}).Ping(ctx); err == nil {
		t.Error("expected error for 503 upstream")
	}
	if err := (httpx.URLProbe{URL: "http://127.0.0.1:1/healthz"}).Ping(ctx); err == nil {
		t.Error("expected error for unreachable upstream")
	}
}
