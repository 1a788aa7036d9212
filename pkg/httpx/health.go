package httpx

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

const probeTimeout = 2 * time.Second

// HealthChecker is satisfied by any dependency that exposes a Ping method
// (RedisClient, EventBus and URLProbe all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to probe in the readiness endpoint.
type HealthChecks struct {
	Redis    HealthChecker
	EventBus HealthChecker
	// Upstreams maps a service name (auth, gateway, booking) to its probe.
	Upstreams map[string]HealthChecker
}

type healthResponse struct {
	Status    string            `json:"status"`
	Redis     string            `json:"redis"`
	EventBus  string            `json:"event_bus"`
	Upstreams map[string]string `json:"upstreams,omitempty"`
}

// LivenessHandler reports that the process is serving requests.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthHandler returns an http.HandlerFunc that probes all registered
// HealthCheckers concurrently and reports degraded status if any of them fail.
// Nil checkers are skipped.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Redis: "ok", EventBus: "ok"}
		if len(checks.Upstreams) > 0 {
			resp.Upstreams = make(map[string]string, len(checks.Upstreams))
		}

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		probe := func(c HealthChecker, set func(string)) {
			if c == nil {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				state := "ok"
				if err := c.Ping(ctx); err != nil {
					state = "unreachable"
				}
				mu.Lock()
				set(state)
				if state != "ok" {
					resp.Status = "degraded"
				}
				mu.Unlock()
			}()
		}

		probe(checks.Redis, func(s string) { resp.Redis = s })
		probe(checks.EventBus, func(s string) { resp.EventBus = s })
		for _, name := range sortedKeys(checks.Upstreams) {
			probe(checks.Upstreams[name], func(s string) { resp.Upstreams[name] = s })
		}
		wg.Wait()

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

func sortedKeys(m map[string]HealthChecker) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// URLProbe checks an upstream service by issuing GET URL and expecting a 2xx.
type URLProbe struct {
	URL    string
	Client *http.Client
}

// Ping implements HealthChecker.
func (p URLProbe) Ping(ctx context.Context) error {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, http.NoBody)
	if err != nil {
		return fmt.Errorf("probe %s: %w", p.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", p.URL, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe %s: status %d", p.URL, resp.StatusCode)
	}
	return nil
}
