package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/venue-master/admin-console/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestClientOptions(t *testing.T) {
	opts, err := clientOptions("redis://:secret@cache.internal:6380/2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache.internal:6380" {
		t.Errorf("Addr = %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Errorf("DB = %d, want 2", opts.DB)
	}
	if opts.Password != "secret" {
		t.Errorf("Password not parsed")
	}
	if opts.PoolSize != 20 || opts.ReadTimeout != 2*time.Second {
		t.Errorf("pool settings not applied: %+v", opts)
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestRedisClient_CloseNil(t *testing.T) {
	if err := (&RedisClient{}).Close(); err != nil {
		t.Fatalf("Close on unconnected client: %v", err)
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	if err := rc.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if rc.Client() == nil {
		t.Fatal("expected non-nil underlying client")
	}
	if rc.Name() != "redis" {
		t.Fatalf("Name() = %q", rc.Name())
	}
}
