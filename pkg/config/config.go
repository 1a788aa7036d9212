package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

const (
	defaultSessionAuthKey       = "dev-auth-key-32-bytes-long!!!"
	defaultSessionEncryptionKey = "dev-encryption-key-32-bytes!!"
)

// Config holds all configuration for the console backend and the operator CLI.
type Config struct {
	// Upstream services
	BaseURL         string        `conf:"default:http://localhost,env:BASE_URL"`
	GatewayPort     int           `conf:"default:8080,env:GATEWAY_PORT"`
	AuthPort        int           `conf:"default:8081,env:AUTH_PORT"`
	BookingPort     int           `conf:"default:8083,env:BOOKING_PORT"`
	UpstreamTimeout time.Duration `conf:"default:15s,env:UPSTREAM_TIMEOUT"`
	RefreshTimeout  time.Duration `conf:"default:10s,env:REFRESH_TIMEOUT"`

	// Console server
	Port int `conf:"default:3000,env:PORT"`

	// Redis
	RedisURL string `conf:"default:redis://localhost:6379,env:REDIS_URL"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Session
	SessionAuthKey       string        `conf:"default:dev-auth-key-32-bytes-long!!!,env:SESSION_AUTH_KEY,noprint"`
	SessionEncryptionKey string        `conf:"default:dev-encryption-key-32-bytes!!,env:SESSION_ENCRYPTION_KEY,noprint"`
	SessionTTL           time.Duration `conf:"default:24h,env:SESSION_TTL"`
	SessionIdleTimeout   time.Duration `conf:"default:30m,env:SESSION_IDLE_TIMEOUT"`

	// CORS: comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:venue-admin,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_EXPORTER_OTLP_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`

	// CLI
	CredentialsFile string `conf:"env:CREDENTIALS_FILE"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ListenAddr returns the console server listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CredentialsPath returns the CLI credentials file location. CREDENTIALS_FILE
// wins; otherwise the file lives under the user config directory.
func (c *Config) CredentialsPath() (string, error) {
	if c.CredentialsFile != "" {
		return c.CredentialsFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "venue-admin", "credentials.yaml"), nil
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if len(cfg.SessionAuthKey) < 32 || cfg.SessionAuthKey == defaultSessionAuthKey {
		errs = append(errs, fmt.Sprintf(
			"SESSION_AUTH_KEY must be a non-default key of at least 32 bytes (got %d); generate with: openssl rand -base64 32",
			len(cfg.SessionAuthKey),
		))
	}

	if len(cfg.SessionEncryptionKey) < 16 || cfg.SessionEncryptionKey == defaultSessionEncryptionKey {
		errs = append(errs, fmt.Sprintf(
			"SESSION_ENCRYPTION_KEY must be a non-default key of at least 16 bytes (got %d); generate with: openssl rand -base64 16",
			len(cfg.SessionEncryptionKey),
		))
	}

	if strings.TrimSpace(cfg.CORSAllowedOrigins) == "*" {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins in production")
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
