// Package endpoints resolves the logical upstream services (auth, gateway,
// booking) to base URLs built from one host and a per-service port.
package endpoints

import (
	"strconv"
	"strings"

	"github.com/venue-master/admin-console/pkg/config"
)

// Service is a logical upstream service name.
type Service string

const (
	Auth    Service = "auth"
	Gateway Service = "gateway"
	Booking Service = "booking"
)

// Defaults applied when a setting is empty or zero.
const (
	DefaultBaseURL     = "http://localhost"
	DefaultGatewayPort = 8080
	DefaultAuthPort    = 8081
	DefaultBookingPort = 8083
)

// Settings holds the overridable host and ports.
type Settings struct {
	BaseURL     string
	GatewayPort int
	AuthPort    int
	BookingPort int
}

// Resolver maps services to base URLs. The zero value resolves to the defaults.
type Resolver struct {
	settings Settings
}

// New returns a Resolver for s with defaults filled in.
func New(s Settings) Resolver {
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.GatewayPort <= 0 {
		s.GatewayPort = DefaultGatewayPort
	}
	if s.AuthPort <= 0 {
		s.AuthPort = DefaultAuthPort
	}
	if s.BookingPort <= 0 {
		s.BookingPort = DefaultBookingPort
	}
	return Resolver{settings: s}
}

// FromConfig builds a Resolver from the application config.
func FromConfig(cfg *config.Config) Resolver {
	return New(Settings{
		BaseURL:     cfg.BaseURL,
		GatewayPort: cfg.GatewayPort,
		AuthPort:    cfg.AuthPort,
		BookingPort: cfg.BookingPort,
	})
}

// BaseURL returns "<host>:<port>" for svc. Unknown names resolve to the gateway.
func (r Resolver) BaseURL(svc Service) string {
	s := r.settings
	if s.BaseURL == "" {
		s = New(s).settings
	}
	return s.BaseURL + ":" + strconv.Itoa(s.port(svc))
}

// Services lists every known service in a stable order.
func Services() []Service {
	return []Service{Auth, Gateway, Booking}
}

func (s Settings) port(svc Service) int {
	switch svc {
	case Auth:
		return s.AuthPort
	case Booking:
		return s.BookingPort
	default:
		return s.GatewayPort
	}
}
