package capability

import (
	"context"
	"errors"
)

// Health status values reported by CheckHealth.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// HealthStatus is the result of a single provider health check.
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Healthy returns an ok health status.
func Healthy() HealthStatus {
	return HealthStatus{Status: StatusOK}
}

// Unhealthy returns an error health status carrying err's message.
func Unhealthy(err error) HealthStatus {
	return HealthStatus{Status: StatusError, Error: err.Error()}
}

// Provider is implemented by every backend integration. A provider's
// identity is the process-unique name assigned at registration; the
// provider itself only declares what it can do.
//
// Providers open their backend connections lazily on first use, so
// constructing a provider must never perform I/O. Close releases
// whatever the provider actually opened.
type Provider interface {
	// Capabilities returns the static capability set of this provider.
	Capabilities() []Capability

	// CheckHealth verifies the provider can reach its backend. It
	// returns a status rather than an error so aggregate checks can
	// collect per-provider outcomes without aborting.
	CheckHealth(ctx context.Context) HealthStatus

	// Close releases any connections the provider has opened.
	Close() error
}

// ErrUnsupported is returned by a capability operation the provider
// declares but cannot serve (for example a metrics backend without
// range-query support). Fan-out callers convert it into an explicit
// "unsupported" marker instead of treating it as a failure.
var ErrUnsupported = errors.New("operation not supported by this provider")

// IsUnsupported reports whether err is or wraps ErrUnsupported.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
