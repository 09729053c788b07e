// Package metrics provides the enable/disable switch and registry that
// back an Adaptor's optional metrics sink. Call InitRegistry once at
// startup to turn metrics on; New then returns a collector wired to that
// registry, or nil when metrics were never enabled, so callers can pass
// the result straight to adaptor.WithMetrics without a type switch — a
// nil adaptor.Metrics there falls back to the Adaptor's own no-op.
//
// The concrete Prometheus collector lives in pkg/metrics/prometheus,
// kept out of this package to avoid a direct dependency on the
// prometheus counter/histogram types at this layer: that subpackage
// registers its constructor here on import instead of this package
// importing it.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lattixfs/s3adaptor/pkg/adaptor"
)

var (
	mu        sync.Mutex
	registry  *prometheus.Registry
	construct func() adaptor.Metrics
)

// InitRegistry turns metrics collection on, using reg as the collector
// registry. Passing nil creates a fresh prometheus.NewRegistry().
// Safe to call more than once; the last call wins.
func InitRegistry(reg *prometheus.Registry) {
	mu.Lock()
	defer mu.Unlock()
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	registry = reg
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return registry != nil
}

// GetRegistry returns the active registry, or nil if metrics are disabled.
func GetRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// RegisterConstructor lets pkg/metrics/prometheus install its
// adaptor.Metrics constructor on import, without this package importing
// it back.
func RegisterConstructor(ctor func() adaptor.Metrics) {
	mu.Lock()
	defer mu.Unlock()
	construct = ctor
}

// New returns an adaptor.Metrics bound to the active registry, or nil if
// metrics are disabled or no constructor has registered itself yet.
func New() adaptor.Metrics {
	mu.Lock()
	ctor := construct
	enabled := registry != nil
	mu.Unlock()
	if !enabled || ctor == nil {
		return nil
	}
	return ctor()
}
