package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"scout/internal/capability"
	"scout/pkg/logging"
)

// Registry is the catalog of named providers. It maintains a derived
// capability index so that capability lookups are a map access instead
// of a scan over all providers.
//
// The registry mutates only at registration boundaries; dispatch-time
// access is read-only. All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]capability.Provider
	index     map[capability.Capability][]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		providers: make(map[string]capability.Provider),
		index:     make(map[capability.Capability][]string),
	}
}

// Register stores provider under name. Registering over an existing
// name replaces the previous provider: its capability bucket
// memberships are dropped along with it. Overwrites are logged as
// warnings, never errors.
func (r *Registry) Register(name string, provider capability.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		logging.Warn("Registry", "overwriting provider registration: %s", name)
	}
	r.providers[name] = provider
	r.rebuildIndexLocked()

	logging.Info("Registry", "registered provider %s with capabilities %v", name, provider.Capabilities())
}

// Unregister removes the named provider and its bucket memberships.
// It returns whether the provider existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return false
	}
	delete(r.providers, name)
	r.rebuildIndexLocked()

	logging.Info("Registry", "unregistered provider %s", name)
	return true
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (capability.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	return p, ok
}

// Names returns all registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProvidersFor returns the names of providers declaring the given
// capability, sorted. The result is a copy.
func (r *Registry) ProvidersFor(c capability.Capability) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.index[c]
	out := make([]string, len(bucket))
	copy(out, bucket)
	return out
}

// rebuildIndexLocked recomputes the capability index from the current
// provider set. The index is always re-derived in full, never patched
// incrementally, so it cannot drift from the registrations. Callers
// must hold the write lock.
func (r *Registry) rebuildIndexLocked() {
	index := make(map[capability.Capability][]string)
	for name, p := range r.providers {
		for _, c := range p.Capabilities() {
			index[c] = append(index[c], name)
		}
	}
	for c := range index {
		sort.Strings(index[c])
	}
	r.index = index
}

// CheckHealthAll runs every provider's health check concurrently and
// collects the results by provider name. A failing or panicking
// provider yields an error status for itself only; it never aborts the
// aggregate.
func (r *Registry) CheckHealthAll(ctx context.Context) map[string]capability.HealthStatus {
	r.mu.RLock()
	snapshot := make(map[string]capability.Provider, len(r.providers))
	for name, p := range r.providers {
		snapshot[name] = p
	}
	r.mu.RUnlock()

	results := make(map[string]capability.HealthStatus, len(snapshot))
	var resultsMu sync.Mutex
	var wg sync.WaitGroup

	for name, p := range snapshot {
		wg.Add(1)
		go func(name string, p capability.Provider) {
			defer wg.Done()
			status := checkOne(ctx, name, p)
			resultsMu.Lock()
			results[name] = status
			resultsMu.Unlock()
		}(name, p)
	}
	wg.Wait()

	return results
}

// checkOne runs a single health check with panic containment.
func checkOne(ctx context.Context, name string, p capability.Provider) (status capability.HealthStatus) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("Registry", nil, "health check panicked for %s: %v", name, rec)
			status = capability.HealthStatus{
				Status: capability.StatusError,
				Error:  fmt.Sprintf("health check panicked: %v", rec),
			}
		}
	}()
	return p.CheckHealth(ctx)
}

// Summary is the derived registry overview returned by StatusSummary.
type Summary struct {
	ProviderCount int                            `json:"providerCount"`
	Coverage      map[capability.Capability]int  `json:"coverage"`
	Uncovered     []capability.Capability        `json:"uncovered,omitempty"`
	Providers     map[string][]capability.Capability `json:"providers"`
}

// StatusSummary returns derived counts and capability coverage. It is a
// pure function of the current registrations.
func (r *Registry) StatusSummary() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Summary{
		ProviderCount: len(r.providers),
		Coverage:      make(map[capability.Capability]int),
		Providers:     make(map[string][]capability.Capability),
	}
	for name, p := range r.providers {
		s.Providers[name] = p.Capabilities()
	}
	for _, c := range capability.All() {
		n := len(r.index[c])
		s.Coverage[c] = n
		if n == 0 {
			s.Uncovered = append(s.Uncovered, c)
		}
	}
	return s
}

// Close closes every registered provider and empties the registry.
// Close errors are logged, not returned, since teardown must visit
// every provider.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, p := range r.providers {
		if err := p.Close(); err != nil {
			logging.Warn("Registry", "error closing provider %s: %v", name, err)
		}
	}
	r.providers = make(map[string]capability.Provider)
	r.rebuildIndexLocked()
}
