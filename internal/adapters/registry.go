package adapters

import (
	"sync"

	"github.com/Afeez-Ola/flowplay/internal/domain"
	"github.com/Afeez-Ola/flowplay/internal/ports"
)

// Destination bundles the matcher and, where the provider has a write API,
// the materializer for one destination provider.
type Destination struct {
	Matcher      ports.CatalogMatcher
	Materializer ports.PlaylistMaterializer // nil for lookup-only providers

	// RequiresAuth marks destinations whose catalog API needs a credential.
	RequiresAuth bool
}

// DestinationRegistry maps destination providers to their Destination pairs.
// Adding a provider means registering a pair, not editing a conditional
// chain. It is safe for concurrent use.
type DestinationRegistry struct {
	mu           sync.RWMutex
	destinations map[domain.Provider]Destination
}

// NewDestinationRegistry creates an empty registry.
func NewDestinationRegistry() *DestinationRegistry {
	return &DestinationRegistry{
		destinations: make(map[domain.Provider]Destination),
	}
}

// Register adds a destination, keyed by its matcher's provider.
func (r *DestinationRegistry) Register(d Destination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destinations[d.Matcher.Provider()] = d
}

// Get returns the destination for the given provider, or an
// UnsupportedDestination error naming it.
func (r *DestinationRegistry) Get(p domain.Provider) (Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.destinations[p]
	if !ok {
		return Destination{}, domain.NewUnsupportedDestination(p.DisplayName())
	}
	return d, nil
}

// Available returns the display names of all registered destinations.
func (r *DestinationRegistry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.destinations))
	for p := range r.destinations {
		names = append(names, p.DisplayName())
	}
	return names
}
