package layout

import (
	"maps"
	"slices"
	"sync"

	kcerrors "github.com/kinlab/kinchart/pkg/errors"
)

// Built-in strategy names.
const (
	StrategyPedigree   = "pedigree"
	StrategyOrthogonal = "orthogonal"
	StrategyVertical   = "vertical"
	StrategyHorizontal = "horizontal"
	StrategyFan        = "fan"
	StrategyTimeline   = "timeline"
)

// Registry is a name-keyed dispatch table over stateless strategy
// instances. Registration is expected at startup; reads are guarded so
// concurrent lookups from multiple rendering contexts are safe.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry pre-populated with the six built-in
// strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(&PedigreeStrategy{})
	r.Register(&OrthogonalStrategy{})
	r.Register(&VerticalStrategy{})
	r.Register(&HorizontalStrategy{})
	r.Register(&FanStrategy{})
	r.Register(&TimelineStrategy{})
	return r
}

// Register adds a strategy under its own name, replacing any previous
// entry. Custom strategies may be registered under arbitrary names.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Name()] = s
}

// Get returns the strategy registered under name.
// The error carries the requested name for unknown strategies.
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	if !ok {
		return nil, kcerrors.New(kcerrors.ErrCodeStrategyNotFound, "layout strategy %q not found", name)
	}
	return s, nil
}

// Names returns all registered strategy names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.strategies))
}

// defaultRegistry backs the package-level convenience functions.
var defaultRegistry = NewRegistry()

// Default returns the shared registry holding the built-in strategies.
func Default() *Registry { return defaultRegistry }

// Get looks up a strategy in the default registry.
func Get(name string) (Strategy, error) { return defaultRegistry.Get(name) }

// Register adds a strategy to the default registry.
func Register(s Strategy) { defaultRegistry.Register(s) }

// Names lists the default registry's strategy names in sorted order.
func Names() []string { return defaultRegistry.Names() }
