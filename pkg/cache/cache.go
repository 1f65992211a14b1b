// Package cache provides pluggable caching for computed layouts and
// rendered artifacts.
//
// Layout calculation is pure, so results can be memoized aggressively: the
// cache key is derived from the content hash of the serialized chart plus
// the strategy name and options, meaning any edit to the family graph
// naturally invalidates its entries.
//
// Three backends implement the same interface: [FileCache] for CLI usage,
// [RedisCache] for shared/server deployments, and [NullCache] to disable
// caching entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached entry class. Layouts are cheap to recompute;
// artifact rendering may shell out to external tools, so artifacts live
// longer.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts carries everything that influences a layout calculation
// besides the chart itself. The fields mirror the layout options so that a
// changed option always produces a different key.
type LayoutKeyOpts struct {
	Strategy             string
	RootID               string
	HorizontalSpacing    float64
	VerticalSpacing      float64
	NodeWidth            float64
	NodeHeight           float64
	MaxGenerations       int
	Direction            string
	ShowGenerationLabels bool
}

// ArtifactKeyOpts carries the render parameters for artifact caching.
type ArtifactKeyOpts struct {
	Format string // "svg", "png", "pdf", "dot", "json"
	Style  string
	Scale  float64
}

// Keyer generates cache keys. Implementations must be deterministic: equal
// inputs yield equal keys across processes and versions.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, derived from the
	// chart content hash and the calculation options.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from the
	// layout content hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation, hashing all inputs
// into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
