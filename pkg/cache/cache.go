// Package cache stores computed layouts and rendered previews.
//
// # Backends
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps JSON entries with an expiry under a directory,
//     by default the XDG cache dir
//   - [RedisCache] shares entries between machines through Redis
//
// All backends implement [Cache]. Backends that can drop every entry at
// once also implement [Clearer].
//
// # Keys
//
// A [Keyer] derives cache keys from a content hash and the options that
// influence the result, so a change in canvas size or spacing never hits
// a stale entry:
//
//	graphHash := cache.Hash(canonicalGraphJSON)
//	key := keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{Width: 600, Height: 600})
//
// [ScopedKeyer] prefixes every key, for isolating tenants or test runs
// that share one Redis instance.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLLayout is how long a computed layout stays cached. Layouts are a
	// pure function of their key, so the TTL only bounds disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered preview stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get returns (nil, false, nil) on a miss. A ttl of zero stores the entry
// without expiry. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can remove all their entries.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// LayoutKeyOpts lists every layout setting that changes the output.
type LayoutKeyOpts struct {
	Width, Height      float64
	HSpacing, VSpacing float64
	EventW, EventH     float64
	GatewayW, GatewayH float64
	TaskW, TaskH       float64
	Uniform            bool
	ThickStrokeWidth   float64
}

// ArtifactKeyOpts lists the render settings of a preview.
type ArtifactKeyOpts struct {
	Format   string
	Detailed bool
	Pinned   bool
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout of the graph with the given
	// content hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendered preview of the input with
	// the given content hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
