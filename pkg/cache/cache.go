// Package cache stores rendered artifacts keyed by document content.
//
// Rendering the same document revision twice produces identical bytes, so
// the HTTP server caches SVG output under a key derived from a hash of the
// view and the render options. Backends:
//
//   - [NullCache]: caching disabled
//   - [MemoryCache]: in-process map with TTL and a size bound
//   - [FileCache]: one file per entry under a directory (CLI renders)
//   - [RedisCache]: shared Redis instance via go-redis
//
// [Instrument] wraps any backend and reports hits, misses and writes to the
// observability cache hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Get reports a miss as (nil, false, nil); an error means the backend could
// not be consulted. A TTL of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RenderKeyOpts are the inputs besides the document that change render output.
type RenderKeyOpts struct {
	Format      string `json:"format"`
	Title       string `json:"title,omitempty"`
	Highlight   string `json:"highlight,omitempty"`
	Interactive bool   `json:"interactive,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// RenderKey returns the key for a rendered artifact of the document
	// whose content hash is docHash.
	RenderKey(docHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("render", docHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so several servers can share one
// Redis instance without seeing each other's entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer defaults to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey implements Keyer.
func (k *ScopedKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, opts)
}
