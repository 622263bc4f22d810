// Package cache provides pluggable caching for constructed structure
// graphs and rendered artifacts.
//
// # Backends
//
// Four implementations of the Cache interface are available:
//
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - MongoCache: document-store cache with server-side expiry
//   - NullCache: no-op, caching disabled
//
// # Keys
//
// Keyer builds cache keys that incorporate every input affecting the
// result, so a change in construction options never serves a stale
// graph. Use ScopedKeyer to namespace keys per user or deployment.
package cache

import (
	"context"
	"time"
)

// TTLs for the two cached value classes. Graphs are deterministic in
// their inputs so they keep for a long time; rendered artifacts are
// cheap to regenerate.
const (
	TTLGraph  = 30 * 24 * time.Hour
	TTLRender = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with TTL support.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// miss. Errors are reserved for backend failures, not misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GraphKeyOpts captures every construction option that changes the
// resulting graph. Two runs with equal opts over the same structure
// hash produce bit-identical graphs, so they may share a cache entry.
type GraphKeyOpts struct {
	Cutoff       float64 `json:"cutoff"`
	MaxNeighbors int     `json:"max_neighbors"`
	Decay        string  `json:"decay"`
	Voronoi      bool    `json:"voronoi"`
}

// RenderKeyOpts captures rendering options for artifact cache keys.
type RenderKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the two cached value classes.
type Keyer interface {
	// GraphKey keys a constructed graph by the hash of its source
	// structure plus the construction options.
	GraphKey(structureHash string, opts GraphKeyOpts) string

	// RenderKey keys a rendered artifact by the graph hash plus
	// rendering options.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a constructed graph.
func (k *DefaultKeyer) GraphKey(structureHash string, opts GraphKeyOpts) string {
	return hashKey("graph", structureHash, opts)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
