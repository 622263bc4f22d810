package cache

// ScopedKeyer wraps a Keyer with a prefix so that separate deployments
// or users sharing one Redis or Mongo instance get isolated namespaces.
//
// Example usage:
//
//	// Per-user keys on a shared backend
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for constructed-graph caching.
func (k *ScopedKeyer) GraphKey(structureHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(structureHash, opts)
}

// RenderKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
