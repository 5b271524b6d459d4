package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when one deployment serves several projects whose
// models need separate cache namespaces.
//
// Example usage:
//
//	// Project-specific keys
//	projKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
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

// TransformKey generates a prefixed key for a transform response.
func (k *ScopedKeyer) TransformKey(modelHash string, opts TransformKeyOpts) string {
	return k.prefix + k.inner.TransformKey(modelHash, opts)
}

// TraceKey generates a prefixed key for a trace response.
func (k *ScopedKeyer) TraceKey(modelHash, op, from, to string) string {
	return k.prefix + k.inner.TraceKey(modelHash, op, from, to)
}
