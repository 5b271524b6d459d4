package cache

import (
	"context"
	"time"
)

// NullCache reports a miss for every lookup. Selecting the "none"
// backend in the config wires it in, which forces every transform and
// trace request through the engine.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache creates the disabled-cache backend.
func NewNullCache() Cache { return &NullCache{} }

// Get reports a miss.
func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(context.Context, string) error { return nil }

// Close is a no-op.
func (c *NullCache) Close() error { return nil }
