// Package cache provides the service-boundary response cache for
// ArchLens.
//
// This cache sits outside the engine: the serve command and CLI use it
// to memoize serialized render-graph responses keyed by model hash and
// transform options. It is distinct from the engine's internal layout
// cache (pkg/layout.Cache), whose size bound and insertion-order
// eviction are part of the engine contract.
//
// Backends:
//
//   - [FileCache]: on-disk entries for CLI usage
//   - [MemoryCache]: in-process expirable LRU
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the backend-agnostic byte cache.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer
// =============================================================================

// TransformKeyOpts is the option fingerprint folded into transform
// response keys. Every option that changes the rendered output must
// appear here, otherwise two distinct responses collide.
type TransformKeyOpts struct {
	ViewLevel       string   `json:"view_level"`
	ContainerID     string   `json:"container_id,omitempty"`
	ComponentID     string   `json:"component_id,omitempty"`
	ContainerTypes  []string `json:"container_types,omitempty"`
	TechnologyStack []string `json:"technology_stack,omitempty"`
	Preset          string   `json:"preset,omitempty"`
	ChangesOnly     bool     `json:"changes_only,omitempty"`
	Algorithm       string   `json:"algorithm"`
	ZoomEnabled     bool     `json:"zoom_enabled,omitempty"`
	ZoomScale       float64  `json:"zoom_scale,omitempty"`

	// Focus and highlight change node/edge opacity and color, so the
	// full option set participates, not just the node or mode.
	FocusEnabled       bool     `json:"focus_enabled,omitempty"`
	FocusNodeID        string   `json:"focus_node_id,omitempty"`
	FocusDimmedOpacity float64  `json:"focus_dimmed_opacity,omitempty"`
	HighlightMode      string   `json:"highlight_mode,omitempty"`
	HighlightNodeIDs   []string `json:"highlight_node_ids,omitempty"`
	HighlightEdgeIDs   []string `json:"highlight_edge_ids,omitempty"`

	// ManualPositions carries user-dragged coordinates when the manual
	// algorithm is in effect; for every other algorithm they are
	// ignored by the engine and stay out of the key.
	ManualPositions map[string][2]float64 `json:"manual_positions,omitempty"`
}

// Keyer generates cache keys for the response types ArchLens stores.
type Keyer interface {
	// TransformKey generates a key for a transform response, derived
	// from the model content hash and the option fingerprint.
	TransformKey(modelHash string, opts TransformKeyOpts) string

	// TraceKey generates a key for a trace response.
	TraceKey(modelHash, op, from, to string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TransformKey generates a key for a transform response.
func (k *DefaultKeyer) TransformKey(modelHash string, opts TransformKeyOpts) string {
	return hashKey("transform", modelHash, opts)
}

// TraceKey generates a key for a trace response.
func (k *DefaultKeyer) TraceKey(modelHash, op, from, to string) string {
	return hashKey("trace", modelHash, op, from, to)
}
