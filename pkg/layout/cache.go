package layout

import (
	"strings"

	"github.com/archlens/archlens/pkg/observability"
	"github.com/archlens/archlens/pkg/transform"
)

// DefaultCacheSize is the bounded number of memoized layout results.
const DefaultCacheSize = 10

// Cache memoizes layout results keyed by algorithm and the sorted
// filtered node/edge identity sets. Eviction is strictly insertion
// ordered: when full, the oldest entry goes first, regardless of how
// recently it was hit.
//
// Manual layouts bypass the cache entirely. Their positions can be
// mutated externally between calls without changing the node/edge
// identity set, so an identity-derived key would serve stale positions.
//
// Cache is owned by a single engine instance and is not safe for
// concurrent use; a multi-threaded port must give each worker its own
// cache or treat entries as immutable values shared by copy.
type Cache struct {
	engine  *Engine
	max     int
	entries map[string]Result
	order   []string
	hits    int
	misses  int
}

// Stats exposes hit/miss counters and the current entry count for
// diagnostics.
type Stats struct {
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
	Entries int `json:"entries"`
}

// NewCache wraps an engine with a bounded layout cache.
// A non-positive max falls back to DefaultCacheSize.
func NewCache(engine *Engine, max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{
		engine:  engine,
		max:     max,
		entries: make(map[string]Result, max),
	}
}

// Engine returns the wrapped layout engine.
func (c *Cache) Engine() *Engine { return c.engine }

// Compute returns the layout for the subgraph, serving a memoized
// result when the algorithm and filtered identity sets are unchanged.
// The second return value reports whether the result came from cache.
func (c *Cache) Compute(s transform.Subgraph, algo Algorithm, existing map[string]Point) (Result, bool) {
	if algo == AlgorithmManual {
		return c.engine.Compute(s, algo, existing), false
	}

	key := Key(algo, s)
	if r, ok := c.entries[key]; ok {
		c.hits++
		observability.Cache().OnHit(key)
		return r, true
	}

	c.misses++
	observability.Cache().OnMiss(key)
	r := c.engine.Compute(s, algo, existing)
	c.insert(key, r)
	return r, false
}

// insert stores a result, evicting the oldest entry when at capacity.
func (c *Cache) insert(key string, r Result) {
	if len(c.entries) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		observability.Cache().OnEvict(oldest)
	}
	c.entries[key] = r
	c.order = append(c.order, key)
}

// Stats returns the current hit/miss counters and entry count.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// Clear resets the cache contents and counters.
func (c *Cache) Clear() {
	c.entries = make(map[string]Result, c.max)
	c.order = nil
	c.hits = 0
	c.misses = 0
}

// Key builds the cache key for an algorithm and filtered subgraph. The
// key folds in every identity the layout depends on: the effective
// algorithm name, the sorted node IDs, and the sorted edge IDs.
func Key(algo Algorithm, s transform.Subgraph) string {
	var b strings.Builder
	b.WriteString(string(algo.Normalize()))
	b.WriteByte('|')
	b.WriteString(strings.Join(s.SortedNodeIDs(), ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(s.SortedEdgeIDs(), ","))
	return b.String()
}
