package layout

import (
	"github.com/archlens/archlens/pkg/transform"
)

// =============================================================================
// Geometry
// =============================================================================

// Point is a node center position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the axis-aligned box enclosing all positioned nodes,
// including their half-dimensions and the outer margin.
type Bounds struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	MaxX   float64 `json:"max_x"`
	MaxY   float64 `json:"max_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result holds computed center positions and the enclosing bounds.
// A Result is created fresh per computation and reused verbatim on a
// cache hit, so callers must treat it as read-only.
type Result struct {
	Positions map[string]Point `json:"positions"`
	Bounds    Bounds           `json:"bounds"`
}

// emptyResult is returned for zero-node subgraphs: an empty position map
// and zero-sized bounds, never an error.
func emptyResult() Result {
	return Result{Positions: map[string]Point{}}
}

// =============================================================================
// Engine
// =============================================================================

// Engine computes layouts for filtered subgraphs. An Engine is stateless
// and safe for concurrent use; wrap it in a [Cache] for memoization.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given tuning options.
// Zero option fields fall back to the documented defaults.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.WithDefaults()}
}

// Options returns the engine's effective tuning options.
func (e *Engine) Options() Options { return e.opts }

// Compute lays out the subgraph with the selected algorithm.
//
// The existing map is consulted only by manual layout; manual with no
// usable positions falls back to hierarchical. Orthogonal and unknown
// algorithms degrade to hierarchical. An empty subgraph yields an empty
// result for every algorithm.
func (e *Engine) Compute(s transform.Subgraph, algo Algorithm, existing map[string]Point) Result {
	if s.NodeCount() == 0 {
		return emptyResult()
	}
	if algo == AlgorithmManual && len(existing) == 0 {
		algo = AlgorithmHierarchical
	}
	switch algo.Normalize() {
	case AlgorithmForce:
		return e.force(s)
	case AlgorithmManual:
		return e.manual(s, existing)
	default:
		return e.hierarchical(s)
	}
}

// computeBounds derives the enclosing box from final center positions,
// per-node half-dimensions, and the outer margin.
func (e *Engine) computeBounds(s transform.Subgraph, positions map[string]Point) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	first := true
	var b Bounds
	for id, p := range positions {
		size := SizeFor(s.Nodes[id].Kind)
		left, right := p.X-size.Width/2, p.X+size.Width/2
		top, bottom := p.Y-size.Height/2, p.Y+size.Height/2
		if first {
			b.MinX, b.MaxX, b.MinY, b.MaxY = left, right, top, bottom
			first = false
			continue
		}
		b.MinX = min(b.MinX, left)
		b.MaxX = max(b.MaxX, right)
		b.MinY = min(b.MinY, top)
		b.MaxY = max(b.MaxY, bottom)
	}
	b.MinX -= e.opts.Margin
	b.MinY -= e.opts.Margin
	b.MaxX += e.opts.Margin
	b.MaxY += e.opts.Margin
	b.Width = b.MaxX - b.MinX
	b.Height = b.MaxY - b.MinY
	return b
}

// manual reuses externally supplied positions verbatim. Nodes without an
// entry are pinned to the exact viewport center; no simulation runs.
func (e *Engine) manual(s transform.Subgraph, existing map[string]Point) Result {
	center := Point{X: e.opts.Width / 2, Y: e.opts.Height / 2}
	positions := make(map[string]Point, s.NodeCount())
	for _, id := range s.SortedNodeIDs() {
		if p, ok := existing[id]; ok {
			positions[id] = p
		} else {
			positions[id] = center
		}
	}
	return Result{Positions: positions, Bounds: e.computeBounds(s, positions)}
}
