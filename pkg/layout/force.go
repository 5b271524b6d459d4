package layout

import (
	"math"

	"github.com/archlens/archlens/pkg/transform"
)

// alphaMin is where the geometric alpha decay is considered settled.
// With the default 150 iterations the per-step decay works out to
// roughly 0.955, matching a simulation that cools from 1.0 to ~0.001.
const alphaMin = 0.001

// force runs the deterministic force-directed simulation.
//
// Start positions are seeded from a hash of each node ID, never from a
// RNG, so identical node-ID sets always start identically and, given
// identical edges, finish identically. Each iteration applies forces in
// a fixed order - centering, pairwise repulsion, springs - then
// integrates positions with velocity damping and decays alpha. The
// order is part of the cross-run determinism contract and must not be
// rearranged.
func (e *Engine) force(s transform.Subgraph) Result {
	ids := s.SortedNodeIDs()
	edgeIDs := s.SortedEdgeIDs()

	n := len(ids)
	index := make(map[string]int, n)
	px := make([]float64, n)
	py := make([]float64, n)
	vx := make([]float64, n)
	vy := make([]float64, n)

	for i, id := range ids {
		index[id] = i
		px[i] = hashUnit(id+":x") * e.opts.Width
		py[i] = hashUnit(id+":y") * e.opts.Height
	}

	centerX, centerY := e.opts.Width/2, e.opts.Height/2
	alpha := 1.0
	decay := math.Pow(alphaMin, 1.0/float64(e.opts.Iterations))

	for iter := 0; iter < e.opts.Iterations; iter++ {
		// Centering force.
		for i := 0; i < n; i++ {
			vx[i] += (centerX - px[i]) * e.opts.CenterStrength * alpha
			vy[i] += (centerY - py[i]) * e.opts.CenterStrength * alpha
		}

		// Pairwise repulsion with inverse-square falloff.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy, dist := separation(px[i]-px[j], py[i]-py[j])
				push := -e.opts.ChargeStrength * alpha / (dist * dist)
				ux, uy := dx/dist, dy/dist
				vx[i] += ux * push
				vy[i] += uy * push
				vx[j] -= ux * push
				vy[j] -= uy * push
			}
		}

		// Spring force toward the link rest distance, split between the
		// two endpoints.
		for _, id := range edgeIDs {
			edge := s.Edges[id]
			si, ti := index[edge.Source], index[edge.Target]
			dx, dy, dist := separation(px[ti]-px[si], py[ti]-py[si])
			correction := (dist - e.opts.LinkDistance) / dist * e.opts.SpringFactor * alpha
			vx[si] += dx * correction / 2
			vy[si] += dy * correction / 2
			vx[ti] -= dx * correction / 2
			vy[ti] -= dy * correction / 2
		}

		// Integrate, then damp velocities and cool the simulation.
		for i := 0; i < n; i++ {
			px[i] += vx[i]
			py[i] += vy[i]
			vx[i] *= e.opts.VelocityDamping
			vy[i] *= e.opts.VelocityDamping
		}
		alpha *= decay
	}

	positions := make(map[string]Point, n)
	for i, id := range ids {
		positions[id] = Point{X: px[i], Y: py[i]}
	}
	return Result{Positions: positions, Bounds: e.computeBounds(s, positions)}
}

// separation guards against coincident points: two nodes hashed onto the
// same spot get a fixed unit offset instead of a divide-by-zero, keeping
// the nudge deterministic.
func separation(dx, dy float64) (float64, float64, float64) {
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		return 1, 0, 1
	}
	return dx, dy, dist
}
