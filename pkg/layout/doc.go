// Package layout computes 2D positions for filtered architecture graphs.
//
// The engine supports three real algorithms plus one placeholder:
//
//   - hierarchical: layered, rank-based placement for directed graphs
//     (rank assignment via longest-path topological traversal, rows
//     centered on the viewport, disconnected nodes arranged in a ring)
//   - force: a deterministic force-directed simulation (centering,
//     pairwise repulsion, and spring forces under a geometrically
//     decaying alpha)
//   - manual: verbatim reuse of externally supplied positions
//   - orthogonal: a placeholder that delegates to hierarchical until a
//     real orthogonal router exists
//
// All positions are node centers; converting to top-left corners is the
// render layer's job.
//
// # Determinism
//
// Layout output is a pure function of the filtered node/edge identity
// set and the tuning options. The force simulation seeds positions from
// a polynomial hash of each node ID (see hash.go) and iterates nodes
// and edges in sorted-ID order, so repeated runs are bit-identical.
// Determinism is what makes [Cache] keys sound and what allows the
// simulation to be recomputed on a background worker without shared
// state.
//
// # Caching
//
// [Cache] wraps an [Engine] with a bounded FIFO memo keyed by the
// algorithm and the sorted node/edge ID sets. Manual layouts bypass the
// cache: their positions can be mutated externally between calls without
// changing the identity set, which would poison any identity-derived key.
package layout
