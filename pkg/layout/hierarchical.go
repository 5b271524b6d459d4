package layout

import (
	"math"
	"slices"

	"github.com/archlens/archlens/pkg/transform"
)

// hierarchical computes a layered, rank-based layout.
//
// Nodes touched by at least one edge are assigned ranks top-to-bottom
// using a longest-path topological traversal (each node sits one rank
// below its deepest parent). Rows are centered horizontally on the
// viewport with at least NodeSpacingX between neighbors and RankSpacingY
// between rows. Nodes with no edges at all are placed afterward on a
// ring around the viewport center.
func (e *Engine) hierarchical(s transform.Subgraph) Result {
	ranks, connected := assignRanks(s)

	// Group ranked nodes into rows, sorted for determinism.
	rows := make(map[int][]string)
	maxRank := 0
	for id, rank := range ranks {
		rows[rank] = append(rows[rank], id)
		maxRank = max(maxRank, rank)
	}
	for _, row := range rows {
		slices.Sort(row)
	}

	positions := make(map[string]Point, s.NodeCount())
	centerX := e.opts.Width / 2

	y := e.opts.Margin
	for rank := 0; rank <= maxRank; rank++ {
		row := rows[rank]
		if len(row) == 0 {
			continue
		}
		rowWidth, rowHeight := 0.0, 0.0
		for i, id := range row {
			size := SizeFor(s.Nodes[id].Kind)
			rowWidth += size.Width
			if i > 0 {
				rowWidth += e.opts.NodeSpacingX
			}
			rowHeight = max(rowHeight, size.Height)
		}

		x := centerX - rowWidth/2
		for _, id := range row {
			size := SizeFor(s.Nodes[id].Kind)
			positions[id] = Point{X: x + size.Width/2, Y: y + rowHeight/2}
			x += size.Width + e.opts.NodeSpacingX
		}
		y += rowHeight + e.opts.RankSpacingY
	}

	e.placeRing(s, connected, positions)

	return Result{Positions: positions, Bounds: e.computeBounds(s, positions)}
}

// assignRanks computes layer assignments for every node that appears as
// an edge endpoint, using Kahn's algorithm with longest-path placement:
// sources sit at rank 0 and each node is pushed one past its deepest
// parent. Nodes trapped in a cycle never reach zero in-degree and keep
// their default rank of 0, which still yields a usable layout.
//
// The second return value is the set of connected node IDs; everything
// outside it has no edges and is placed on the ring instead.
func assignRanks(s transform.Subgraph) (map[string]int, map[string]bool) {
	connected := make(map[string]bool)
	outgoing := make(map[string][]string)
	inDegree := make(map[string]int)
	for _, id := range s.SortedEdgeIDs() {
		e := s.Edges[id]
		connected[e.Source] = true
		connected[e.Target] = true
		outgoing[e.Source] = append(outgoing[e.Source], e.Target)
		inDegree[e.Target]++
	}

	ranks := make(map[string]int, len(connected))
	var queue []string
	for id := range connected {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
		ranks[id] = 0
	}
	slices.Sort(queue)

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range outgoing[curr] {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return ranks, connected
}

// placeRing arranges nodes without any edges on a circle centered on the
// viewport: radius min(width,height)/2 minus the ring padding, evenly
// spaced by angle in sorted-ID order.
func (e *Engine) placeRing(s transform.Subgraph, connected map[string]bool, positions map[string]Point) {
	var isolated []string
	for id := range s.Nodes {
		if !connected[id] {
			isolated = append(isolated, id)
		}
	}
	if len(isolated) == 0 {
		return
	}
	slices.Sort(isolated)

	centerX, centerY := e.opts.Width/2, e.opts.Height/2
	radius := min(e.opts.Width, e.opts.Height)/2 - e.opts.RingPadding
	step := 2 * math.Pi / float64(len(isolated))
	for i, id := range isolated {
		angle := step * float64(i)
		positions[id] = Point{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
}
