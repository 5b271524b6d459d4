// Package trace answers dependency-tracing queries over the full,
// unfiltered architecture model.
//
// Traces run breadth-first over the complete graph rather than the
// filtered subgraph: a highlight should follow a dependency chain even
// through nodes the current view hides. The resulting node sets feed
// path highlighting in the render layer.
package trace

import (
	"slices"

	"github.com/archlens/archlens/pkg/model"
)

// Tracer precomputes adjacency over a model for repeated queries.
// A Tracer never mutates the model; rebuild it when the model changes.
type Tracer struct {
	m        *model.Model
	incoming map[string][]string // target → sources
	outgoing map[string][]string // source → targets
	adjacent map[string][]string // undirected neighbors
}

// New builds a tracer over the model. Adjacency lists are sorted so
// traversal order, and therefore path choice in [Tracer.Between], is
// deterministic.
func New(m *model.Model) *Tracer {
	t := &Tracer{
		m:        m,
		incoming: make(map[string][]string),
		outgoing: make(map[string][]string),
		adjacent: make(map[string][]string),
	}
	for _, id := range m.SortedEdgeIDs() {
		e := m.Edges[id]
		t.outgoing[e.Source] = append(t.outgoing[e.Source], e.Target)
		t.incoming[e.Target] = append(t.incoming[e.Target], e.Source)
		t.adjacent[e.Source] = append(t.adjacent[e.Source], e.Target)
		t.adjacent[e.Target] = append(t.adjacent[e.Target], e.Source)
	}
	for _, adj := range []map[string][]string{t.incoming, t.outgoing, t.adjacent} {
		for id := range adj {
			slices.Sort(adj[id])
		}
	}
	return t
}

// Upstream returns every node the start node transitively depends on
// being called by: a breadth-first walk following edges backward. The
// result always contains the start node itself.
func (t *Tracer) Upstream(nodeID string) map[string]bool {
	return t.flood(nodeID, t.incoming)
}

// Downstream returns every node transitively reachable by following
// edges forward from the start node, including the start node.
func (t *Tracer) Downstream(nodeID string) map[string]bool {
	return t.flood(nodeID, t.outgoing)
}

// flood is the shared breadth-first traversal: visited is seeded with
// the start node and neighbors come from the given adjacency map.
func (t *Tracer) flood(start string, adj map[string][]string) map[string]bool {
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adj[curr] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// Between returns the nodes on a shortest undirected path from a to b,
// found by breadth-first search with parent pointers. Between(a, a)
// returns {a}; an unreachable b yields an empty set.
func (t *Tracer) Between(a, b string) map[string]bool {
	if a == b {
		return map[string]bool{a: true}
	}

	parent := map[string]string{a: a}
	queue := []string{a}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range t.adjacent[curr] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = curr
			if next == b {
				return walkBack(parent, a, b)
			}
			queue = append(queue, next)
		}
	}
	return map[string]bool{}
}

// walkBack reconstructs the path by following parent pointers from b to a.
func walkBack(parent map[string]string, a, b string) map[string]bool {
	path := map[string]bool{}
	for curr := b; ; curr = parent[curr] {
		path[curr] = true
		if curr == a {
			return path
		}
	}
}

// EdgesWithin returns the IDs of every edge whose source and target are
// both contained in the node set, sorted for deterministic output. This
// derives the highlighted-edge set from a traced node set.
func (t *Tracer) EdgesWithin(nodes map[string]bool) []string {
	var ids []string
	for id, e := range t.m.Edges {
		if nodes[e.Source] && nodes[e.Target] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
