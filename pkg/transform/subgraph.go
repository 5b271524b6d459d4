package transform

import (
	"slices"

	"github.com/archlens/archlens/pkg/model"
)

// Subgraph is the node/edge subset flowing between filter stages.
// It borrows node and edge values from the source model; stages build
// new maps rather than mutating their input.
type Subgraph struct {
	Nodes map[string]model.Node
	Edges map[string]model.Edge
}

// FromModel creates the initial subgraph covering the whole model.
func FromModel(m *model.Model) Subgraph {
	s := Subgraph{
		Nodes: make(map[string]model.Node, len(m.Nodes)),
		Edges: make(map[string]model.Edge, len(m.Edges)),
	}
	for id, n := range m.Nodes {
		s.Nodes[id] = n
	}
	for id, e := range m.Edges {
		s.Edges[id] = e
	}
	return s
}

// NodeCount returns the number of surviving nodes.
func (s Subgraph) NodeCount() int { return len(s.Nodes) }

// EdgeCount returns the number of surviving edges.
func (s Subgraph) EdgeCount() int { return len(s.Edges) }

// Has reports whether a node survived filtering.
func (s Subgraph) Has(id string) bool {
	_, ok := s.Nodes[id]
	return ok
}

// SortedNodeIDs returns the surviving node IDs in ascending order.
func (s Subgraph) SortedNodeIDs() []string {
	ids := make([]string, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SortedEdgeIDs returns the surviving edge IDs in ascending order.
func (s Subgraph) SortedEdgeIDs() []string {
	ids := make([]string, 0, len(s.Edges))
	for id := range s.Edges {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// retain returns a copy of s limited to the nodes in keep, with edges
// re-filtered so both endpoints survive. Every stage funnels through
// here, which is what guarantees the no-dangling-edges invariant.
func (s Subgraph) retain(keep map[string]bool) Subgraph {
	out := Subgraph{
		Nodes: make(map[string]model.Node, len(keep)),
		Edges: make(map[string]model.Edge),
	}
	for id, n := range s.Nodes {
		if keep[id] {
			out.Nodes[id] = n
		}
	}
	for id, e := range s.Edges {
		if keep[e.Source] && keep[e.Target] {
			out.Edges[id] = e
		}
	}
	return out
}
