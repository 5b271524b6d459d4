package transform

// ChangesOnly restricts the subgraph to elements carrying a pending
// change. Nodes survive only with a non-empty changeset status. Edges
// survive when both endpoints survive — deliberately, an edge's own
// changeset status does not save it: a changed edge between unchanged
// nodes would dangle, and every stage keeps the subgraph free of
// dangling references. Changed edges therefore appear only when both
// endpoints are themselves in the changeset.
func ChangesOnly(s Subgraph) Subgraph {
	keep := make(map[string]bool, len(s.Nodes))
	for id, n := range s.Nodes {
		if n.Change.InChangeset() {
			keep[id] = true
		}
	}
	return s.retain(keep)
}
