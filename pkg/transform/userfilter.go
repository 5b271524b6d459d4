package transform

import "github.com/archlens/archlens/pkg/model"

// FilterOptions are the user-selected container-type and technology
// filters. Empty sets mean "no filter" for that dimension.
type FilterOptions struct {
	ContainerTypes  []string `json:"container_types,omitempty"`
	TechnologyStack []string `json:"technology_stack,omitempty"`
}

// IsEmpty reports whether no filter is active.
func (f FilterOptions) IsEmpty() bool {
	return len(f.ContainerTypes) == 0 && len(f.TechnologyStack) == 0
}

// ApplyUserFilters removes nodes not matching the active filters.
//
// A node is excluded when it declares a container type outside the
// allowed set, or when it declares technologies and none of them
// intersect the allowed stack. Nodes with no container type pass the
// type filter; nodes with zero declared technologies pass the stack
// filter. External actors are always retained regardless of filters.
//
// No-op when both filter sets are empty.
func ApplyUserFilters(s Subgraph, f FilterOptions) Subgraph {
	if f.IsEmpty() {
		return s
	}

	types := toSet(f.ContainerTypes)
	stack := toSet(f.TechnologyStack)

	keep := make(map[string]bool, len(s.Nodes))
	for id, n := range s.Nodes {
		if n.Kind == model.KindExternalActor {
			keep[id] = true
			continue
		}
		if len(types) > 0 && n.ContainerType != "" && !types[n.ContainerType] {
			continue
		}
		if len(stack) > 0 && len(n.Technologies) > 0 && !n.HasTechnology(stack) {
			continue
		}
		keep[id] = true
	}
	return s.retain(keep)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
