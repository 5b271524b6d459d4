package transform

import "github.com/archlens/archlens/pkg/model"

// ViewLevel is the abstraction depth being rendered.
type ViewLevel string

// View levels, from coarsest to finest.
const (
	LevelContext   ViewLevel = "context"
	LevelContainer ViewLevel = "container"
	LevelComponent ViewLevel = "component"
	LevelCode      ViewLevel = "code"
)

// Valid reports whether the view level is one of the recognized values.
func (v ViewLevel) Valid() bool {
	switch v {
	case LevelContext, LevelContainer, LevelComponent, LevelCode:
		return true
	}
	return false
}

// Selection carries the container/component the user has drilled into.
// Empty IDs mean no selection at that level.
type Selection struct {
	ContainerID string
	ComponentID string
}

// ByViewLevel restricts the subgraph to the nodes valid for the given
// abstraction level.
//
// Context keeps containers and external actors. Container view with a
// selected container keeps that container, its indexed components, and
// any external actor with an edge touching the container or one of its
// components; with no selection it behaves exactly like context view
// (this asymmetry is intentional and load-bearing for callers that
// toggle selection). Component and code views keep only the selected
// component; code view is reserved for future code-level detail.
//
// Edges are retained only when both endpoints survive.
func ByViewLevel(m *model.Model, s Subgraph, level ViewLevel, sel Selection) Subgraph {
	switch level {
	case LevelContainer:
		if sel.ContainerID == "" {
			return contextView(s)
		}
		return containerView(m, s, sel.ContainerID)
	case LevelComponent, LevelCode:
		return componentView(s, sel.ComponentID)
	default:
		return contextView(s)
	}
}

// contextView keeps all container and external-actor nodes.
func contextView(s Subgraph) Subgraph {
	keep := make(map[string]bool)
	for id, n := range s.Nodes {
		if n.Kind == model.KindContainer || n.Kind == model.KindExternalActor {
			keep[id] = true
		}
	}
	return s.retain(keep)
}

// containerView keeps the selected container, its indexed components,
// and external actors adjacent to any of them. The adjacency check runs
// over the full model's edges, which is why external actors can reappear
// here even if an earlier pass removed their edges.
func containerView(m *model.Model, s Subgraph, containerID string) Subgraph {
	keep := map[string]bool{}
	if s.Has(containerID) {
		keep[containerID] = true
	}
	inScope := map[string]bool{containerID: true}
	for _, compID := range m.ComponentsOf(containerID) {
		inScope[compID] = true
		if s.Has(compID) {
			keep[compID] = true
		}
	}

	for id, n := range s.Nodes {
		if n.Kind != model.KindExternalActor {
			continue
		}
		for _, e := range m.Edges {
			if (e.Source == id && inScope[e.Target]) || (e.Target == id && inScope[e.Source]) {
				keep[id] = true
				break
			}
		}
	}
	return s.retain(keep)
}

// componentView keeps only the selected component. With no selection the
// result is empty; there is no context fallback at this level.
func componentView(s Subgraph, componentID string) Subgraph {
	keep := map[string]bool{}
	if componentID != "" && s.Has(componentID) {
		keep[componentID] = true
	}
	return s.retain(keep)
}
