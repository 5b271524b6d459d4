package transform

import (
	"slices"

	"github.com/archlens/archlens/pkg/model"
)

// =============================================================================
// Preset Definitions
// =============================================================================

// Preset is a named bundle of inclusion rules applied after user filters.
type Preset struct {
	ID          string
	Name        string
	Description string

	// DataTypes is the set of container types considered "data" types
	// (databases, caches, queues) by the data-flow rules.
	DataTypes []string

	// DataFlowOnly keeps only data containers and their direct peers.
	DataFlowOnly bool

	// ExternalInterfacesOnly keeps only containers with a direct edge to
	// an external actor.
	ExternalInterfacesOnly bool

	// Protocols is the protocol allow-list consulted by the data-flow
	// edge rule. Empty means every protocol passes.
	Protocols []string
}

// builtinPresets are the scenario presets shipped with the engine,
// keyed by ID. LookupPreset is the only reader.
var builtinPresets = map[string]Preset{
	"data-flow": {
		ID:           "data-flow",
		Name:         "Data flow",
		Description:  "Data stores and the containers that talk to them",
		DataTypes:    []string{"db", "database", "cache", "queue", "storage"},
		DataFlowOnly: true,
		Protocols:    []string{"SQL", "JDBC", "Redis", "AMQP", "Kafka", "HTTP", "gRPC"},
	},
	"external-interfaces": {
		ID:                     "external-interfaces",
		Name:                   "External interfaces",
		Description:            "Containers exposed to external actors",
		ExternalInterfacesOnly: true,
	},
}

// LookupPreset returns the preset registered under id.
// The second return value is false for unknown IDs.
func LookupPreset(id string) (Preset, bool) {
	p, ok := builtinPresets[id]
	return p, ok
}

// Presets returns all built-in presets sorted by ID.
func Presets() []Preset {
	out := make([]Preset, 0, len(builtinPresets))
	for _, p := range builtinPresets {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Preset) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// =============================================================================
// Preset Stage
// =============================================================================

// ApplyPreset applies the named preset's inclusion rules.
// Unknown or empty preset IDs are a no-op rather than an error; an
// unrecognized ID typically means the caller is ahead of this engine
// version, and degrading to the unfiltered view is the safer default.
func ApplyPreset(m *model.Model, s Subgraph, presetID string) Subgraph {
	if presetID == "" {
		return s
	}
	p, ok := LookupPreset(presetID)
	if !ok {
		return s
	}

	out := s
	if p.ExternalInterfacesOnly {
		out = keepExternalInterfaces(m, out)
	}
	if p.DataFlowOnly {
		out = keepDataFlow(m, out, p)
	}
	return out
}

// keepExternalInterfaces keeps a container only when it has a direct
// edge to an external actor. Non-container nodes are unaffected.
func keepExternalInterfaces(m *model.Model, s Subgraph) Subgraph {
	keep := make(map[string]bool, len(s.Nodes))
	for id, n := range s.Nodes {
		if n.Kind != model.KindContainer {
			keep[id] = true
			continue
		}
		for _, e := range m.Edges {
			var peer string
			switch id {
			case e.Source:
				peer = e.Target
			case e.Target:
				peer = e.Source
			default:
				continue
			}
			if pn, ok := m.Nodes[peer]; ok && pn.Kind == model.KindExternalActor {
				keep[id] = true
				break
			}
		}
	}
	return s.retain(keep)
}

// keepDataFlow keeps data-type containers unconditionally and other
// containers only when they have an edge to a data-type container. The
// surviving edge set is then narrowed further: with a protocol allow
// list, an edge survives only if its protocol is listed or one endpoint
// is a data-type container.
func keepDataFlow(m *model.Model, s Subgraph, p Preset) Subgraph {
	dataTypes := toSet(p.DataTypes)
	isData := func(id string) bool {
		n, ok := m.Nodes[id]
		return ok && n.Kind == model.KindContainer && dataTypes[n.ContainerType]
	}

	keep := make(map[string]bool, len(s.Nodes))
	for id, n := range s.Nodes {
		if n.Kind != model.KindContainer || isData(id) {
			keep[id] = true
			continue
		}
		for _, e := range m.Edges {
			if (e.Source == id && isData(e.Target)) || (e.Target == id && isData(e.Source)) {
				keep[id] = true
				break
			}
		}
	}

	out := s.retain(keep)
	if len(p.Protocols) == 0 {
		return out
	}

	allowed := toSet(p.Protocols)
	for id, e := range out.Edges {
		if allowed[e.Protocol] || isData(e.Source) || isData(e.Target) {
			continue
		}
		delete(out.Edges, id)
	}
	return out
}
