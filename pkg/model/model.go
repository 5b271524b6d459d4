package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Model.Validate] when a node has an
	// empty identifier. All nodes must have non-empty IDs.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Build] when two nodes share an ID.
	// Node IDs must be unique within a model.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDanglingEdge is returned by [Model.Validate] when an edge
	// references a node that does not exist in the model.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrUnknownIndexEntry is returned by [Model.Validate] when the
	// container→component index references a node that does not exist.
	ErrUnknownIndexEntry = errors.New("component index references unknown node")
)

// =============================================================================
// Model
// =============================================================================

// Model is the full architecture graph handed to the engine.
//
// Nodes and Edges are keyed by ID. Components maps a container ID to the
// component IDs it owns; it drives container-level view filtering. The
// engine never mutates a Model.
type Model struct {
	Nodes      map[string]Node     `json:"-" bson:"-"`
	Edges      map[string]Edge     `json:"-" bson:"-"`
	Components map[string][]string `json:"components,omitempty" bson:"components,omitempty"`
}

// New creates an empty model with initialized maps.
func New() *Model {
	return &Model{
		Nodes:      make(map[string]Node),
		Edges:      make(map[string]Edge),
		Components: make(map[string][]string),
	}
}

// Build constructs a model from node and edge slices and validates it.
// Returns ErrDuplicateNodeID for repeated node IDs; edge IDs default to
// "source->target#i" when empty.
func Build(nodes []Node, edges []Edge) (*Model, error) {
	m := New()
	for _, n := range nodes {
		if n.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, exists := m.Nodes[n.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		m.Nodes[n.ID] = n
	}
	for i, e := range edges {
		if e.ID == "" {
			e.ID = fmt.Sprintf("%s->%s#%d", e.Source, e.Target, i)
		}
		m.Edges[e.ID] = e
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NodeCount returns the number of nodes in the model.
func (m *Model) NodeCount() int { return len(m.Nodes) }

// EdgeCount returns the number of edges in the model.
func (m *Model) EdgeCount() int { return len(m.Edges) }

// ComponentsOf returns the component IDs indexed under a container.
// Returns nil when the container owns no components.
func (m *Model) ComponentsOf(containerID string) []string {
	return m.Components[containerID]
}

// SortedNodeIDs returns all node IDs in ascending order. Deterministic
// iteration order matters for layout and cache-key computation.
func (m *Model) SortedNodeIDs() []string {
	ids := make([]string, 0, len(m.Nodes))
	for id := range m.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SortedEdgeIDs returns all edge IDs in ascending order.
func (m *Model) SortedEdgeIDs() []string {
	ids := make([]string, 0, len(m.Edges))
	for id := range m.Edges {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Validate checks structural invariants: non-empty node IDs, edge
// endpoints referencing existing nodes, and index entries referencing
// existing nodes. A model that fails Validate violates the input
// provider's contract and must not be handed to the engine.
func (m *Model) Validate() error {
	for id := range m.Nodes {
		if id == "" {
			return ErrInvalidNodeID
		}
	}
	for id, e := range m.Edges {
		if _, ok := m.Nodes[e.Source]; !ok {
			return fmt.Errorf("%w: edge %s source %s", ErrDanglingEdge, id, e.Source)
		}
		if _, ok := m.Nodes[e.Target]; !ok {
			return fmt.Errorf("%w: edge %s target %s", ErrDanglingEdge, id, e.Target)
		}
	}
	for containerID, comps := range m.Components {
		if _, ok := m.Nodes[containerID]; !ok {
			return fmt.Errorf("%w: container %s", ErrUnknownIndexEntry, containerID)
		}
		for _, compID := range comps {
			if _, ok := m.Nodes[compID]; !ok {
				return fmt.Errorf("%w: component %s under %s", ErrUnknownIndexEntry, compID, containerID)
			}
		}
	}
	return nil
}

// =============================================================================
// Serialization
// =============================================================================

// fileModel is the node-link JSON representation. Maps are flattened to
// sorted slices for deterministic output.
type fileModel struct {
	Nodes      []Node              `json:"nodes"`
	Edges      []Edge              `json:"edges"`
	Components map[string][]string `json:"components,omitempty"`
}

// Marshal serializes a model to pretty-printed JSON bytes.
// Nodes and edges are sorted by ID for deterministic output.
func Marshal(m *Model) ([]byte, error) {
	out := fileModel{Components: m.Components}
	for _, id := range m.SortedNodeIDs() {
		out.Nodes = append(out.Nodes, m.Nodes[id])
	}
	for _, id := range m.SortedEdgeIDs() {
		out.Edges = append(out.Edges, m.Edges[id])
	}
	return json.MarshalIndent(out, "", "  ")
}

// Unmarshal deserializes JSON bytes into a validated model.
func Unmarshal(data []byte) (*Model, error) {
	var in fileModel
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	m, err := Build(in.Nodes, in.Edges)
	if err != nil {
		return nil, err
	}
	m.Components = in.Components
	if m.Components == nil {
		m.Components = make(map[string][]string)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Read decodes a JSON model from an io.Reader.
func Read(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return Unmarshal(data)
}

// ReadFile reads a JSON file and returns the decoded model.
func ReadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes a model to a JSON file with 0644 permissions.
func WriteFile(m *Model, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
