package transform

import (
	"testing"

	"github.com/archlens/archlens/pkg/model"
)

// buildModel constructs a validated model or fails the test.
func buildModel(t *testing.T, nodes []model.Node, edges []model.Edge, components map[string][]string) *model.Model {
	t.Helper()
	m, err := model.Build(nodes, edges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if components != nil {
		m.Components = components
		if err := m.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
	}
	return m
}

// c4Model is a model spanning all view levels: an external actor, two
// containers, and two components indexed under the api container.
func c4Model(t *testing.T) *model.Model {
	t.Helper()
	return buildModel(t,
		[]model.Node{
			{ID: "user", Kind: model.KindExternalActor},
			{ID: "api", Kind: model.KindContainer, ContainerType: "web", Technologies: []string{"go"}},
			{ID: "db", Kind: model.KindContainer, ContainerType: "db", Technologies: []string{"postgresql"}},
			{ID: "api.auth", Kind: model.KindComponent, Technologies: []string{"go"}},
			{ID: "api.orders", Kind: model.KindComponent, Technologies: []string{"go"}},
		},
		[]model.Edge{
			{ID: "e1", Source: "user", Target: "api", Protocol: "HTTPS"},
			{ID: "e2", Source: "api", Target: "db", Protocol: "SQL"},
			{ID: "e3", Source: "api.auth", Target: "db", Protocol: "SQL"},
			{ID: "e4", Source: "api.orders", Target: "api.auth", Protocol: "HTTP"},
		},
		map[string][]string{"api": {"api.auth", "api.orders"}},
	)
}

// =============================================================================
// Subgraph
// =============================================================================

func TestFromModel(t *testing.T) {
	m := c4Model(t)
	s := FromModel(m)
	if len(s.Nodes) != 5 || len(s.Edges) != 4 {
		t.Errorf("subgraph = %d/%d, want 5/4", len(s.Nodes), len(s.Edges))
	}
}

func TestRetainDropsDanglingEdges(t *testing.T) {
	m := c4Model(t)
	s := FromModel(m).retain(map[string]bool{"api": true, "db": true})

	if len(s.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(s.Nodes))
	}
	if len(s.Edges) != 1 {
		t.Fatalf("edges = %v, want only api->db", s.SortedEdgeIDs())
	}
	if _, ok := s.Edges["e2"]; !ok {
		t.Error("api->db edge was dropped")
	}
}

// =============================================================================
// View Levels
// =============================================================================

func TestByViewLevel(t *testing.T) {
	m := c4Model(t)

	tests := []struct {
		name      string
		level     ViewLevel
		sel       Selection
		wantNodes []string
		wantEdges []string
	}{
		{
			name:      "context keeps containers and actors",
			level:     LevelContext,
			wantNodes: []string{"api", "db", "user"},
			wantEdges: []string{"e1", "e2"},
		},
		{
			name:      "container without selection falls back to context",
			level:     LevelContainer,
			wantNodes: []string{"api", "db", "user"},
			wantEdges: []string{"e1", "e2"},
		},
		{
			name:      "container with selection keeps components and adjacent actors",
			level:     LevelContainer,
			sel:       Selection{ContainerID: "api"},
			wantNodes: []string{"api", "api.auth", "api.orders", "user"},
			wantEdges: []string{"e1", "e4"},
		},
		{
			name:      "component keeps only the selection",
			level:     LevelComponent,
			sel:       Selection{ComponentID: "api.auth"},
			wantNodes: []string{"api.auth"},
			wantEdges: []string{},
		},
		{
			name:      "component without selection is empty",
			level:     LevelComponent,
			wantNodes: []string{},
			wantEdges: []string{},
		},
		{
			name:      "unknown level degrades to context",
			level:     ViewLevel("galaxy"),
			wantNodes: []string{"api", "db", "user"},
			wantEdges: []string{"e1", "e2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ByViewLevel(m, FromModel(m), tt.level, tt.sel)
			assertIDs(t, "nodes", s.SortedNodeIDs(), tt.wantNodes)
			assertIDs(t, "edges", s.SortedEdgeIDs(), tt.wantEdges)
		})
	}
}

func assertIDs(t *testing.T, what string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", what, got, want)
		}
	}
}

// =============================================================================
// User Filters
// =============================================================================

func TestApplyUserFilters(t *testing.T) {
	m := c4Model(t)
	base := ByViewLevel(m, FromModel(m), LevelContext, Selection{})

	t.Run("empty filters pass everything", func(t *testing.T) {
		s := ApplyUserFilters(base, FilterOptions{})
		if len(s.Nodes) != 3 {
			t.Errorf("nodes = %d, want 3", len(s.Nodes))
		}
	})

	t.Run("container type filter", func(t *testing.T) {
		s := ApplyUserFilters(base, FilterOptions{ContainerTypes: []string{"db"}})
		assertIDs(t, "nodes", s.SortedNodeIDs(), []string{"db", "user"})
	})

	t.Run("technology filter", func(t *testing.T) {
		s := ApplyUserFilters(base, FilterOptions{TechnologyStack: []string{"go"}})
		assertIDs(t, "nodes", s.SortedNodeIDs(), []string{"api", "user"})
	})

	t.Run("external actors always survive", func(t *testing.T) {
		s := ApplyUserFilters(base, FilterOptions{ContainerTypes: []string{"nonexistent"}})
		assertIDs(t, "nodes", s.SortedNodeIDs(), []string{"user"})
	})
}

func TestApplyUserFiltersKeepsUntypedNodes(t *testing.T) {
	m := buildModel(t,
		[]model.Node{
			{ID: "typed", Kind: model.KindContainer, ContainerType: "web"},
			{ID: "untyped", Kind: model.KindContainer},
		},
		nil, nil,
	)
	s := ApplyUserFilters(FromModel(m), FilterOptions{TechnologyStack: []string{"go"}})
	// Nodes with no declared technologies pass the stack filter.
	if !s.Has("untyped") || !s.Has("typed") {
		t.Errorf("nodes without technologies were filtered: %v", s.SortedNodeIDs())
	}
}

// =============================================================================
// Presets
// =============================================================================

func TestPresetsRegistry(t *testing.T) {
	presets := Presets()
	if len(presets) != 2 {
		t.Fatalf("len(Presets()) = %d, want 2", len(presets))
	}
	if presets[0].ID != "data-flow" || presets[1].ID != "external-interfaces" {
		t.Errorf("Presets() order = %s, %s", presets[0].ID, presets[1].ID)
	}
	if _, ok := LookupPreset("data-flow"); !ok {
		t.Error("LookupPreset(data-flow) = not found")
	}
	if _, ok := LookupPreset("nope"); ok {
		t.Error("LookupPreset(nope) = found")
	}
}

func TestApplyPresetUnknownIsNoOp(t *testing.T) {
	m := c4Model(t)
	s := FromModel(m)
	out := ApplyPreset(m, s, "nonexistent")
	if len(out.Nodes) != len(s.Nodes) || len(out.Edges) != len(s.Edges) {
		t.Error("unknown preset changed the subgraph")
	}
}

func TestApplyPresetDataFlow(t *testing.T) {
	m := buildModel(t,
		[]model.Node{
			{ID: "a", Kind: model.KindContainer, ContainerType: "web"},
			{ID: "b", Kind: model.KindContainer, ContainerType: "db"},
			{ID: "c", Kind: model.KindContainer, ContainerType: "web"},
			{ID: "d", Kind: model.KindContainer, ContainerType: "web"},
		},
		[]model.Edge{
			{ID: "e1", Source: "a", Target: "b", Protocol: "SQL"},
			{ID: "e2", Source: "c", Target: "b", Protocol: "SQL"},
			{ID: "e3", Source: "a", Target: "d", Protocol: "FTP"},
		},
		nil,
	)

	s := ApplyPreset(m, FromModel(m), "data-flow")
	// a and c talk to the db container; d has no data edge.
	assertIDs(t, "nodes", s.SortedNodeIDs(), []string{"a", "b", "c"})
	assertIDs(t, "edges", s.SortedEdgeIDs(), []string{"e1", "e2"})
}

func TestApplyPresetExternalInterfaces(t *testing.T) {
	m := buildModel(t,
		[]model.Node{
			{ID: "user", Kind: model.KindExternalActor},
			{ID: "edge-api", Kind: model.KindContainer, ContainerType: "web"},
			{ID: "internal", Kind: model.KindContainer, ContainerType: "web"},
		},
		[]model.Edge{
			{ID: "e1", Source: "user", Target: "edge-api", Protocol: "HTTPS"},
			{ID: "e2", Source: "edge-api", Target: "internal", Protocol: "HTTP"},
		},
		nil,
	)

	s := ApplyPreset(m, FromModel(m), "external-interfaces")
	assertIDs(t, "nodes", s.SortedNodeIDs(), []string{"edge-api", "user"})
	assertIDs(t, "edges", s.SortedEdgeIDs(), []string{"e1"})
}

// =============================================================================
// Changeset
// =============================================================================

func TestChangesOnly(t *testing.T) {
	m := buildModel(t,
		[]model.Node{
			{ID: "a", Kind: model.KindContainer, Change: model.ChangeNew},
			{ID: "b", Kind: model.KindContainer, Change: model.ChangeModified},
			{ID: "c", Kind: model.KindContainer},
		},
		[]model.Edge{
			{ID: "e1", Source: "a", Target: "b", Change: model.ChangeNew},
			{ID: "e2", Source: "b", Target: "c"},
		},
		nil,
	)

	s := ChangesOnly(FromModel(m))
	assertIDs(t, "nodes", s.SortedNodeIDs(), []string{"a", "b"})
	// e2 touches the unchanged node c and is dropped with it.
	assertIDs(t, "edges", s.SortedEdgeIDs(), []string{"e1"})
}

func TestChangesOnlyEmpty(t *testing.T) {
	m := buildModel(t,
		[]model.Node{{ID: "a", Kind: model.KindContainer}},
		nil, nil,
	)
	s := ChangesOnly(FromModel(m))
	if len(s.Nodes) != 0 || len(s.Edges) != 0 {
		t.Errorf("unchanged model produced %d/%d", len(s.Nodes), len(s.Edges))
	}
}
