package render

import (
	"strings"
	"testing"

	"github.com/archlens/archlens/pkg/layout"
	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/transform"
)

// fixture builds a subgraph and a full layout for it.
func fixture(t *testing.T, nodes []model.Node, edges []model.Edge) (transform.Subgraph, layout.Result) {
	t.Helper()
	m, err := model.Build(nodes, edges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	s := transform.FromModel(m)
	lay := layout.NewEngine(layout.Options{}).Compute(s, layout.AlgorithmHierarchical, nil)
	return s, lay
}

func findEdge(t *testing.T, g Graph, id string) Edge {
	t.Helper()
	for _, e := range g.Edges {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("edge %s not in output", id)
	return Edge{}
}

func findNode(t *testing.T, g Graph, id string) Node {
	t.Helper()
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %s not in output", id)
	return Node{}
}

// =============================================================================
// Build
// =============================================================================

func TestBuildBasics(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{
			{ID: "api", Name: "API", Kind: model.KindContainer},
			{ID: "db", Kind: model.KindContainer, Change: model.ChangeNew},
		},
		[]model.Edge{{ID: "e1", Source: "api", Target: "db", Protocol: "SQL", Direction: model.DirectionAsync}},
	)

	g := Build(s, lay, Options{})
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("output = %d/%d, want 2/1", len(g.Nodes), len(g.Edges))
	}
	if len(g.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", g.Warnings)
	}

	api := findNode(t, g, "api")
	if api.Label != "API" {
		t.Errorf("label = %q, want display name", api.Label)
	}
	if api.Fill != "#438dd5" {
		t.Errorf("fill = %q, want container blue", api.Fill)
	}
	size := layout.SizeFor(model.KindContainer)
	center := lay.Positions["api"]
	if api.X != center.X-size.Width/2 || api.Y != center.Y-size.Height/2 {
		t.Errorf("top-left = (%v,%v), want center minus half-dims", api.X, api.Y)
	}

	// Changeset override beats the kind palette.
	db := findNode(t, g, "db")
	if db.Fill != "#4caf50" {
		t.Errorf("new-node fill = %q, want changeset green", db.Fill)
	}

	e := findEdge(t, g, "e1")
	if e.Label != "SQL" || !e.Animated {
		t.Errorf("edge = %+v, want SQL label and animated", e)
	}
}

func TestBuildMissingPositionWarns(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{
			{ID: "placed", Kind: model.KindContainer},
			{ID: "lost", Kind: model.KindContainer},
		},
		[]model.Edge{{ID: "e1", Source: "placed", Target: "lost"}},
	)
	delete(lay.Positions, "lost")

	g := Build(s, lay, Options{})
	if len(g.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(g.Nodes))
	}
	if len(g.Warnings) != 1 || !strings.Contains(g.Warnings[0], "lost") {
		t.Errorf("warnings = %v, want one naming the node", g.Warnings)
	}
	// The edge touching the omitted node is dropped with it.
	if len(g.Edges) != 0 {
		t.Errorf("edges = %v, want none", g.Edges)
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{
			{ID: "c", Kind: model.KindContainer},
			{ID: "a", Kind: model.KindContainer},
			{ID: "b", Kind: model.KindContainer},
		},
		nil,
	)

	g := Build(s, lay, Options{})
	for i, want := range []string{"a", "b", "c"} {
		if g.Nodes[i].ID != want {
			t.Fatalf("node order = %v, want sorted by ID", g.Nodes)
		}
	}
}

// =============================================================================
// Bundling
// =============================================================================

func TestBundlingThreshold(t *testing.T) {
	edges := []model.Edge{
		{ID: "p1", Source: "a", Target: "b", Protocol: "HTTP"},
		{ID: "p2", Source: "a", Target: "b", Protocol: "gRPC"},
	}
	nodes := []model.Node{
		{ID: "a", Kind: model.KindContainer},
		{ID: "b", Kind: model.KindContainer},
	}

	// Two parallel edges stay individual.
	s, lay := fixture(t, nodes, edges)
	g := Build(s, lay, Options{})
	if len(g.Edges) != 2 {
		t.Fatalf("edges = %d, want 2 individual", len(g.Edges))
	}

	// The third crosses the threshold and collapses the group.
	edges = append(edges, model.Edge{ID: "p3", Source: "a", Target: "b", Protocol: "AMQP", Direction: model.DirectionAsync})
	s, lay = fixture(t, nodes, edges)
	g = Build(s, lay, Options{})
	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1 bundle", len(g.Edges))
	}

	b := g.Edges[0]
	if !b.Bundled || b.BundleCount != 3 || !b.Dashed {
		t.Errorf("bundle = %+v", b)
	}
	if b.ID != "bundle:a->b" {
		t.Errorf("bundle ID = %q", b.ID)
	}
	if !b.Animated {
		t.Error("bundle with an async member is not animated")
	}
	if b.Label != "3 connections (HTTP, gRPC…)" {
		t.Errorf("label = %q", b.Label)
	}
}

func TestBundlingIsDirectional(t *testing.T) {
	// Opposite directions are distinct pairs and never bundle together.
	s, lay := fixture(t,
		[]model.Node{
			{ID: "a", Kind: model.KindContainer},
			{ID: "b", Kind: model.KindContainer},
		},
		[]model.Edge{
			{ID: "f1", Source: "a", Target: "b"},
			{ID: "f2", Source: "a", Target: "b"},
			{ID: "r1", Source: "b", Target: "a"},
		},
	)

	g := Build(s, lay, Options{})
	if len(g.Edges) != 3 {
		t.Errorf("edges = %d, want 3 individual (no pair reaches threshold)", len(g.Edges))
	}
}

func TestBundleChangePriority(t *testing.T) {
	nodes := []model.Node{
		{ID: "a", Kind: model.KindContainer},
		{ID: "b", Kind: model.KindContainer},
	}
	s, lay := fixture(t, nodes, []model.Edge{
		{ID: "e1", Source: "a", Target: "b", Change: model.ChangeDeleted},
		{ID: "e2", Source: "a", Target: "b", Change: model.ChangeModified},
		{ID: "e3", Source: "a", Target: "b"},
	})

	g := Build(s, lay, Options{})
	b := g.Edges[0]
	if b.Stroke != "#ff8f00" {
		t.Errorf("stroke = %q, want modified amber (modified outranks deleted)", b.Stroke)
	}
	if b.Opacity != 1.0 {
		t.Errorf("opacity = %v, want full for a non-deleted-only bundle", b.Opacity)
	}

	// Deleted-only bundles fade.
	s, lay = fixture(t, nodes, []model.Edge{
		{ID: "e1", Source: "a", Target: "b", Change: model.ChangeDeleted},
		{ID: "e2", Source: "a", Target: "b", Change: model.ChangeDeleted},
		{ID: "e3", Source: "a", Target: "b", Change: model.ChangeDeleted},
	})
	g = Build(s, lay, Options{})
	if got := g.Edges[0].Opacity; got != 0.6 {
		t.Errorf("deleted-only bundle opacity = %v, want 0.6", got)
	}
}

// =============================================================================
// Focus & Highlight
// =============================================================================

func TestFocusDimsOthers(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{
			{ID: "focus", Kind: model.KindContainer},
			{ID: "other", Kind: model.KindContainer},
		},
		nil,
	)

	g := Build(s, lay, Options{Focus: FocusContext{Enabled: true, NodeID: "focus"}})
	if got := findNode(t, g, "focus").Opacity; got != 1.0 {
		t.Errorf("focused opacity = %v, want 1.0", got)
	}
	if got := findNode(t, g, "other").Opacity; got != 0.3 {
		t.Errorf("dimmed opacity = %v, want default 0.3", got)
	}

	// Custom dim level.
	g = Build(s, lay, Options{Focus: FocusContext{Enabled: true, NodeID: "focus", DimmedOpacity: 0.5}})
	if got := findNode(t, g, "other").Opacity; got != 0.5 {
		t.Errorf("dimmed opacity = %v, want 0.5", got)
	}
}

func TestHighlightOverridesFocus(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{
			{ID: "a", Kind: model.KindContainer},
			{ID: "b", Kind: model.KindContainer},
			{ID: "c", Kind: model.KindContainer},
		},
		[]model.Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "b", Target: "c"},
		},
	)

	g := Build(s, lay, Options{
		Focus: FocusContext{Enabled: true, NodeID: "c"},
		Highlight: PathHighlight{
			Mode:    "downstream",
			NodeIDs: []string{"a", "b"},
			EdgeIDs: []string{"e1"},
		},
	})

	if n := findNode(t, g, "a"); !n.Highlighted || n.Opacity != 1.0 {
		t.Errorf("highlighted node = %+v", n)
	}
	// c is the focus node but highlighting wins: it fades instead.
	if n := findNode(t, g, "c"); n.Highlighted || n.Opacity != 0.3 {
		t.Errorf("unhighlighted node = %+v", n)
	}

	e1 := findEdge(t, g, "e1")
	if !e1.Highlighted || e1.Stroke != "#ff6d00" || e1.Width != 3.0 {
		t.Errorf("highlighted edge = %+v", e1)
	}
	e2 := findEdge(t, g, "e2")
	if e2.Highlighted || e2.Opacity != 0.2 {
		t.Errorf("dimmed edge = %+v", e2)
	}
}

func TestHighlightInactiveModes(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{{ID: "a", Kind: model.KindContainer}},
		nil,
	)

	for _, h := range []PathHighlight{
		{},
		{Mode: "none", NodeIDs: []string{"a"}},
		{Mode: "downstream"}, // empty node set
	} {
		g := Build(s, lay, Options{Highlight: h})
		if n := findNode(t, g, "a"); n.Opacity != 1.0 || n.Highlighted {
			t.Errorf("highlight %+v affected output: %+v", h, n)
		}
	}
}

// =============================================================================
// Semantic Zoom
// =============================================================================

func TestSemanticZoomDetail(t *testing.T) {
	tests := []struct {
		name string
		zoom SemanticZoom
		want DetailLevel
	}{
		{"disabled", SemanticZoom{}, DetailFull},
		{"disabled ignores scale", SemanticZoom{Scale: 0.1}, DetailFull},
		{"far out", SemanticZoom{Enabled: true, Scale: 0.4}, DetailMinimal},
		{"mid", SemanticZoom{Enabled: true, Scale: 0.6}, DetailMedium},
		{"boundary 0.5 is medium", SemanticZoom{Enabled: true, Scale: 0.5}, DetailMedium},
		{"close", SemanticZoom{Enabled: true, Scale: 1.0}, DetailFull},
		{"boundary 0.8 is full", SemanticZoom{Enabled: true, Scale: 0.8}, DetailFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zoom.Detail(); got != tt.want {
				t.Errorf("Detail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildAppliesDetailLevel(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{{ID: "a", Kind: model.KindContainer}},
		nil,
	)
	g := Build(s, lay, Options{Zoom: SemanticZoom{Enabled: true, Scale: 0.3}})
	if got := g.Nodes[0].Detail; got != DetailMinimal {
		t.Errorf("detail = %q, want minimal", got)
	}
}

// =============================================================================
// DOT Export
// =============================================================================

func TestToDOT(t *testing.T) {
	s, lay := fixture(t,
		[]model.Node{
			{ID: "api", Name: "API", Kind: model.KindContainer},
			{ID: "db", Kind: model.KindContainer},
		},
		[]model.Edge{{ID: "e1", Source: "api", Target: "db", Protocol: "SQL"}},
	)
	g := Build(s, lay, Options{})

	dot := ToDOT(g)
	for _, want := range []string{"digraph", `"api"`, `"db"`, `"api" -> "db"`, "SQL"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}
