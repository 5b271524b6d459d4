package model

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestBuild(t *testing.T) {
	m, err := Build(
		[]Node{
			{ID: "a", Kind: KindContainer},
			{ID: "b", Kind: KindContainer},
		},
		[]Edge{
			{Source: "a", Target: "b"},
			{ID: "named", Source: "b", Target: "a"},
		},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if m.NodeCount() != 2 || m.EdgeCount() != 2 {
		t.Errorf("counts = %d/%d, want 2/2", m.NodeCount(), m.EdgeCount())
	}
	if _, ok := m.Edges["a->b#0"]; !ok {
		t.Error("edge without ID did not get a generated one")
	}
	if _, ok := m.Edges["named"]; !ok {
		t.Error("named edge lost its ID")
	}
}

func TestBuildRejectsDuplicateNode(t *testing.T) {
	_, err := Build([]Node{{ID: "a", Kind: KindContainer}, {ID: "a", Kind: KindContainer}}, nil)
	if !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestBuildRejectsDanglingEdge(t *testing.T) {
	_, err := Build(
		[]Node{{ID: "a", Kind: KindContainer}},
		[]Edge{{ID: "e", Source: "a", Target: "ghost"}},
	)
	if !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("error = %v, want ErrDanglingEdge", err)
	}
}

func TestValidateRejectsUnknownIndexEntry(t *testing.T) {
	m := New()
	m.Nodes["api"] = Node{ID: "api", Kind: KindContainer}
	m.Components["api"] = []string{"missing-component"}
	if err := m.Validate(); !errors.Is(err, ErrUnknownIndexEntry) {
		t.Errorf("error = %v, want ErrUnknownIndexEntry", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Node{ID: "api"}).DisplayName(); got != "api" {
		t.Errorf("DisplayName() = %q, want id fallback", got)
	}
	if got := (Node{ID: "api", Name: "API Server"}).DisplayName(); got != "API Server" {
		t.Errorf("DisplayName() = %q, want name", got)
	}
}

func TestHasTechnology(t *testing.T) {
	stack := map[string]bool{"go": true}
	if !(Node{Technologies: []string{"go", "postgres"}}).HasTechnology(stack) {
		t.Error("node with matching technology did not match")
	}
	if (Node{Technologies: []string{"rust"}}).HasTechnology(stack) {
		t.Error("node without matching technology matched")
	}
	if (Node{}).HasTechnology(stack) {
		t.Error("node with empty technology list matched")
	}
}

func TestEdgeLabel(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want string
	}{
		{"protocol and method", Edge{Protocol: "HTTP", Method: "GET"}, "HTTP GET"},
		{"protocol only", Edge{Protocol: "SQL"}, "SQL"},
		{"description fallback", Edge{Description: "reads orders"}, "reads orders"},
		{"empty", Edge{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChangeStatus(t *testing.T) {
	if ChangeNone.InChangeset() {
		t.Error("zero status is in changeset")
	}
	for _, s := range []ChangeStatus{ChangeNew, ChangeModified, ChangeDeleted} {
		if !s.InChangeset() {
			t.Errorf("%q not in changeset", s)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	m, err := Build(
		[]Node{
			{ID: "b", Kind: KindContainer, ContainerType: "db"},
			{ID: "a", Kind: KindContainer, Technologies: []string{"go"}},
		},
		[]Edge{{ID: "e1", Source: "a", Target: "b", Protocol: "SQL", Direction: DirectionAsync}},
	)
	if err != nil {
		t.Fatal(err)
	}
	m.Components["a"] = nil

	path := filepath.Join(t.TempDir(), "model.json")
	if err := WriteFile(m, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", got.NodeCount(), got.EdgeCount())
	}
	if got.Nodes["a"].Technologies[0] != "go" {
		t.Error("node technologies lost in round trip")
	}
	if !got.Edges["e1"].IsAsync() {
		t.Error("edge direction lost in round trip")
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"nodes":[{"id":"a","kind":"container"}],"edges":[{"id":"e","source":"a","target":"x"}]}`)); err == nil {
		t.Error("Unmarshal accepted a dangling edge")
	}
	if _, err := Unmarshal([]byte(`not json`)); err == nil {
		t.Error("Unmarshal accepted malformed JSON")
	}
}

func TestSortedIDs(t *testing.T) {
	m, err := Build(
		[]Node{{ID: "c", Kind: KindContainer}, {ID: "a", Kind: KindContainer}, {ID: "b", Kind: KindContainer}},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	ids := m.SortedNodeIDs()
	for i, want := range []string{"a", "b", "c"} {
		if ids[i] != want {
			t.Fatalf("SortedNodeIDs() = %v, want sorted", ids)
		}
	}
}
