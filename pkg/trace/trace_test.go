package trace

import (
	"testing"

	"github.com/archlens/archlens/pkg/model"
)

// diamond builds:
//
//	a -> b -> d
//	a -> c -> d
//	       e (isolated)
func diamond(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.Build(
		[]model.Node{
			{ID: "a", Kind: model.KindContainer},
			{ID: "b", Kind: model.KindContainer},
			{ID: "c", Kind: model.KindContainer},
			{ID: "d", Kind: model.KindContainer},
			{ID: "e", Kind: model.KindContainer},
		},
		[]model.Edge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "ac", Source: "a", Target: "c"},
			{ID: "bd", Source: "b", Target: "d"},
			{ID: "cd", Source: "c", Target: "d"},
		},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

func assertSet(t *testing.T, got map[string]bool, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("set = %v, want %v", got, want)
	}
	for _, id := range want {
		if !got[id] {
			t.Fatalf("set = %v, missing %s", got, id)
		}
	}
}

func TestDownstream(t *testing.T) {
	tr := New(diamond(t))
	assertSet(t, tr.Downstream("a"), "a", "b", "c", "d")
	assertSet(t, tr.Downstream("b"), "b", "d")
	assertSet(t, tr.Downstream("d"), "d")
	assertSet(t, tr.Downstream("e"), "e")
}

func TestUpstream(t *testing.T) {
	tr := New(diamond(t))
	assertSet(t, tr.Upstream("d"), "d", "b", "c", "a")
	assertSet(t, tr.Upstream("b"), "b", "a")
	assertSet(t, tr.Upstream("a"), "a")
}

func TestBetween(t *testing.T) {
	tr := New(diamond(t))

	// Deterministic: sorted adjacency makes BFS visit b before c.
	assertSet(t, tr.Between("a", "d"), "a", "b", "d")
	assertSet(t, tr.Between("b", "c"), "b", "a", "c")
}

func TestBetweenIdentity(t *testing.T) {
	tr := New(diamond(t))
	assertSet(t, tr.Between("a", "a"), "a")
}

func TestBetweenUnreachable(t *testing.T) {
	tr := New(diamond(t))
	if got := tr.Between("a", "e"); len(got) != 0 {
		t.Errorf("Between(a, e) = %v, want empty", got)
	}
}

func TestBetweenIgnoresEdgeDirection(t *testing.T) {
	tr := New(diamond(t))
	// d -> a has no directed path, but the undirected search finds one.
	assertSet(t, tr.Between("d", "a"), "d", "b", "a")
}

func TestEdgesWithin(t *testing.T) {
	tr := New(diamond(t))

	ids := tr.EdgesWithin(map[string]bool{"a": true, "b": true, "d": true})
	want := []string{"ab", "bd"}
	if len(ids) != len(want) {
		t.Fatalf("EdgesWithin = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("EdgesWithin = %v, want %v", ids, want)
		}
	}

	if got := tr.EdgesWithin(nil); len(got) != 0 {
		t.Errorf("EdgesWithin(nil) = %v, want empty", got)
	}
}
