package render

import (
	"fmt"

	"github.com/archlens/archlens/pkg/layout"
	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/transform"
)

// =============================================================================
// Output Schema
// =============================================================================

// Node is the presentation record for a positioned node. X/Y is the
// top-left corner (layout centers shifted by half-dimensions).
type Node struct {
	ID          string             `json:"id"`
	Label       string             `json:"label"`
	Kind        model.Kind         `json:"kind"`
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Fill        string             `json:"fill"`
	Stroke      string             `json:"stroke"`
	Opacity     float64            `json:"opacity"`
	Detail      DetailLevel        `json:"detail"`
	Highlighted bool               `json:"highlighted,omitempty"`
	Change      model.ChangeStatus `json:"change,omitempty"`
}

// Edge is the presentation record for a rendered relationship. A
// bundled edge aggregates three or more parallel relationships between
// the same node pair.
type Edge struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Label       string  `json:"label,omitempty"`
	Stroke      string  `json:"stroke"`
	Width       float64 `json:"width"`
	Opacity     float64 `json:"opacity"`
	Dashed      bool    `json:"dashed,omitempty"`
	Animated    bool    `json:"animated,omitempty"`
	Bundled     bool    `json:"bundled,omitempty"`
	BundleCount int     `json:"bundle_count,omitempty"`
	Highlighted bool    `json:"highlighted,omitempty"`
}

// =============================================================================
// Build Options
// =============================================================================

// FocusContext dims everything except the focused node.
type FocusContext struct {
	Enabled       bool    `json:"enabled"`
	NodeID        string  `json:"node_id"`
	DimmedOpacity float64 `json:"dimmed_opacity"`
}

// active reports whether a focused node is set; dimmedOpacity returns
// the configured dim level with the 0.3 default.
func (f FocusContext) active() bool { return f.Enabled && f.NodeID != "" }

func (f FocusContext) dimmedOpacity() float64 {
	if f.DimmedOpacity == 0 {
		return opacityDimmedDefault
	}
	return f.DimmedOpacity
}

// PathHighlight emphasizes a traced node/edge set while dimming the
// rest. Mode names the trace that produced the set ("upstream",
// "downstream", "between"); "none" or empty disables highlighting.
type PathHighlight struct {
	Mode    string   `json:"mode"`
	NodeIDs []string `json:"node_ids,omitempty"`
	EdgeIDs []string `json:"edge_ids,omitempty"`
}

// Active reports whether highlighting applies: a mode is set and the
// highlighted node set is non-empty.
func (p PathHighlight) Active() bool {
	return p.Mode != "" && p.Mode != "none" && len(p.NodeIDs) > 0
}

// Options control styling decisions during a build.
type Options struct {
	Zoom      SemanticZoom
	Focus     FocusContext
	Highlight PathHighlight
}

// =============================================================================
// Builder
// =============================================================================

// Graph is the built render graph: presentation nodes/edges plus
// non-fatal warnings gathered during the build.
type Graph struct {
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Warnings []string `json:"warnings,omitempty"`
}

// Build converts a filtered subgraph and its layout into presentation
// records. Nodes lacking a computed position are omitted and recorded
// as warnings. Output ordering is deterministic (sorted by ID / node
// pair).
func Build(s transform.Subgraph, lay layout.Result, opts Options) Graph {
	var g Graph

	detail := opts.Zoom.Detail()
	highlightedNodes := toSet(opts.Highlight.NodeIDs)
	highlightActive := opts.Highlight.Active()

	placed := make(map[string]bool, s.NodeCount())
	for _, id := range s.SortedNodeIDs() {
		n := s.Nodes[id]
		center, ok := lay.Positions[id]
		if !ok {
			g.Warnings = append(g.Warnings, fmt.Sprintf("node %s has no computed position; omitted from render output", id))
			continue
		}
		placed[id] = true

		size := layout.SizeFor(n.Kind)
		style := nodeStyle(n)

		opacity := opacityFull
		highlighted := false
		switch {
		case highlightActive:
			if highlightedNodes[id] {
				highlighted = true
			} else {
				opacity = opacityUnhighlighted
			}
		case opts.Focus.active() && id != opts.Focus.NodeID:
			opacity = opts.Focus.dimmedOpacity()
		}

		g.Nodes = append(g.Nodes, Node{
			ID:          id,
			Label:       n.DisplayName(),
			Kind:        n.Kind,
			X:           center.X - size.Width/2,
			Y:           center.Y - size.Height/2,
			Width:       size.Width,
			Height:      size.Height,
			Fill:        style.Fill,
			Stroke:      style.Stroke,
			Opacity:     opacity,
			Detail:      detail,
			Highlighted: highlighted,
			Change:      n.Change,
		})
	}

	g.Edges = buildEdges(s, placed, opts)
	return g
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
