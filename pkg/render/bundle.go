package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/transform"
)

// bundleThreshold is the number of parallel edges between one node pair
// at which they collapse into a single bundled edge.
const bundleThreshold = 3

// buildEdges groups surviving edges by their (source, target) pair and
// renders each group either as one bundled edge or as individual edges.
// Edges touching a node that was dropped from render output (missing
// position) are dropped too, preserving the no-dangling-edges property.
func buildEdges(s transform.Subgraph, placed map[string]bool, opts Options) []Edge {
	type pair struct{ source, target string }
	groups := make(map[pair][]model.Edge)
	for _, id := range s.SortedEdgeIDs() {
		e := s.Edges[id]
		if !placed[e.Source] || !placed[e.Target] {
			continue
		}
		p := pair{e.Source, e.Target}
		groups[p] = append(groups[p], e)
	}

	pairs := make([]pair, 0, len(groups))
	for p := range groups {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if a.source != b.source {
			return strings.Compare(a.source, b.source)
		}
		return strings.Compare(a.target, b.target)
	})

	highlightedEdges := toSet(opts.Highlight.EdgeIDs)
	highlightedNodes := toSet(opts.Highlight.NodeIDs)
	active := opts.Highlight.Active()

	var out []Edge
	for _, p := range pairs {
		group := groups[p]
		if len(group) >= bundleThreshold {
			out = append(out, bundleEdge(group, highlightedNodes, active))
			continue
		}
		for _, e := range group {
			out = append(out, individualEdge(e, highlightedEdges, active))
		}
	}
	return out
}

// individualEdge renders a single relationship with its protocol/method
// label and changeset coloring. During active path highlighting,
// highlighted edges thicken and recolor while all others fade.
func individualEdge(e model.Edge, highlighted map[string]bool, active bool) Edge {
	re := Edge{
		ID:       e.ID,
		Source:   e.Source,
		Target:   e.Target,
		Label:    e.Label(),
		Stroke:   edgeStyle(e),
		Width:    edgeWidth,
		Opacity:  opacityFull,
		Animated: e.IsAsync(),
	}
	if active {
		if highlighted[e.ID] {
			re.Highlighted = true
			re.Width = highlightEdgeWidth
			re.Stroke = highlightStroke
		} else {
			re.Opacity = opacityDimmedEdge
		}
	}
	return re
}

// bundleEdge collapses a group of parallel edges into one dashed,
// thicker aggregate. Changeset coloring uses priority new > modified >
// deleted, with deleted-only bundles rendered at reduced opacity; the
// bundle animates when any member is asynchronous.
func bundleEdge(group []model.Edge, highlightedNodes map[string]bool, active bool) Edge {
	first := group[0]
	re := Edge{
		ID:          fmt.Sprintf("bundle:%s->%s", first.Source, first.Target),
		Source:      first.Source,
		Target:      first.Target,
		Label:       bundleLabel(group),
		Stroke:      edgeStroke,
		Width:       bundleWidth,
		Opacity:     opacityFull,
		Dashed:      true,
		Bundled:     true,
		BundleCount: len(group),
	}

	var hasNew, hasModified, hasDeleted bool
	for _, e := range group {
		switch e.Change {
		case model.ChangeNew:
			hasNew = true
		case model.ChangeModified:
			hasModified = true
		case model.ChangeDeleted:
			hasDeleted = true
		}
		if e.IsAsync() {
			re.Animated = true
		}
	}
	switch {
	case hasNew:
		re.Stroke = changePalette[model.ChangeNew].Stroke
	case hasModified:
		re.Stroke = changePalette[model.ChangeModified].Stroke
	case hasDeleted:
		re.Stroke = changePalette[model.ChangeDeleted].Stroke
		re.Opacity = opacityDeletedBundle
	}

	if active {
		if highlightedNodes[first.Source] && highlightedNodes[first.Target] {
			re.Highlighted = true
			re.Width = highlightBundleWidth
			re.Stroke = highlightStroke
		} else {
			re.Opacity = opacityDimmedEdge
		}
	}
	return re
}

// bundleLabel summarizes a bundle: "<count> connections (<up to two
// unique protocols>…)". Protocols beyond the first two collapse into an
// ellipsis; a bundle with no protocols gets the bare count.
func bundleLabel(group []model.Edge) string {
	var protocols []string
	seen := make(map[string]bool)
	for _, e := range group {
		if e.Protocol == "" || seen[e.Protocol] {
			continue
		}
		seen[e.Protocol] = true
		protocols = append(protocols, e.Protocol)
	}

	label := fmt.Sprintf("%d connections", len(group))
	if len(protocols) == 0 {
		return label
	}
	shown := protocols
	suffix := ""
	if len(protocols) > 2 {
		shown = protocols[:2]
		suffix = "…"
	}
	return fmt.Sprintf("%s (%s%s)", label, strings.Join(shown, ", "), suffix)
}
