package render

import "github.com/archlens/archlens/pkg/model"

// =============================================================================
// Color Palette
// =============================================================================

// kindStyle is the base fill/stroke pair for a node kind.
type kindStyle struct {
	Fill   string
	Stroke string
}

// kindPalette follows the usual C4 shading: systems darkest, components
// lightest, external actors grey.
var kindPalette = map[model.Kind]kindStyle{
	model.KindSystem:        {Fill: "#1168bd", Stroke: "#0b4884"},
	model.KindContainer:     {Fill: "#438dd5", Stroke: "#2e6295"},
	model.KindComponent:     {Fill: "#85bbf0", Stroke: "#5d82a8"},
	model.KindExternalActor: {Fill: "#999999", Stroke: "#6b6b6b"},
	model.KindDeployment:    {Fill: "#94a7b8", Stroke: "#5f7482"},
}

// Changeset colors override the kind palette: additions green,
// modifications amber, deletions red.
var changePalette = map[model.ChangeStatus]kindStyle{
	model.ChangeNew:      {Fill: "#4caf50", Stroke: "#2e7d32"},
	model.ChangeModified: {Fill: "#ffb300", Stroke: "#ff8f00"},
	model.ChangeDeleted:  {Fill: "#e53935", Stroke: "#b71c1c"},
}

// Edge stroke colors.
const (
	edgeStroke      = "#78909c"
	highlightStroke = "#ff6d00"
)

// Edge widths: individual edges render at 2px, bundles slightly thicker,
// and highlighting bumps each by one.
const (
	edgeWidth            = 2.0
	bundleWidth          = 3.0
	highlightEdgeWidth   = 3.0
	highlightBundleWidth = 4.0
)

// Opacity levels used by focus context and path highlighting.
const (
	opacityFull          = 1.0
	opacityDimmedDefault = 0.3
	opacityUnhighlighted = 0.3
	opacityDimmedEdge    = 0.2
	opacityDeletedBundle = 0.6
)

// nodeStyle resolves the fill/stroke for a node, applying the changeset
// override when the node carries a pending change.
func nodeStyle(n model.Node) kindStyle {
	if s, ok := changePalette[n.Change]; ok {
		return s
	}
	if s, ok := kindPalette[n.Kind]; ok {
		return s
	}
	return kindPalette[model.KindComponent]
}

// edgeStyle resolves the stroke for an individual edge.
func edgeStyle(e model.Edge) string {
	if s, ok := changePalette[e.Change]; ok {
		return s.Stroke
	}
	return edgeStroke
}

// =============================================================================
// Detail Levels
// =============================================================================

// DetailLevel is the semantic-zoom detail tier for a rendered node.
type DetailLevel string

// Detail levels, coarsest to finest.
const (
	DetailMinimal DetailLevel = "minimal"
	DetailMedium  DetailLevel = "medium"
	DetailFull    DetailLevel = "full"
)

// SemanticZoom selects a detail level from the current magnification.
type SemanticZoom struct {
	Enabled bool    `json:"enabled"`
	Scale   float64 `json:"scale"`
}

// Detail maps the current scale onto a detail tier. With zoom disabled
// everything renders at full detail.
func (z SemanticZoom) Detail() DetailLevel {
	switch {
	case !z.Enabled:
		return DetailFull
	case z.Scale < 0.5:
		return DetailMinimal
	case z.Scale < 0.8:
		return DetailMedium
	default:
		return DetailFull
	}
}
