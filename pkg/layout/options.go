package layout

import "github.com/archlens/archlens/pkg/model"

// =============================================================================
// Algorithms
// =============================================================================

// Algorithm selects the layout strategy.
type Algorithm string

// Supported layout algorithms.
const (
	AlgorithmHierarchical Algorithm = "hierarchical"
	AlgorithmForce        Algorithm = "force"
	AlgorithmOrthogonal   Algorithm = "orthogonal"
	AlgorithmManual       Algorithm = "manual"
)

// Normalize maps the placeholder and unrecognized algorithms onto their
// effective implementation. Orthogonal routing is not implemented yet
// and silently degrades to hierarchical, as do unknown values; layout
// selection is never a hard failure.
func (a Algorithm) Normalize() Algorithm {
	switch a {
	case AlgorithmForce, AlgorithmManual, AlgorithmHierarchical:
		return a
	default:
		return AlgorithmHierarchical
	}
}

// =============================================================================
// Tuning Defaults
// =============================================================================

// Default tuning constants. Every value can be overridden via [Options];
// zero fields fall back to these.
const (
	DefaultWidth  = 1200.0 // viewport width in px
	DefaultHeight = 800.0  // viewport height in px

	DefaultNodeSpacingX = 120.0 // min horizontal gap between nodes in a rank
	DefaultRankSpacingY = 150.0 // vertical gap between ranks
	DefaultMargin       = 50.0  // outer margin around the computed bounds
	DefaultRingPadding  = 60.0  // inset of the disconnected-node ring

	DefaultIterations      = 150    // force simulation steps
	DefaultLinkDistance    = 250.0  // spring rest length
	DefaultChargeStrength  = -600.0 // pairwise repulsion constant
	DefaultCenterStrength  = 0.1    // pull toward viewport center
	DefaultSpringFactor    = 0.1    // proportional spring error correction
	DefaultVelocityDamping = 0.6    // velocity retained after each step
)

// Options are the layout tuning knobs. The zero value is usable; apply
// defaults with [Options.WithDefaults].
type Options struct {
	Width  float64
	Height float64

	// Hierarchical tuning.
	NodeSpacingX float64
	RankSpacingY float64
	Margin       float64
	RingPadding  float64

	// Force simulation tuning.
	Iterations      int
	LinkDistance    float64
	ChargeStrength  float64
	CenterStrength  float64
	SpringFactor    float64
	VelocityDamping float64
}

// WithDefaults returns a copy with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.NodeSpacingX == 0 {
		o.NodeSpacingX = DefaultNodeSpacingX
	}
	if o.RankSpacingY == 0 {
		o.RankSpacingY = DefaultRankSpacingY
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.RingPadding == 0 {
		o.RingPadding = DefaultRingPadding
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.LinkDistance == 0 {
		o.LinkDistance = DefaultLinkDistance
	}
	if o.ChargeStrength == 0 {
		o.ChargeStrength = DefaultChargeStrength
	}
	if o.CenterStrength == 0 {
		o.CenterStrength = DefaultCenterStrength
	}
	if o.SpringFactor == 0 {
		o.SpringFactor = DefaultSpringFactor
	}
	if o.VelocityDamping == 0 {
		o.VelocityDamping = DefaultVelocityDamping
	}
	return o
}

// =============================================================================
// Node Dimensions
// =============================================================================

// Size is a node's rendered width and height in px.
type Size struct {
	Width  float64
	Height float64
}

// nodeSizes maps node kinds to their fixed render dimensions.
var nodeSizes = map[model.Kind]Size{
	model.KindContainer:     {Width: 280, Height: 180},
	model.KindComponent:     {Width: 240, Height: 140},
	model.KindExternalActor: {Width: 160, Height: 120},
	model.KindSystem:        {Width: 280, Height: 180},
	model.KindDeployment:    {Width: 240, Height: 140},
}

// SizeFor returns the render dimensions for a node kind.
// Unknown kinds get component dimensions.
func SizeFor(kind model.Kind) Size {
	if s, ok := nodeSizes[kind]; ok {
		return s
	}
	return nodeSizes[model.KindComponent]
}
