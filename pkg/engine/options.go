package engine

import (
	"github.com/archlens/archlens/pkg/cache"
	"github.com/archlens/archlens/pkg/errors"
	"github.com/archlens/archlens/pkg/layout"
	"github.com/archlens/archlens/pkg/render"
	"github.com/archlens/archlens/pkg/transform"
)

// Options controls a single transform request. The zero value is usable
// after ValidateAndSetDefaults, which fills in the context view level
// and the hierarchical layout algorithm.
type Options struct {
	// ViewLevel selects the abstraction level of the resulting diagram.
	ViewLevel transform.ViewLevel `json:"view_level"`

	// ContainerID scopes container and component views. Ignored at the
	// context level.
	ContainerID string `json:"container_id,omitempty"`

	// ComponentID scopes the code-level drill-down.
	ComponentID string `json:"component_id,omitempty"`

	// Filters narrows the graph by container type and technology.
	Filters transform.FilterOptions `json:"filters"`

	// Preset names a scenario preset. Unknown presets are ignored.
	Preset string `json:"preset,omitempty"`

	// ChangesOnly keeps only elements that belong to the changeset.
	ChangesOnly bool `json:"changes_only,omitempty"`

	// Algorithm selects the layout algorithm. Unknown values fall back
	// to hierarchical layout.
	Algorithm layout.Algorithm `json:"algorithm,omitempty"`

	// ExistingPositions supplies user-dragged coordinates for the
	// manual algorithm.
	ExistingPositions map[string]layout.Point `json:"existing_positions,omitempty"`

	// Zoom controls semantic detail reduction.
	Zoom render.SemanticZoom `json:"zoom"`

	// Focus dims everything outside a node neighborhood.
	Focus render.FocusContext `json:"focus"`

	// Highlight emphasizes a traced path.
	Highlight render.PathHighlight `json:"highlight"`
}

// ValidateAndSetDefaults checks option consistency and fills zero
// values with defaults. It mutates the receiver.
func (o *Options) ValidateAndSetDefaults() error {
	if o.ViewLevel == "" {
		o.ViewLevel = transform.LevelContext
	}
	switch o.ViewLevel {
	case transform.LevelContext, transform.LevelContainer, transform.LevelComponent, transform.LevelCode:
	default:
		return errors.New(errors.ErrCodeInvalidViewLevel,
			"unknown view level: %s", string(o.ViewLevel))
	}
	if o.Algorithm == "" {
		o.Algorithm = layout.AlgorithmHierarchical
	}
	if o.Zoom.Scale <= 0 {
		o.Zoom.Scale = 1.0
	}
	return nil
}

// selection returns the drill-down selection for the view-level stage.
func (o *Options) selection() transform.Selection {
	return transform.Selection{
		ContainerID: o.ContainerID,
		ComponentID: o.ComponentID,
	}
}

// KeyOpts maps the request to the fingerprint used for response
// caching. Every field that influences the output participates:
// omitting one makes two distinct responses share a key.
func (o *Options) KeyOpts() cache.TransformKeyOpts {
	ko := cache.TransformKeyOpts{
		ViewLevel:          string(o.ViewLevel),
		ContainerID:        o.ContainerID,
		ComponentID:        o.ComponentID,
		ContainerTypes:     o.Filters.ContainerTypes,
		TechnologyStack:    o.Filters.TechnologyStack,
		Preset:             o.Preset,
		ChangesOnly:        o.ChangesOnly,
		Algorithm:          string(o.Algorithm.Normalize()),
		ZoomEnabled:        o.Zoom.Enabled,
		ZoomScale:          o.Zoom.Scale,
		FocusEnabled:       o.Focus.Enabled,
		FocusNodeID:        o.Focus.NodeID,
		FocusDimmedOpacity: o.Focus.DimmedOpacity,
		HighlightMode:      o.Highlight.Mode,
		HighlightNodeIDs:   o.Highlight.NodeIDs,
		HighlightEdgeIDs:   o.Highlight.EdgeIDs,
	}
	if o.Algorithm.Normalize() == layout.AlgorithmManual && len(o.ExistingPositions) > 0 {
		ko.ManualPositions = make(map[string][2]float64, len(o.ExistingPositions))
		for id, p := range o.ExistingPositions {
			ko.ManualPositions[id] = [2]float64{p.X, p.Y}
		}
	}
	return ko
}
