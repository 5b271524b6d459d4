package engine

import (
	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/transform"
)

// Breadcrumb is one segment of the drill-down navigation trail.
type Breadcrumb struct {
	ID    string              `json:"id"`
	Label string              `json:"label"`
	Level transform.ViewLevel `json:"level"`
}

// Breadcrumbs builds the navigation trail for the current drill-down
// position. The trail always starts at the system context; container
// and component segments are appended when the corresponding selection
// is set. A selected container that no longer exists in the model still
// produces a segment, with a fallback label.
func Breadcrumbs(m *model.Model, level transform.ViewLevel, sel transform.Selection) []Breadcrumb {
	trail := []Breadcrumb{{ID: "", Label: "System Context", Level: transform.LevelContext}}

	if level == transform.LevelContext || sel.ContainerID == "" {
		return trail
	}

	label := "Unknown container"
	if n, ok := m.Nodes[sel.ContainerID]; ok {
		label = n.DisplayName()
	}
	trail = append(trail, Breadcrumb{
		ID:    sel.ContainerID,
		Label: label,
		Level: transform.LevelContainer,
	})

	if (level == transform.LevelComponent || level == transform.LevelCode) && sel.ComponentID != "" {
		compLabel := sel.ComponentID
		if n, ok := m.Nodes[sel.ComponentID]; ok {
			compLabel = n.DisplayName()
		}
		trail = append(trail, Breadcrumb{
			ID:    sel.ComponentID,
			Label: compLabel,
			Level: transform.LevelComponent,
		})
	}

	return trail
}
