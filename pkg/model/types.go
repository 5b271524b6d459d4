package model

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Kind classifies a node within the architecture graph.
type Kind string

// Node kinds, roughly following the C4 abstraction levels.
const (
	KindContainer     Kind = "container"
	KindComponent     Kind = "component"
	KindExternalActor Kind = "external-actor"
	KindSystem        Kind = "system"
	KindDeployment    Kind = "deployment"
)

// ChangeStatus marks a node or edge as part of a pending change set.
type ChangeStatus string

// Changeset statuses. ChangeNone is the zero value and means the element
// is not part of any pending change set.
const (
	ChangeNone     ChangeStatus = ""
	ChangeNew      ChangeStatus = "new"
	ChangeModified ChangeStatus = "modified"
	ChangeDeleted  ChangeStatus = "deleted"
)

// InChangeset reports whether the status marks a pending change.
func (s ChangeStatus) InChangeset() bool { return s != ChangeNone }

// Direction distinguishes synchronous calls from asynchronous messaging.
type Direction string

// Edge directions.
const (
	DirectionSync  Direction = "sync"
	DirectionAsync Direction = "async"
)

// =============================================================================
// Node
// =============================================================================

// Node is a typed vertex in the architecture graph.
//
// ContainerType is an optional classification (e.g. "web", "db", "queue")
// and is only meaningful for container nodes. Boundary is an optional
// grouping identifier (e.g. a system boundary). The zero value is not
// usable - ID and Kind must be set.
type Node struct {
	ID            string         `json:"id" bson:"id"`
	Name          string         `json:"name,omitempty" bson:"name,omitempty"`
	Kind          Kind           `json:"kind" bson:"kind"`
	ContainerType string         `json:"container_type,omitempty" bson:"container_type,omitempty"`
	Technologies  []string       `json:"technologies,omitempty" bson:"technologies,omitempty"`
	Boundary      string         `json:"boundary,omitempty" bson:"boundary,omitempty"`
	Change        ChangeStatus   `json:"change,omitempty" bson:"change,omitempty"`
	Meta          map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (n Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// HasTechnology reports whether the node declares at least one of the
// given technologies. Nodes with an empty technology list never match.
func (n Node) HasTechnology(stack map[string]bool) bool {
	for _, t := range n.Technologies {
		if stack[t] {
			return true
		}
	}
	return false
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed relationship between two nodes.
//
// Source and Target must reference existing node IDs; [Model.Validate]
// rejects dangling endpoints. Multiple edges between the same node pair
// are allowed and are bundled at render time once a pair carries three
// or more.
type Edge struct {
	ID          string       `json:"id" bson:"id"`
	Source      string       `json:"source" bson:"source"`
	Target      string       `json:"target" bson:"target"`
	Protocol    string       `json:"protocol,omitempty" bson:"protocol,omitempty"`
	Method      string       `json:"method,omitempty" bson:"method,omitempty"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Direction   Direction    `json:"direction,omitempty" bson:"direction,omitempty"`
	Change      ChangeStatus `json:"change,omitempty" bson:"change,omitempty"`
	Deployment  bool         `json:"deployment,omitempty" bson:"deployment,omitempty"`
}

// IsAsync reports whether the edge represents asynchronous messaging.
func (e Edge) IsAsync() bool { return e.Direction == DirectionAsync }

// Label returns a short human-readable label for the edge. Protocol and
// method are joined when both are present ("HTTP GET"); the description
// is the fallback.
func (e Edge) Label() string {
	switch {
	case e.Protocol != "" && e.Method != "":
		return e.Protocol + " " + e.Method
	case e.Protocol != "":
		return e.Protocol
	default:
		return e.Description
	}
}
