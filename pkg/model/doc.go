// Package model defines the architecture graph model consumed by the
// transform and layout engine.
//
// This package is the canonical wire format for ArchLens graph data, used
// for JSON files, API requests, and caching. It loosely follows the C4
// model's abstraction levels: systems contain containers, containers
// contain components, and external actors sit at the boundary.
//
// # Core Types
//
//   - [Model]: the full graph (nodes, edges, container→component index)
//   - [Node]: a typed vertex (container, component, external actor, ...)
//   - [Edge]: a directed relationship with protocol/method metadata
//
// # Serialization
//
// Models use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "web", "kind": "container"}, ...],
//	  "edges": [{"id": "e1", "source": "web", "target": "db"}, ...],
//	  "components": {"web": ["web.auth", "web.api"]}
//	}
//
// Common operations:
//
//	m, _ := model.ReadFile("model.json")   // file → *Model
//	data, _ := model.Marshal(m)            // *Model → []byte
//	m, _ := model.Unmarshal(data)          // []byte → *Model
//
// # Immutability
//
// The engine treats a Model as immutable for the duration of a transform
// call. Callers that mutate a Model between calls must not share it with
// an in-flight transform.
//
// # Validation
//
// [Model.Validate] checks structural invariants (unique non-empty node
// IDs, no dangling edge endpoints, index entries referencing real nodes).
// Structurally invalid models are the provider's responsibility; the
// engine assumes Validate has passed.
package model
