// Package render converts positioned subgraphs into presentation
// records for an external rendering surface.
//
// The output schema ([Node], [Edge]) is deliberately neutral: positions,
// sizes, colors, opacity, labels, and flags, with no vocabulary from any
// particular rendering library. Adapting it to a concrete canvas or
// diagram toolkit belongs in a thin serializer at the boundary, such as
// the DOT exporter in this package.
//
// # Responsibilities
//
//   - top-left positions derived from layout centers and node dimensions
//   - fill/stroke styling by node kind, overridden by changeset status
//   - opacity from focus context and path highlighting
//   - semantic-zoom detail levels
//   - bundling of three or more parallel edges between a node pair
//
// Records are recreated on every build and never persisted. A node that
// survived filtering but has no computed position is omitted and
// reported through the warnings list, not as an error.
package render
