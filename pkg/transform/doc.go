// Package transform implements the graph filtering pipeline.
//
// A transform run narrows the full architecture model down to the node
// and edge subset that should be laid out and rendered. Stages are pure
// functions over a [Subgraph] and run in a fixed order:
//
//  1. [ByViewLevel]: restrict to the current abstraction level
//  2. [ApplyUserFilters]: container-type and technology filters
//  3. [ApplyPreset]: named scenario preset inclusion rules
//  4. [ChangesOnly]: optional changeset-only view
//
// Each stage re-filters edges against its surviving node set, so a
// subgraph never contains a dangling edge. Apart from the documented
// external-actor re-inclusion rule in container view, every stage is
// monotone: it only removes nodes.
//
// Stages take the full [model.Model] alongside the subgraph because some
// rules (external-actor adjacency, the component index) are defined over
// the unfiltered graph.
package transform
