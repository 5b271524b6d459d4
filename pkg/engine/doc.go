// Package engine orchestrates the complete transform pipeline for
// ArchLens.
//
// This package wires the filter stages, layout engine, layout cache,
// and render builder into one entry point that CLI and API share. By
// centralizing this logic, all entry points behave identically.
//
// # Architecture
//
// A transform call runs the fixed stage sequence:
//
//	view level → user filters → scenario preset → changeset filter
//	          → layout (cached) → render graph + breadcrumbs
//
// Each stage's output is the next stage's input domain, so the order is
// not configurable. A call is synchronous and runs to completion on the
// caller's goroutine; the layout cache is the engine's only mutable
// state, which is why an [Engine] instance must not be shared between
// goroutines without external synchronization.
//
// # Usage
//
//	eng := engine.New(layout.Options{}, logger)
//	opts := engine.Options{
//	    ViewLevel: transform.LevelContext,
//	    Algorithm: layout.AlgorithmForce,
//	}
//	result, err := eng.Transform(m, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// result.Nodes, result.Edges, result.Bounds, result.Breadcrumbs
package engine
