package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archlens/archlens/pkg/layout"
	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/observability"
	"github.com/archlens/archlens/pkg/render"
	"github.com/archlens/archlens/pkg/transform"
)

// =============================================================================
// Result Types
// =============================================================================

// Stats records per-phase wall-clock timings for one transform run.
type Stats struct {
	FilterTime time.Duration `json:"filter_time"`
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
	TotalTime  time.Duration `json:"total_time"`
}

// CacheInfo reports whether the layout phase was served from cache.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
}

// Result is the complete output of a transform run: the positioned
// render graph plus navigation and diagnostic metadata.
type Result struct {
	Nodes        []render.Node `json:"nodes"`
	Edges        []render.Edge `json:"edges"`
	Bounds       layout.Bounds `json:"bounds"`
	Breadcrumbs  []Breadcrumb  `json:"breadcrumbs"`
	VisibleNodes int           `json:"visible_nodes"`
	VisibleEdges int           `json:"visible_edges"`
	Warnings     []string      `json:"warnings,omitempty"`
	Stats        Stats         `json:"stats"`
	CacheInfo    CacheInfo     `json:"cache_info"`
}

// =============================================================================
// Engine
// =============================================================================

// Engine runs the transform pipeline. It owns a bounded layout cache
// and is safe for sequential reuse across requests; callers needing
// concurrent transforms must serialize access or use one Engine per
// goroutine.
type Engine struct {
	layoutCache *layout.Cache
	logger      *log.Logger
}

// New constructs an Engine with the given layout tuning. A nil logger
// disables engine logging.
func New(layoutOpts layout.Options, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		layoutCache: layout.NewCache(layout.NewEngine(layoutOpts), layout.DefaultCacheSize),
		logger:      logger,
	}
}

// Transform runs the full pipeline over the model: view-level filter,
// user filters, scenario preset, changeset filter, layout, and render
// build. Stages always run in that order.
func (e *Engine) Transform(m *model.Model, opts Options) (*Result, error) {
	if m == nil {
		m = &model.Model{}
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Transform()
	hooks.OnTransformStart(len(m.Nodes), len(m.Edges))

	s := transform.FromModel(m)

	s = e.stage(s, "view-level", hooks, func(s transform.Subgraph) transform.Subgraph {
		return transform.ByViewLevel(m, s, opts.ViewLevel, opts.selection())
	})
	s = e.stage(s, "user-filters", hooks, func(s transform.Subgraph) transform.Subgraph {
		return transform.ApplyUserFilters(s, opts.Filters)
	})
	if opts.Preset != "" {
		s = e.stage(s, "preset", hooks, func(s transform.Subgraph) transform.Subgraph {
			return transform.ApplyPreset(m, s, opts.Preset)
		})
	}
	if opts.ChangesOnly {
		s = e.stage(s, "changeset", hooks, func(s transform.Subgraph) transform.Subgraph {
			return transform.ChangesOnly(s)
		})
	}
	filterTime := time.Since(start)

	layoutStart := time.Now()
	algo := opts.Algorithm.Normalize()
	lay, hit := e.layoutCache.Compute(s, algo, opts.ExistingPositions)
	layoutTime := time.Since(layoutStart)
	hooks.OnLayout(string(algo), len(s.Nodes), layoutTime, hit)
	e.logger.Debug("layout computed",
		"algorithm", algo, "nodes", len(s.Nodes), "cache_hit", hit, "duration", layoutTime)

	renderStart := time.Now()
	graph := render.Build(s, lay, render.Options{
		Zoom:      opts.Zoom,
		Focus:     opts.Focus,
		Highlight: opts.Highlight,
	})
	renderTime := time.Since(renderStart)

	total := time.Since(start)
	hooks.OnTransformComplete(len(graph.Nodes), len(graph.Edges), len(graph.Warnings), total)
	e.logger.Debug("transform complete",
		"visible_nodes", len(graph.Nodes), "visible_edges", len(graph.Edges),
		"warnings", len(graph.Warnings), "duration", total)

	return &Result{
		Nodes:        graph.Nodes,
		Edges:        graph.Edges,
		Bounds:       lay.Bounds,
		Breadcrumbs:  Breadcrumbs(m, opts.ViewLevel, opts.selection()),
		VisibleNodes: len(graph.Nodes),
		VisibleEdges: len(graph.Edges),
		Warnings:     graph.Warnings,
		Stats: Stats{
			FilterTime: filterTime,
			LayoutTime: layoutTime,
			RenderTime: renderTime,
			TotalTime:  total,
		},
		CacheInfo: CacheInfo{LayoutHit: hit},
	}, nil
}

// stage runs one filter stage, logging and reporting its outcome.
func (e *Engine) stage(s transform.Subgraph, name string,
	hooks observability.TransformHooks, fn func(transform.Subgraph) transform.Subgraph) transform.Subgraph {
	stageStart := time.Now()
	out := fn(s)
	elapsed := time.Since(stageStart)
	hooks.OnStage(name, len(out.Nodes), len(out.Edges), elapsed)
	e.logger.Debug("stage complete",
		"stage", name, "nodes", len(out.Nodes), "edges", len(out.Edges), "duration", elapsed)
	return out
}

// LayoutCacheStats exposes layout cache counters for diagnostics.
func (e *Engine) LayoutCacheStats() layout.Stats {
	return e.layoutCache.Stats()
}

// ClearLayoutCache empties the layout cache.
func (e *Engine) ClearLayoutCache() {
	e.layoutCache.Clear()
}
