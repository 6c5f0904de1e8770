package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/pedigree/pkg/gene"
	"github.com/mlindqvist/pedigree/pkg/graph"
	"github.com/mlindqvist/pedigree/pkg/layout"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner with the given logger.
// A nil logger falls back to the package default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout layout.Result

	// Document is the serializable form of the layout.
	Document graph.Document

	// Artifact contains the exported document bytes.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	IndividualCount int
	NodeCount       int
	EdgeCount       int
	Fallback        bool
	BuildTime       time.Duration
	LayoutTime      time.Duration
	ExportTime      time.Duration
}

// Execute runs the complete build → layout → export pipeline.
func (r *Runner) Execute(ctx context.Context, in graph.Input, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	snap, err := r.Build(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.IndividualCount = len(snap.Individuals)

	r.Logger.Info("built snapshot",
		"individuals", len(snap.Individuals),
		"relationships", len(snap.Relationships),
		"duration", result.Stats.BuildTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	res, err := r.ComputeLayout(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(res.Nodes)
	result.Stats.EdgeCount = len(res.Edges)
	result.Stats.Fallback = res.Fallback

	r.Logger.Info("computed layout",
		"nodes", len(res.Nodes),
		"edges", len(res.Edges),
		"fallback", res.Fallback,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Export
	exportStart := time.Now()
	doc, data, err := r.Export(res, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Document = doc
	result.Artifact = data
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported layout",
		"format", opts.Format,
		"bytes", len(data),
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Build assembles and validates the layout snapshot from the input lists.
func (r *Runner) Build(ctx context.Context, in graph.Input) (*gene.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := in.Snapshot()
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ComputeLayout runs the layout engine over a snapshot.
func (r *Runner) ComputeLayout(ctx context.Context, snap *gene.Snapshot, opts Options) (layout.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, err
	}
	r.applyLogger(&opts)
	return layout.Compute(ctx, snap, opts.LayoutParams(), opts.Logger)
}

// Export serializes a computed layout into the requested format.
func (r *Runner) Export(res layout.Result, opts Options) (graph.Document, []byte, error) {
	if err := opts.ValidateForExport(); err != nil {
		return graph.Document{}, nil, err
	}
	doc := graph.NewDocument(res, opts.LayoutParams())
	data, err := graph.MarshalDocument(doc)
	if err != nil {
		return graph.Document{}, nil, fmt.Errorf("serialize document: %w", err)
	}
	return doc, data, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
