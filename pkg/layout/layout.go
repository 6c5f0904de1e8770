package layout

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/pedigree/pkg/errors"
	"github.com/mlindqvist/pedigree/pkg/gene"
	"github.com/mlindqvist/pedigree/pkg/observability"
)

// Compute runs one full layout invocation over the snapshot: tree assembly,
// two-pass positioning, canvas fit and edge synthesis, or the
// generation-banded fallback when the snapshot carries no traversal adapter.
//
// The snapshot is read once and never mutated; all working state lives in a
// per-invocation arena. An empty snapshot yields an empty result. Shape
// violations (missing or duplicate IDs) are the only errors surfaced;
// malformed domain data degrades the layout instead.
func Compute(ctx context.Context, snap *gene.Snapshot, params Params, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	params = params.Sanitize()

	if err := snap.Validate(); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout input")
	}
	if len(snap.Individuals) == 0 {
		return Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if !snap.HasTraversal() {
		observability.Layout().OnFallback(ctx, len(snap.Individuals))
		logger.Info("no traversal adapter, using generation-banded layout",
			"individuals", len(snap.Individuals))
		return computeFallbackResult(snap, params, logger), nil
	}
	return computeTree(ctx, snap, params, logger)
}

// computeTree runs the full tree path.
func computeTree(ctx context.Context, snap *gene.Snapshot, params Params, logger *log.Logger) (Result, error) {
	hooks := observability.Layout()

	hooks.OnBuildStart(ctx, len(snap.Individuals))
	buildStart := time.Now()
	a := buildTree(snap, params, logger)
	hooks.OnBuildComplete(ctx, a.treeSize(), time.Since(buildStart), nil)

	if a.root < 0 {
		logger.Warn("no root candidate found", "individuals", len(snap.Individuals))
		return Result{}, nil
	}

	hooks.OnLayoutStart(ctx, a.treeSize())
	layoutStart := time.Now()
	a.runWalker()
	a.fitToCanvas()
	hooks.OnLayoutComplete(ctx, a.treeSize(), time.Since(layoutStart), nil)

	res := Result{
		Nodes:  a.nodeVisuals(),
		Edges:  a.synthesizeEdges(snap.Relationships),
		RootID: a.nodes[a.root].id,
	}
	if params.DebugMode {
		res.Debug = a.buildOverlay()
	}
	logger.Debug("layout complete",
		"nodes", len(res.Nodes), "edges", len(res.Edges), "root", res.RootID)
	return res, nil
}

// computeFallbackResult runs the degraded path and packages the result.
func computeFallbackResult(snap *gene.Snapshot, params Params, logger *log.Logger) Result {
	visuals, pos := computeFallback(snap, params, logger)
	res := Result{
		Nodes:    visuals,
		Edges:    edgesFromPositions(snap.Relationships, pos),
		Fallback: true,
	}
	if params.DebugMode {
		res.Debug = overlayFromVisuals(snap, visuals, pos)
	}
	return res
}

// nodeVisuals emits one visual per positioned arena node, in arena order.
// Width and height carry over through the fit transform as multipliers
// against the shared base size.
func (a *arena) nodeVisuals() []NodeVisual {
	visuals := make([]NodeVisual, 0, len(a.nodes))
	base := a.baseSize
	if base <= 0 {
		base = 1
	}
	for i := range a.nodes {
		n := &a.nodes[i]
		if !n.positioned {
			continue
		}
		visuals = append(visuals, NodeVisual{
			ID:               n.id,
			X:                n.x,
			Y:                n.y,
			WidthMultiplier:  n.width / base,
			HeightMultiplier: n.height / base,
			BaseSize:         base,
			Shape:            ShapeRect,
			FillColor:        fillForGender(n.ind.Gender),
			StrokeColor:      nodeStrokeColor,
			StrokeWeight:     nodeStrokeWeight,
			Opacity:          nodeOpacity,
		})
	}
	return visuals
}
