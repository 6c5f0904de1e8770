package layout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mlindqvist/pedigree/pkg/gene"
)

// =============================================================================
// Edge Synthesizer
// =============================================================================

// point is a positioned endpoint for edge synthesis.
type point struct {
	x, y float64
}

// edgeBuilder accumulates straight-line edge descriptors while tracking the
// endpoint coordinates already used, so tree-derived edges are only added when
// no equivalent edge exists.
type edgeBuilder struct {
	edges []EdgeVisual
	seen  map[string]struct{}
	pos   map[string]point
}

func newEdgeBuilder(pos map[string]point) *edgeBuilder {
	return &edgeBuilder{
		seen: make(map[string]struct{}),
		pos:  pos,
	}
}

// add emits an edge descriptor between two positioned endpoints. The curve
// type is forced to straight, overriding any curvature state left by other
// pipeline stages, and the literal endpoint coordinates are stored so the
// renderer never re-derives them.
func (b *edgeBuilder) add(id, sourceID, targetID string, t gene.RelationshipType) {
	src, okS := b.pos[sourceID]
	dst, okD := b.pos[targetID]
	if !okS || !okD {
		return
	}
	color, weight := strokeForType(t)
	b.edges = append(b.edges, EdgeVisual{
		ID:           id,
		SourceID:     sourceID,
		TargetID:     targetID,
		Type:         t,
		MidX:         (src.x + dst.x) / 2,
		MidY:         (src.y + dst.y) / 2,
		X1:           src.x,
		Y1:           src.y,
		X2:           dst.x,
		Y2:           dst.y,
		StrokeColor:  color,
		StrokeWeight: weight,
		Opacity:      edgeOpacity,
		CurveType:    CurveStraight,
	})
	b.seen[endpointKey(src, dst)] = struct{}{}
}

// addIfNew emits a synthesized edge only when no edge with the same endpoint
// coordinates exists yet, to avoid duplicate rendering.
func (b *edgeBuilder) addIfNew(sourceID, targetID string, t gene.RelationshipType) {
	src, okS := b.pos[sourceID]
	dst, okD := b.pos[targetID]
	if !okS || !okD {
		return
	}
	if _, dup := b.seen[endpointKey(src, dst)]; dup {
		return
	}
	b.add(uuid.NewString(), sourceID, targetID, t)
}

// endpointKey is an order-independent key over two endpoint coordinates.
func endpointKey(a, b point) string {
	if b.x < a.x || (b.x == a.x && b.y < a.y) {
		a, b = b, a
	}
	return fmt.Sprintf("%.3f,%.3f-%.3f,%.3f", a.x, a.y, b.x, b.y)
}

// synthesizeEdges derives edge descriptors for every relationship whose both
// endpoints were positioned, then adds tree-derived parent-child and spouse
// edges that have no equivalent in the relationship list.
func (a *arena) synthesizeEdges(relationships []gene.Relationship) []EdgeVisual {
	pos := make(map[string]point, len(a.nodes))
	for i := range a.nodes {
		if a.nodes[i].positioned {
			pos[a.nodes[i].id] = point{a.nodes[i].x, a.nodes[i].y}
		}
	}

	b := newEdgeBuilder(pos)
	for _, rel := range relationships {
		b.add(rel.ID, rel.SourceID, rel.TargetID, rel.Type)
	}

	for i := range a.nodes {
		if p := a.nodes[i].parent; p >= 0 && !a.nodes[i].spliced {
			b.addIfNew(a.nodes[p].id, a.nodes[i].id, gene.RelParentChild)
		}
		for _, s := range a.nodes[i].spouses {
			if i < s {
				b.addIfNew(a.nodes[i].id, a.nodes[s].id, gene.RelSpouse)
			}
		}
	}

	return b.edges
}

// edgesFromPositions synthesizes relationship edges for the fallback path,
// where no tree links exist and only the flat relationship list applies.
func edgesFromPositions(relationships []gene.Relationship, pos map[string]point) []EdgeVisual {
	b := newEdgeBuilder(pos)
	for _, rel := range relationships {
		b.add(rel.ID, rel.SourceID, rel.TargetID, rel.Type)
	}
	return b.edges
}
