package layout

import (
	"fmt"
	"sort"

	"github.com/mlindqvist/pedigree/pkg/gene"
)

// Debug line colors per relationship kind.
const (
	debugSpouseColor  = "#d33682"
	debugParentColor  = "#268bd2"
	debugSiblingColor = "#859900"
)

// buildOverlay assembles the debug overlay for the tree path: a labeled
// bounding box per positioned node, colored spouse/parent/sibling lines from
// the arena links, and one horizontal guide per generation band. The overlay
// is data for a renderer, nothing is painted here.
func (a *arena) buildOverlay() *Overlay {
	o := &Overlay{}
	bandY := make(map[int][]float64)

	for i := range a.nodes {
		n := &a.nodes[i]
		if !n.positioned {
			continue
		}
		o.Boxes = append(o.Boxes, DebugBox{
			ID:     n.id,
			X:      n.x - n.width/2,
			Y:      n.y - n.height/2,
			Width:  n.width,
			Height: n.height,
			Label:  boxLabel(n.ind.Name, n.ind.Generation, n.x, n.y),
		})
		bandY[n.depth] = append(bandY[n.depth], n.y)

		if p := n.parent; p >= 0 && a.nodes[p].positioned {
			o.Lines = append(o.Lines, debugLine("parent", &a.nodes[p], n, debugParentColor))
		}
		if ls := n.leftSibling; ls >= 0 && a.nodes[ls].positioned {
			o.Lines = append(o.Lines, debugLine("sibling", &a.nodes[ls], n, debugSiblingColor))
		}
		for _, s := range n.spouses {
			if i < s && a.nodes[s].positioned {
				o.Lines = append(o.Lines, debugLine("spouse", n, &a.nodes[s], debugSpouseColor))
			}
		}
	}

	o.Guides = guidesFromBands(bandY)
	return o
}

// overlayFromVisuals assembles the debug overlay for the fallback path, where
// no arena links exist: boxes from the emitted visuals, relationship lines
// from the flat list, guides from the recorded generation of each individual.
func overlayFromVisuals(snap *gene.Snapshot, visuals []NodeVisual, pos map[string]point) *Overlay {
	o := &Overlay{}
	gen := make(map[string]int, len(snap.Individuals))
	name := make(map[string]string, len(snap.Individuals))
	for _, ind := range snap.Individuals {
		gen[ind.ID] = ind.Generation
		name[ind.ID] = ind.Name
	}

	bandY := make(map[int][]float64)
	for _, v := range visuals {
		o.Boxes = append(o.Boxes, DebugBox{
			ID:     v.ID,
			X:      v.X - v.Width()/2,
			Y:      v.Y - v.Height()/2,
			Width:  v.Width(),
			Height: v.Height(),
			Label:  boxLabel(name[v.ID], gen[v.ID], v.X, v.Y),
		})
		bandY[gen[v.ID]] = append(bandY[gen[v.ID]], v.Y)
	}

	for _, rel := range snap.Relationships {
		src, okS := pos[rel.SourceID]
		dst, okD := pos[rel.TargetID]
		if !okS || !okD {
			continue
		}
		kind, color := "sibling", debugSiblingColor
		switch rel.Type {
		case gene.RelSpouse:
			kind, color = "spouse", debugSpouseColor
		case gene.RelParentChild:
			kind, color = "parent", debugParentColor
		}
		o.Lines = append(o.Lines, DebugLine{
			Kind: kind, Color: color,
			X1: src.x, Y1: src.y, X2: dst.x, Y2: dst.y,
		})
	}

	o.Guides = guidesFromBands(bandY)
	return o
}

func debugLine(kind string, from, to *node, color string) DebugLine {
	return DebugLine{
		Kind: kind, Color: color,
		X1: from.x, Y1: from.y, X2: to.x, Y2: to.y,
	}
}

func boxLabel(name string, generation int, x, y float64) string {
	return fmt.Sprintf("%s | gen %d | (%.0f, %.0f)", name, generation, x, y)
}

// guidesFromBands emits one horizontal guide per band at the mean y of its
// members, sorted by band index.
func guidesFromBands(bandY map[int][]float64) []DebugGuide {
	bands := make([]int, 0, len(bandY))
	for b := range bandY {
		bands = append(bands, b)
	}
	sort.Ints(bands)

	guides := make([]DebugGuide, 0, len(bands))
	for _, b := range bands {
		sum := 0.0
		for _, y := range bandY[b] {
			sum += y
		}
		guides = append(guides, DebugGuide{
			Generation: b,
			Y:          sum / float64(len(bandY[b])),
			Label:      fmt.Sprintf("Generation %d", b),
		})
	}
	return guides
}
