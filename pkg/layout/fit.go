package layout

import "math"

// Canvas-fit margins: at least this many units, or 10% of the corresponding
// canvas dimension, whichever is larger.
const (
	minMargin      = 50.0
	marginFraction = 0.10
)

// fitToCanvas scales and translates the raw layout into canvas bounds. The
// union bounding box of all node centers expanded by half extents is scaled by
// min(1, availW/treeW, availH/treeH) - the tree is never scaled up - and
// centered inside the margined area. Scale and translation apply uniformly to
// every node's x, y, width and height.
func (a *arena) fitToCanvas() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	any := false

	for i := range a.nodes {
		n := &a.nodes[i]
		if !n.positioned {
			continue
		}
		any = true
		minX = math.Min(minX, n.x-n.width/2)
		maxX = math.Max(maxX, n.x+n.width/2)
		minY = math.Min(minY, n.y-n.height/2)
		maxY = math.Max(maxY, n.y+n.height/2)
	}
	if !any {
		return
	}

	marginX := math.Max(minMargin, a.params.CanvasWidth*marginFraction)
	marginY := math.Max(minMargin, a.params.CanvasHeight*marginFraction)
	availW := a.params.CanvasWidth - 2*marginX
	availH := a.params.CanvasHeight - 2*marginY

	treeW := maxX - minX
	treeH := maxY - minY

	scale := 1.0
	if treeW > 0 && availW > 0 {
		scale = math.Min(scale, availW/treeW)
	}
	if treeH > 0 && availH > 0 {
		scale = math.Min(scale, availH/treeH)
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}

	offsetX := marginX + (availW-treeW*scale)/2
	offsetY := marginY + (availH-treeH*scale)/2

	for i := range a.nodes {
		n := &a.nodes[i]
		if !n.positioned {
			continue
		}
		n.x = offsetX + (n.x-minX)*scale
		n.y = offsetY + (n.y-minY)*scale
		n.width *= scale
		n.height *= scale
	}
}
