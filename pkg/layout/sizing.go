package layout

import "math"

// Adaptive sizing bounds. Node width never leaves [minBaseSize, maxBaseSize]
// regardless of generation density.
const (
	minBaseSize = 15.0
	maxBaseSize = 60.0

	// heightRatio fixes the node aspect ratio at 3:2.
	heightRatio = 0.67

	// denseGenerationCap is the generation population at which per-node
	// shrinking starts; generations with fewer members keep the full base size.
	denseGenerationCap = 10.0
)

// baseNodeSize derives the shared base width from canvas width and the most
// populated generation. Degenerate arithmetic (empty histogram, zero canvas)
// clamps to a safe size instead of propagating non-finite values.
func baseNodeSize(canvasWidth float64, maxGenerationCount int) float64 {
	if maxGenerationCount <= 0 {
		return minBaseSize
	}
	size := canvasWidth * 0.7 / (float64(maxGenerationCount) * 1.5)
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return 1
	}
	return math.Min(math.Max(size, minBaseSize), maxBaseSize)
}

// assignSizes computes width and height for every arena node from the
// generation histogram. Densely populated generations shrink their members so
// oversized nodes cannot overlap without requiring a global pass.
func (a *arena) assignSizes(histogram map[int]int) {
	maxCount := 0
	for _, n := range histogram {
		if n > maxCount {
			maxCount = n
		}
	}
	base := baseNodeSize(a.params.CanvasWidth, maxCount)
	a.baseSize = base

	for i := range a.nodes {
		count := histogram[a.nodes[i].ind.Generation]
		scale := 1.0
		if count > 0 {
			scale = math.Min(1, denseGenerationCap/float64(count))
		}
		w := base * scale
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			w = 1
		}
		a.nodes[i].width = w
		a.nodes[i].height = w * heightRatio
	}
}
