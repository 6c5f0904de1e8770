package layout

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/pedigree/pkg/gene"
)

// Fallback layout constants.
const (
	// fallbackMinSpacing is the minimum horizontal gap between fallback nodes.
	fallbackMinSpacing = 10.0

	// fallbackRowPad separates stacked rows inside one generation's slot.
	fallbackRowPad = 10.0

	// rebucketThreshold is the single-generation population above which the
	// set is synthetically split into sqrt-sized pseudo-generations instead of
	// collapsing into one unreadable row.
	rebucketThreshold = 12
)

// fallbackBand is one generation band of the degraded layout.
type fallbackBand struct {
	generation int
	members    []gene.Individual
}

// computeFallback lays out individuals in generation bands using only the
// recorded generation field, for snapshots whose adapter lacks traversal
// capability. Bands wrap into stacked rows when they overflow the canvas
// width; rows are centered and generations stack top to bottom.
func computeFallback(snap *gene.Snapshot, params Params, logger *log.Logger) ([]NodeVisual, map[string]point) {
	bands := fallbackBands(snap.Individuals, logger)

	visuals := make([]NodeVisual, 0, len(snap.Individuals))
	pos := make(map[string]point, len(snap.Individuals))

	y := 0.0
	for _, band := range bands {
		n := len(band.members)
		size := fallbackNodeSize(params.CanvasWidth, n)
		height := size * heightRatio

		perRow := int((params.CanvasWidth - fallbackMinSpacing) / (size + fallbackMinSpacing))
		if perRow < 1 {
			perRow = 1
		}

		for row := 0; row*perRow < n; row++ {
			start := row * perRow
			end := start + perRow
			if end > n {
				end = n
			}
			count := end - start
			rowWidth := float64(count)*(size+fallbackMinSpacing) - fallbackMinSpacing
			x0 := (params.CanvasWidth-rowWidth)/2 + size/2
			rowY := y + float64(row)*(height+fallbackRowPad)

			for i, ind := range band.members[start:end] {
				x := x0 + float64(i)*(size+fallbackMinSpacing)
				visuals = append(visuals, NodeVisual{
					ID:               ind.ID,
					X:                x,
					Y:                rowY,
					WidthMultiplier:  1,
					HeightMultiplier: heightRatio,
					BaseSize:         size,
					Shape:            ShapeRect,
					FillColor:        fillForGender(ind.Gender),
					StrokeColor:      nodeStrokeColor,
					StrokeWeight:     nodeStrokeWeight,
					Opacity:          nodeOpacity,
				})
				pos[ind.ID] = point{x, rowY}
			}
		}
		y += params.GenerationSpacing
	}

	return visuals, pos
}

// fallbackBands partitions individuals into generation bands, synthetically
// re-bucketing a large single-generation set into ceil(sqrt(n)) rows.
func fallbackBands(individuals []gene.Individual, logger *log.Logger) []fallbackBand {
	byGen := make(map[int][]gene.Individual)
	for _, ind := range individuals {
		byGen[ind.Generation] = append(byGen[ind.Generation], ind)
	}

	if len(byGen) == 1 && len(individuals) > rebucketThreshold {
		side := int(math.Ceil(math.Sqrt(float64(len(individuals)))))
		logger.Debug("re-bucketing flat generation", "individuals", len(individuals), "rows", side)
		bands := make([]fallbackBand, 0, side)
		for start := 0; start < len(individuals); start += side {
			end := start + side
			if end > len(individuals) {
				end = len(individuals)
			}
			bands = append(bands, fallbackBand{
				generation: len(bands),
				members:    individuals[start:end],
			})
		}
		return bands
	}

	gens := make([]int, 0, len(byGen))
	for g := range byGen {
		gens = append(gens, g)
	}
	sort.Ints(gens)

	bands := make([]fallbackBand, 0, len(gens))
	for _, g := range gens {
		bands = append(bands, fallbackBand{generation: g, members: byGen[g]})
	}
	return bands
}

// fallbackNodeSize computes a uniform node size fitting n nodes in the canvas
// width at minimum spacing, clamped to the adaptive sizing bounds. Degenerate
// arithmetic clamps to 1.
func fallbackNodeSize(canvasWidth float64, n int) float64 {
	if n <= 0 {
		return minBaseSize
	}
	size := (canvasWidth - float64(n+1)*fallbackMinSpacing) / float64(n)
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return 1
	}
	return math.Min(math.Max(size, minBaseSize), maxBaseSize)
}
