package layout

import "math"

// =============================================================================
// Parameters
// =============================================================================

// Default spacing and canvas values. Callers may override any of them; values
// that are non-positive or non-finite fall back to these defaults rather than
// being rejected.
const (
	DefaultNodeSpacing       = 40.0
	DefaultGenerationSpacing = 100.0
	DefaultSpouseSpacing     = 30.0
	DefaultFamilySpacing     = 60.0
	DefaultCanvasWidth       = 800.0
	DefaultCanvasHeight      = 600.0
)

// SpouseOrder names the policy for ordering a spouse pair in sibling order.
type SpouseOrder int

const (
	// SpouseOrderFemaleFirst places the female partner to the left of the male
	// partner, falling back to lexicographic ID order when gender is unknown
	// or equal. This is the conventional rendering order.
	SpouseOrderFemaleFirst SpouseOrder = iota

	// SpouseOrderMaleFirst inverts the convention.
	SpouseOrderMaleFirst
)

// Params carries the caller-supplied layout configuration.
type Params struct {
	NodeSpacing       float64 `json:"node_spacing,omitempty" bson:"node_spacing,omitempty"`
	GenerationSpacing float64 `json:"generation_spacing,omitempty" bson:"generation_spacing,omitempty"`
	SpouseSpacing     float64 `json:"spouse_spacing,omitempty" bson:"spouse_spacing,omitempty"`
	FamilySpacing     float64 `json:"family_spacing,omitempty" bson:"family_spacing,omitempty"`
	CanvasWidth       float64 `json:"canvas_width,omitempty" bson:"canvas_width,omitempty"`
	CanvasHeight      float64 `json:"canvas_height,omitempty" bson:"canvas_height,omitempty"`
	DebugMode         bool    `json:"debug_mode,omitempty" bson:"debug_mode,omitempty"`

	// SpouseOrder selects the spouse-pair ordering policy.
	SpouseOrder SpouseOrder `json:"-" bson:"-"`
}

// DefaultParams returns the default layout configuration.
func DefaultParams() Params {
	return Params{
		NodeSpacing:       DefaultNodeSpacing,
		GenerationSpacing: DefaultGenerationSpacing,
		SpouseSpacing:     DefaultSpouseSpacing,
		FamilySpacing:     DefaultFamilySpacing,
		CanvasWidth:       DefaultCanvasWidth,
		CanvasHeight:      DefaultCanvasHeight,
		SpouseOrder:       SpouseOrderFemaleFirst,
	}
}

// Sanitize replaces out-of-range or non-finite values with defaults.
// Bad configuration degrades, it never errors.
func (p Params) Sanitize() Params {
	p.NodeSpacing = orDefault(p.NodeSpacing, DefaultNodeSpacing)
	p.GenerationSpacing = orDefault(p.GenerationSpacing, DefaultGenerationSpacing)
	p.SpouseSpacing = orDefault(p.SpouseSpacing, DefaultSpouseSpacing)
	p.FamilySpacing = orDefault(p.FamilySpacing, DefaultFamilySpacing)
	p.CanvasWidth = orDefault(p.CanvasWidth, DefaultCanvasWidth)
	p.CanvasHeight = orDefault(p.CanvasHeight, DefaultCanvasHeight)
	return p
}

func orDefault(v, def float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// =============================================================================
// Spacing Policy
// =============================================================================

// Horizontal pads added on top of the average node width so that even with
// tiny spacing parameters two nodes can never touch.
const (
	padSpouse  = 4.0
	padFamily  = 16.0
	padSibling = 8.0
)

// compactThreshold is the node dimension below which dense-generation
// compaction kicks in.
const compactThreshold = 20.0

// compactMultiplier shrinks category spacing for very small nodes.
const compactMultiplier = 0.3

// requiredDistance returns the minimum center-to-center distance between two
// nodes sharing a row. Categories are evaluated in priority order: spouse
// pair, different family cluster, same-parent siblings, unrelated.
func (a *arena) requiredDistance(l, r int) float64 {
	ln, rn := &a.nodes[l], &a.nodes[r]

	avg := (ln.width + rn.width) / 2
	mult := 1.0
	if math.Min(ln.width, ln.height) < compactThreshold || math.Min(rn.width, rn.height) < compactThreshold {
		mult = compactMultiplier
	}

	switch {
	case a.areSpouses(l, r):
		return math.Max(a.params.SpouseSpacing*mult, avg+padSpouse)
	case ln.family != "" && rn.family != "" && ln.family != rn.family:
		return math.Max(a.params.FamilySpacing*mult, avg+padFamily)
	case ln.parent >= 0 && ln.parent == rn.parent:
		return math.Max(0.5*a.params.NodeSpacing*mult, avg+padSibling)
	default:
		return math.Max(a.params.NodeSpacing*mult, avg+padSibling)
	}
}

// areSpouses reports whether the two arena nodes form a spouse pair.
func (a *arena) areSpouses(l, r int) bool {
	for _, s := range a.nodes[l].spouses {
		if s == r {
			return true
		}
	}
	return false
}

// spouseBefore reports whether individual a should precede individual b in
// sibling order under the given policy. Unknown or equal genders fall back to
// lexicographic ID order.
func spouseBefore(aGender, bGender string, aID, bID string, order SpouseOrder) bool {
	first := "female"
	if order == SpouseOrderMaleFirst {
		first = "male"
	}
	if aGender != bGender {
		if aGender == first {
			return true
		}
		if bGender == first {
			return false
		}
	}
	return aID < bID
}
