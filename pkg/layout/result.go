package layout

import "github.com/mlindqvist/pedigree/pkg/gene"

// =============================================================================
// Constants - Visual Defaults
// =============================================================================

// Node shape emitted for every individual. The aspect ratio is fixed at 3:2.
const ShapeRect = "rect"

// CurveStraight is the explicit curve designation carried by every synthesized
// edge. It overrides any curvature state left by other pipeline stages; the
// renderer draws from the stored endpoint coordinates.
const CurveStraight = "straight"

// Fill colors keyed by gender.
const (
	fillMale    = "#7eb1dd"
	fillFemale  = "#f4a6c8"
	fillUnknown = "#c8c8c8"
)

// Node stroke defaults.
const (
	nodeStrokeColor  = "#4f4f4f"
	nodeStrokeWeight = 1.0
	nodeOpacity      = 1.0
)

// Edge stroke presets per relationship type. Spouse edges are thicker and
// darker than parent-child edges.
const (
	strokeParentChild       = "#8a8a8a"
	strokeParentChildWeight = 1.5
	strokeSpouse            = "#5a5a5a"
	strokeSpouseWeight      = 3.0
	strokeSibling           = "#b5b5b5"
	strokeSiblingWeight     = 1.0
	strokeOther             = "#c0c0c0"
	strokeOtherWeight       = 1.0
	edgeOpacity             = 0.9
)

// =============================================================================
// Output Types
// =============================================================================

// NodeVisual is the positioning output for one individual.
type NodeVisual struct {
	ID               string  `json:"id" bson:"id"`
	X                float64 `json:"x" bson:"x"`
	Y                float64 `json:"y" bson:"y"`
	WidthMultiplier  float64 `json:"width_multiplier" bson:"width_multiplier"`
	HeightMultiplier float64 `json:"height_multiplier" bson:"height_multiplier"`
	BaseSize         float64 `json:"base_size" bson:"base_size"`
	Shape            string  `json:"shape" bson:"shape"`
	FillColor        string  `json:"fill_color" bson:"fill_color"`
	StrokeColor      string  `json:"stroke_color" bson:"stroke_color"`
	StrokeWeight     float64 `json:"stroke_weight" bson:"stroke_weight"`
	Opacity          float64 `json:"opacity" bson:"opacity"`
}

// Width returns the effective node width.
func (n NodeVisual) Width() float64 { return n.BaseSize * n.WidthMultiplier }

// Height returns the effective node height.
func (n NodeVisual) Height() float64 { return n.BaseSize * n.HeightMultiplier }

// EdgeVisual is a straight-line edge descriptor between two positioned nodes.
// Endpoint coordinates are stored literally so the renderer never re-derives
// them from node positions.
type EdgeVisual struct {
	ID           string                `json:"id" bson:"id"`
	SourceID     string                `json:"source_id" bson:"source_id"`
	TargetID     string                `json:"target_id" bson:"target_id"`
	Type         gene.RelationshipType `json:"type" bson:"type"`
	MidX         float64               `json:"mid_x" bson:"mid_x"`
	MidY         float64               `json:"mid_y" bson:"mid_y"`
	X1           float64               `json:"x1" bson:"x1"`
	Y1           float64               `json:"y1" bson:"y1"`
	X2           float64               `json:"x2" bson:"x2"`
	Y2           float64               `json:"y2" bson:"y2"`
	StrokeColor  string                `json:"stroke_color" bson:"stroke_color"`
	StrokeWeight float64               `json:"stroke_weight" bson:"stroke_weight"`
	Opacity      float64               `json:"opacity" bson:"opacity"`
	CurveType    string                `json:"curve_type" bson:"curve_type"`
}

// =============================================================================
// Debug Overlay
// =============================================================================

// DebugBox is a per-node bounding box with a text label.
type DebugBox struct {
	ID     string  `json:"id" bson:"id"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Label  string  `json:"label" bson:"label"`
}

// DebugLine is a colored relationship line between two node centers.
type DebugLine struct {
	Kind  string  `json:"kind" bson:"kind"` // "spouse", "parent", "sibling"
	X1    float64 `json:"x1" bson:"x1"`
	Y1    float64 `json:"y1" bson:"y1"`
	X2    float64 `json:"x2" bson:"x2"`
	Y2    float64 `json:"y2" bson:"y2"`
	Color string  `json:"color" bson:"color"`
}

// DebugGuide is a horizontal generation-band guide line with a label.
type DebugGuide struct {
	Generation int     `json:"generation" bson:"generation"`
	Y          float64 `json:"y" bson:"y"`
	Label      string  `json:"label" bson:"label"`
}

// Overlay is the optional debug output, produced only in debug mode.
// It is data for a renderer, never painted here.
type Overlay struct {
	Boxes  []DebugBox   `json:"boxes,omitempty" bson:"boxes,omitempty"`
	Lines  []DebugLine  `json:"lines,omitempty" bson:"lines,omitempty"`
	Guides []DebugGuide `json:"guides,omitempty" bson:"guides,omitempty"`
}

// =============================================================================
// Result
// =============================================================================

// Result is the complete output of one layout invocation.
type Result struct {
	// Nodes holds one visual per positioned individual. On the tree path this
	// is the selected root plus its descendants; on the fallback path it is
	// every individual in the snapshot.
	Nodes []NodeVisual `json:"nodes" bson:"nodes"`

	// Edges holds straight-line descriptors for every relationship whose both
	// endpoints were positioned, plus deduplicated tree-derived edges.
	Edges []EdgeVisual `json:"edges" bson:"edges"`

	// Debug is populated only when Params.DebugMode is set.
	Debug *Overlay `json:"debug,omitempty" bson:"debug,omitempty"`

	// Fallback reports whether the generation-banded fallback was used.
	Fallback bool `json:"fallback,omitempty" bson:"fallback,omitempty"`

	// RootID is the selected root on the tree path, empty otherwise.
	RootID string `json:"root_id,omitempty" bson:"root_id,omitempty"`
}

// Node returns the visual for the given individual ID and true, or a zero
// visual and false when the individual was not positioned.
func (r *Result) Node(id string) (NodeVisual, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeVisual{}, false
}

// fillForGender maps a gender tag onto its fill color.
func fillForGender(g gene.Gender) string {
	switch g.Normalize() {
	case gene.GenderMale:
		return fillMale
	case gene.GenderFemale:
		return fillFemale
	default:
		return fillUnknown
	}
}

// strokeForType returns the stroke color and weight for a relationship type.
func strokeForType(t gene.RelationshipType) (string, float64) {
	switch t {
	case gene.RelSpouse:
		return strokeSpouse, strokeSpouseWeight
	case gene.RelParentChild:
		return strokeParentChild, strokeParentChildWeight
	case gene.RelSibling:
		return strokeSibling, strokeSiblingWeight
	default:
		return strokeOther, strokeOtherWeight
	}
}
