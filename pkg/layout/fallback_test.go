package layout

import (
	"context"
	"fmt"
	"testing"

	"github.com/mlindqvist/pedigree/pkg/gene"
)

// fallbackSnapshot builds a snapshot without a traversal adapter.
func fallbackSnapshot(individuals []gene.Individual, relationships []gene.Relationship) *gene.Snapshot {
	return &gene.Snapshot{Individuals: individuals, Relationships: relationships}
}

func TestComputeFallbackBands(t *testing.T) {
	individuals := []gene.Individual{
		{ID: "g0a", Generation: 0},
		{ID: "g1a", Generation: 1},
		{ID: "g1b", Generation: 1},
		{ID: "g2a", Generation: 2},
	}
	relationships := []gene.Relationship{
		parentChild("r1", "g0a", "g1a"),
		parentChild("r2", "g0a", "g1b"),
	}

	res, err := Compute(context.Background(), fallbackSnapshot(individuals, relationships), DefaultParams(), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Fallback {
		t.Fatal("missing adapter must select the fallback layout")
	}
	if res.RootID != "" {
		t.Errorf("fallback result has no root, got %q", res.RootID)
	}
	if len(res.Nodes) != 4 {
		t.Fatalf("fallback positions every individual, got %d", len(res.Nodes))
	}

	g0a := mustNode(t, res, "g0a")
	g1a, g1b := mustNode(t, res, "g1a"), mustNode(t, res, "g1b")
	g2a := mustNode(t, res, "g2a")

	if g1a.Y != g1b.Y {
		t.Error("one generation shares one band")
	}
	if !(g0a.Y < g1a.Y && g1a.Y < g2a.Y) {
		t.Errorf("bands must descend by generation: %v, %v, %v", g0a.Y, g1a.Y, g2a.Y)
	}
	if g1a.X >= g1b.X {
		t.Error("band members keep input order left to right")
	}
	if len(res.Edges) != 2 {
		t.Errorf("expected 2 relationship edges, got %d", len(res.Edges))
	}
}

func TestComputeFallbackRebucketsFlatGeneration(t *testing.T) {
	var individuals []gene.Individual
	for i := 0; i < 16; i++ {
		individuals = append(individuals, gene.Individual{ID: fmt.Sprintf("p%02d", i), Generation: 0})
	}

	res, err := Compute(context.Background(), fallbackSnapshot(individuals, nil), DefaultParams(), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Nodes) != 16 {
		t.Fatalf("expected 16 nodes, got %d", len(res.Nodes))
	}

	rows := map[float64]int{}
	for _, n := range res.Nodes {
		rows[n.Y]++
	}
	if len(rows) != 4 {
		t.Errorf("16 flat individuals re-bucket into 4 rows, got %d", len(rows))
	}
	for y, count := range rows {
		if count != 4 {
			t.Errorf("row at %v has %d members, want 4", y, count)
		}
	}
}

func TestComputeFallbackSmallFlatGenerationStaysFlat(t *testing.T) {
	var individuals []gene.Individual
	for i := 0; i < rebucketThreshold; i++ {
		individuals = append(individuals, gene.Individual{ID: fmt.Sprintf("p%02d", i), Generation: 3})
	}

	res, err := Compute(context.Background(), fallbackSnapshot(individuals, nil), DefaultParams(), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := res.Nodes[0].Y
	for _, n := range res.Nodes {
		if n.Y != first {
			t.Fatalf("population at the threshold stays in one band")
		}
	}
}

func TestComputeFallbackDebugOverlay(t *testing.T) {
	params := DefaultParams()
	params.DebugMode = true
	individuals := []gene.Individual{
		{ID: "x", Generation: 0},
		{ID: "y", Generation: 1},
	}
	relationships := []gene.Relationship{parentChild("r1", "x", "y")}

	res, err := Compute(context.Background(), fallbackSnapshot(individuals, relationships), params, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Debug == nil {
		t.Fatal("debug mode must populate the overlay on the fallback path")
	}
	if len(res.Debug.Boxes) != 2 || len(res.Debug.Guides) != 2 || len(res.Debug.Lines) != 1 {
		t.Errorf("overlay shape mismatch: %d boxes, %d guides, %d lines",
			len(res.Debug.Boxes), len(res.Debug.Guides), len(res.Debug.Lines))
	}
}

func TestFallbackNodeSize(t *testing.T) {
	tests := []struct {
		name        string
		canvasWidth float64
		n           int
		want        float64
	}{
		{"zero population", 800, 0, minBaseSize},
		{"clamps to max", 800, 4, maxBaseSize},
		{"clamps to min", 800, 50, minBaseSize},
		{"negative arithmetic clamps to one", 5, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackNodeSize(tt.canvasWidth, tt.n); got != tt.want {
				t.Errorf("fallbackNodeSize(%v, %d) = %v, want %v", tt.canvasWidth, tt.n, got, tt.want)
			}
		})
	}
}
