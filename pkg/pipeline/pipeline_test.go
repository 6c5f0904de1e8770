package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/pedigree/pkg/gene"
	"github.com/mlindqvist/pedigree/pkg/graph"
	"github.com/mlindqvist/pedigree/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateSpouseOrder(t *testing.T) {
	tests := []struct {
		order   string
		wantErr bool
	}{
		{"female-first", false},
		{"male-first", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateSpouseOrder(tt.order)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSpouseOrder(%q) error = %v, wantErr %v", tt.order, err, tt.wantErr)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.SpouseOrder != DefaultSpouseOrder {
		t.Errorf("SpouseOrder should be %s, got %s", DefaultSpouseOrder, opts.SpouseOrder)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetExportDefaults(t *testing.T) {
	opts := Options{}
	opts.SetExportDefaults()

	if opts.Format != DefaultFormat {
		t.Errorf("Format should be %s, got %s", DefaultFormat, opts.Format)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalWidth := opts.Width
	originalFormat := opts.Format
	originalOrder := opts.SpouseOrder

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
	if opts.Format != originalFormat {
		t.Error("Format changed on second call")
	}
	if opts.SpouseOrder != originalOrder {
		t.Error("SpouseOrder changed on second call")
	}
}

func TestValidateAndSetDefaultsRejectsBadValues(t *testing.T) {
	opts := Options{SpouseOrder: "random"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid spouse order should fail")
	}

	opts = Options{Format: "xml"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestLayoutParams(t *testing.T) {
	opts := Options{
		NodeSpacing: 25,
		Width:       1024,
		SpouseOrder: SpouseOrderMaleFirst,
		Debug:       true,
	}
	params := opts.LayoutParams()

	if params.NodeSpacing != 25 {
		t.Errorf("NodeSpacing = %v, want 25", params.NodeSpacing)
	}
	if params.CanvasWidth != 1024 {
		t.Errorf("CanvasWidth = %v, want 1024", params.CanvasWidth)
	}
	if params.SpouseOrder != layout.SpouseOrderMaleFirst {
		t.Errorf("SpouseOrder = %v, want male-first policy", params.SpouseOrder)
	}
	if !params.DebugMode {
		t.Error("DebugMode should carry over")
	}

	// Unset spacing values pick up the engine defaults
	if params.GenerationSpacing != layout.DefaultGenerationSpacing {
		t.Errorf("GenerationSpacing = %v, want default", params.GenerationSpacing)
	}
}

func testInput() graph.Input {
	return graph.Input{
		Individuals: []gene.Individual{
			{ID: "root", Name: "Root", Generation: 0},
			{ID: "a", Name: "A", Generation: 1},
			{ID: "b", Name: "B", Generation: 1},
		},
		Relationships: []gene.Relationship{
			{ID: "r1", SourceID: "root", TargetID: "a", Type: gene.RelParentChild},
			{ID: "r2", SourceID: "root", TargetID: "b", Type: gene.RelParentChild},
		},
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(log.New(io.Discard))

	result, err := runner.Execute(context.Background(), testInput(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.IndividualCount != 3 {
		t.Errorf("IndividualCount = %d, want 3", result.Stats.IndividualCount)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", result.Stats.EdgeCount)
	}
	if result.Stats.Fallback {
		t.Error("tree input must not fall back")
	}
	if result.Layout.RootID != "root" {
		t.Errorf("RootID = %q, want root", result.Layout.RootID)
	}

	// The artifact is a valid document
	var doc graph.Document
	if err := json.Unmarshal(result.Artifact, &doc); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Errorf("document nodes = %d, want 3", len(doc.Nodes))
	}
	if doc.Width != DefaultWidth || doc.Height != DefaultHeight {
		t.Errorf("document canvas = %gx%g, want defaults", doc.Width, doc.Height)
	}
}

func TestRunnerExecuteInvalidInput(t *testing.T) {
	runner := NewRunner(log.New(io.Discard))
	in := graph.Input{Individuals: []gene.Individual{{ID: "x"}, {ID: "x"}}}

	if _, err := runner.Execute(context.Background(), in, Options{}); err == nil {
		t.Error("duplicate IDs should fail the build stage")
	}
}

func TestRunnerExecuteCancelled(t *testing.T) {
	runner := NewRunner(log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Execute(ctx, testInput(), Options{}); err == nil {
		t.Error("cancelled context should abort the pipeline")
	}
}

func TestRunnerStages(t *testing.T) {
	runner := NewRunner(log.New(io.Discard))
	ctx := context.Background()

	snap, err := runner.Build(ctx, testInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	res, err := runner.ComputeLayout(ctx, snap, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if len(res.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(res.Nodes))
	}

	doc, data, err := runner.Export(res, Options{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(doc.Nodes) != 3 || len(data) == 0 {
		t.Error("export lost data")
	}
}

func TestNewRunnerNilLogger(t *testing.T) {
	r := NewRunner(nil)
	if r.Logger == nil {
		t.Error("nil logger should fall back to the default")
	}
}
