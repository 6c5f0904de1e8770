package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mlindqvist/pedigree/pkg/layout"
)

// =============================================================================
// Document - Computed Layout Serialization
// =============================================================================

// Document is the serialization format for a computed layout: the visuals
// plus the canvas dimensions the layout was fitted to. Renderers consume this
// format directly; every coordinate and styling attribute is literal.
type Document struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Nodes []layout.NodeVisual `json:"nodes" bson:"nodes"`
	Edges []layout.EdgeVisual `json:"edges,omitempty" bson:"edges,omitempty"`

	// Debug carries the overlay when the layout ran in debug mode.
	Debug *layout.Overlay `json:"debug,omitempty" bson:"debug,omitempty"`

	// Fallback reports that the generation-banded layout was used.
	Fallback bool `json:"fallback,omitempty" bson:"fallback,omitempty"`

	// RootID is the selected tree root, empty on the fallback path.
	RootID string `json:"root_id,omitempty" bson:"root_id,omitempty"`
}

// NewDocument packages a layout result with the canvas it was computed for.
func NewDocument(res layout.Result, params layout.Params) Document {
	params = params.Sanitize()
	return Document{
		Width:    params.CanvasWidth,
		Height:   params.CanvasHeight,
		Nodes:    res.Nodes,
		Edges:    res.Edges,
		Debug:    res.Debug,
		Fallback: res.Fallback,
		RootID:   res.RootID,
	}
}

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument serializes a document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes JSON bytes into a document and validates
// that the canvas dimensions are usable.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return Document{}, fmt.Errorf("document canvas must have positive dimensions, got %gx%g", d.Width, d.Height)
	}
	return d, nil
}

// WriteDocumentFile writes a document to a JSON file.
func WriteDocumentFile(d Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocumentFile reads a document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDocument(data)
}
