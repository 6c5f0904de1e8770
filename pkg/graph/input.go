package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mlindqvist/pedigree/pkg/gene"
	"github.com/mlindqvist/pedigree/pkg/layout"
)

// =============================================================================
// Input - Genealogy Input Serialization
// =============================================================================

// Input is the canonical serialization format for genealogy input: the flat
// individual and relationship lists, optionally with layout parameters.
type Input struct {
	Individuals   []gene.Individual   `json:"individuals" bson:"individuals"`
	Relationships []gene.Relationship `json:"relationships,omitempty" bson:"relationships,omitempty"`
	Params        *layout.Params      `json:"params,omitempty" bson:"params,omitempty"`
}

// Snapshot assembles the immutable layout view: the lists plus a traversal
// adapter derived from the relationship list.
func (in *Input) Snapshot() *gene.Snapshot {
	return &gene.Snapshot{
		Individuals:   in.Individuals,
		Relationships: in.Relationships,
		Adapter:       gene.AdapterFromRelationships(in.Individuals, in.Relationships),
	}
}

// LayoutParams returns the embedded parameters, or defaults when absent.
// Values are sanitized by the layout engine, not here.
func (in *Input) LayoutParams() layout.Params {
	if in.Params == nil {
		return layout.DefaultParams()
	}
	return *in.Params
}

// =============================================================================
// Input Serialization API
// =============================================================================

// MarshalInput converts an input to pretty-printed JSON bytes.
func MarshalInput(in Input) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeInputTo(in, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteInput writes an input as JSON to an io.Writer.
func WriteInput(in Input, w io.Writer) error {
	return writeInputTo(in, w)
}

// WriteInputFile writes an input to a JSON file.
// The file is created with 0644 permissions.
func WriteInputFile(in Input, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeInputTo(in, f)
}

// ReadInput decodes a JSON input from an io.Reader.
// Shape violations (missing or duplicate IDs) are reported here so callers
// fail before running the layout.
func ReadInput(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, fmt.Errorf("decode: %w", err)
	}
	if err := in.Snapshot().Validate(); err != nil {
		return Input{}, fmt.Errorf("validate: %w", err)
	}
	return in, nil
}

// ReadInputFile reads a JSON file and returns the decoded input.
func ReadInputFile(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInput(f)
}

func writeInputTo(in Input, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(in); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
