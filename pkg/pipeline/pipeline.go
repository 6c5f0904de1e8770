// Package pipeline provides the core layout pipeline for Pedigree.
//
// This package implements the complete build → layout → export pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Assemble an immutable snapshot from the flat genealogy input
//  2. Layout: Compute visual positions for the family tree
//  3. Export: Serialize the computed layout into a renderer-ready document
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Width: 1024, Height: 768}
//	result, err := runner.Execute(ctx, input, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifact
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/pedigree/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = layout.DefaultCanvasWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = layout.DefaultCanvasHeight
)

// Spouse ordering policies.
const (
	SpouseOrderFemaleFirst = "female-first"
	SpouseOrderMaleFirst   = "male-first"
)

// DefaultSpouseOrder is the conventional rendering order.
const DefaultSpouseOrder = SpouseOrderFemaleFirst

// Format constants for export formats.
const (
	FormatJSON = "json"
)

// DefaultFormat is the default export format.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
}

// ValidSpouseOrders is the set of supported spouse ordering policies.
var ValidSpouseOrders = map[string]bool{
	SpouseOrderFemaleFirst: true,
	SpouseOrderMaleFirst:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	NodeSpacing       float64 `json:"node_spacing,omitempty"`
	GenerationSpacing float64 `json:"generation_spacing,omitempty"`
	SpouseSpacing     float64 `json:"spouse_spacing,omitempty"`
	FamilySpacing     float64 `json:"family_spacing,omitempty"`
	Width             float64 `json:"width,omitempty"`
	Height            float64 `json:"height,omitempty"`
	SpouseOrder       string  `json:"spouse_order,omitempty"`
	Debug             bool    `json:"debug,omitempty"`

	// Export options
	Format string `json:"format,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an export format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be: json)", format)
	}
	return nil
}

// ValidateSpouseOrder checks that a spouse ordering policy is valid.
func ValidateSpouseOrder(order string) error {
	if !ValidSpouseOrders[order] {
		return fmt.Errorf("invalid spouse_order: %q (must be one of: female-first, male-first)", order)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetExportDefaults()
	if err := ValidateSpouseOrder(o.SpouseOrder); err != nil {
		return err
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation. Spacing
// values are left to the layout engine's own sanitization; only the fields
// with discrete domains get defaults here.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.SpouseOrder == "" {
		o.SpouseOrder = DefaultSpouseOrder
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateSpouseOrder(o.SpouseOrder)
}

// SetExportDefaults sets default values for export.
func (o *Options) SetExportDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for export.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return ValidateFormat(o.Format)
}

// LayoutParams converts the pipeline options into layout engine parameters.
func (o *Options) LayoutParams() layout.Params {
	order := layout.SpouseOrderFemaleFirst
	if o.SpouseOrder == SpouseOrderMaleFirst {
		order = layout.SpouseOrderMaleFirst
	}
	return layout.Params{
		NodeSpacing:       o.NodeSpacing,
		GenerationSpacing: o.GenerationSpacing,
		SpouseSpacing:     o.SpouseSpacing,
		FamilySpacing:     o.FamilySpacing,
		CanvasWidth:       o.Width,
		CanvasHeight:      o.Height,
		DebugMode:         o.Debug,
		SpouseOrder:       order,
	}.Sanitize()
}
