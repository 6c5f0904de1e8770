package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlindqvist/pedigree/pkg/graph"
	"github.com/mlindqvist/pedigree/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configFile string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [family.json]",
		Short: "Compute a family tree layout from genealogy input",
		Long: `Compute a family tree layout from genealogy input.

The layout command takes a family.json file (individuals plus relationships)
and computes node positions generation by generation. The output is a
layout document with literal coordinates that any renderer can draw directly.

When the input carries no usable tree structure, a generation-banded grid
is produced instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, configFile)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: ~/.config/pedigree/config.toml)")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().Float64Var(&opts.NodeSpacing, "node-spacing", opts.NodeSpacing, "horizontal spacing between unrelated nodes")
	cmd.Flags().Float64Var(&opts.GenerationSpacing, "generation-spacing", opts.GenerationSpacing, "vertical spacing between generations")
	cmd.Flags().Float64Var(&opts.SpouseSpacing, "spouse-spacing", opts.SpouseSpacing, "spacing within a spouse pair")
	cmd.Flags().Float64Var(&opts.FamilySpacing, "family-spacing", opts.FamilySpacing, "spacing between family clusters")
	cmd.Flags().StringVar(&opts.SpouseOrder, "spouse-order", opts.SpouseOrder, "spouse ordering: female-first (default), male-first")
	cmd.Flags().BoolVar(&opts.Debug, "debug", opts.Debug, "include the debug overlay in the output")

	return cmd
}

// runLayout loads the input, runs the pipeline, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	cfg.apply(&opts)
	opts.Logger = c.Logger

	in, err := graph.ReadInputFile(input)
	if err != nil {
		return fmt.Errorf("load input %s: %w", input, err)
	}

	runner := c.newRunner()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, in, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Positioned %d individuals", result.Stats.NodeCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteDocumentFile(result.Document, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.Fallback)
	printNewline()
	printNextStep("Inspect", "pedigree inspect "+outputPath)

	return nil
}
