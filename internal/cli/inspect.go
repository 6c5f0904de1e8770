package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlindqvist/pedigree/pkg/graph"
)

// inspectCommand creates the inspect command for browsing a computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse a computed layout in the terminal",
		Long: `Browse a computed layout in the terminal.

The inspect command opens an interactive browser over a layout document
(produced by 'layout' or the API): one row per positioned individual with
its coordinates and size, plus the edge count and layout mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runInspect loads the document and runs the interactive browser.
func (c *CLI) runInspect(ctx context.Context, path string) error {
	doc, err := graph.ReadDocumentFile(path)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", path, err)
	}
	if len(doc.Nodes) == 0 {
		printWarning("Layout is empty")
		return nil
	}

	model := newNodeListModel(doc)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
