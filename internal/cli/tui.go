package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mlindqvist/pedigree/pkg/graph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive layout browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing positioned nodes of a
// layout document.
type NodeListModel struct {
	Doc    graph.Document
	Cursor int
	Height int
	Offset int
}

// newNodeListModel creates a new node list model for the document.
func newNodeListModel(doc graph.Document) NodeListModel {
	return NodeListModel{
		Doc:    doc,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Doc.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Doc.Nodes) - 1
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Browser"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.summaryLine()))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Doc.Nodes) {
		end = len(m.Doc.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Doc.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		root := ""
		if n.ID == m.Doc.RootID {
			root = "✓"
		}

		rows = append(rows, []string{
			cursor,
			n.ID,
			fmt.Sprintf("%.1f", n.X),
			fmt.Sprintf("%.1f", n.Y),
			fmt.Sprintf("%.0f×%.0f", n.Width(), n.Height()),
			root,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Individual", "X", "Y", "Size", "Root").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Doc.Nodes) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col >= 2 && col <= 4 {
				base = base.Foreground(colorGray)
			}
			if actualIdx == m.Cursor {
				if col == 1 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if col == 1 {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Doc.Nodes))))

	return b.String()
}

func (m NodeListModel) summaryLine() string {
	mode := iconTree
	if m.Doc.Fallback {
		mode = iconFallback
	}
	return fmt.Sprintf("%.0f×%.0f canvas · %d nodes · %d edges · %s",
		m.Doc.Width, m.Doc.Height, len(m.Doc.Nodes), len(m.Doc.Edges), mode)
}
