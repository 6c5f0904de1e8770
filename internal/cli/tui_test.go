package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlindqvist/pedigree/pkg/graph"
	"github.com/mlindqvist/pedigree/pkg/layout"
)

func browserDoc(n int) graph.Document {
	doc := graph.Document{Width: 800, Height: 600, RootID: "n0"}
	for i := 0; i < n; i++ {
		doc.Nodes = append(doc.Nodes, layout.NodeVisual{
			ID:               "n" + string(rune('0'+i%10)),
			X:                float64(i) * 50,
			Y:                100,
			WidthMultiplier:  1,
			HeightMultiplier: 0.67,
			BaseSize:         40,
		})
	}
	return doc
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
}

func TestNodeListModelNavigation(t *testing.T) {
	m := newNodeListModel(browserDoc(3))

	updated, _ := m.Update(keyMsg("down"))
	m = updated.(NodeListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(NodeListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor after j = %d, want 2", m.Cursor)
	}

	// Bottom of the list clamps
	updated, _ = m.Update(keyMsg("down"))
	m = updated.(NodeListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor should clamp at last row, got %d", m.Cursor)
	}

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(NodeListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after k = %d, want 1", m.Cursor)
	}

	updated, _ = m.Update(keyMsg("g"))
	m = updated.(NodeListModel)
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("g should jump to top, got cursor=%d offset=%d", m.Cursor, m.Offset)
	}

	updated, _ = m.Update(keyMsg("G"))
	m = updated.(NodeListModel)
	if m.Cursor != 2 {
		t.Errorf("G should jump to bottom, got %d", m.Cursor)
	}
}

func TestNodeListModelScrollWindow(t *testing.T) {
	m := newNodeListModel(browserDoc(30))
	m.Height = 5

	for i := 0; i < 10; i++ {
		updated, _ := m.Update(keyMsg("down"))
		m = updated.(NodeListModel)
	}

	if m.Cursor != 10 {
		t.Fatalf("cursor = %d, want 10", m.Cursor)
	}
	if m.Offset != m.Cursor-m.Height+1 {
		t.Errorf("offset = %d, want %d", m.Offset, m.Cursor-m.Height+1)
	}

	for i := 0; i < 10; i++ {
		updated, _ := m.Update(keyMsg("up"))
		m = updated.(NodeListModel)
	}
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("scrolling back up should reset, got cursor=%d offset=%d", m.Cursor, m.Offset)
	}
}

func TestNodeListModelQuit(t *testing.T) {
	m := newNodeListModel(browserDoc(2))

	for _, key := range []string{"q", "esc"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestNodeListModelWindowResize(t *testing.T) {
	m := newNodeListModel(browserDoc(2))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = updated.(NodeListModel)
	if m.Height != 32 {
		t.Errorf("height after resize = %d, want 32", m.Height)
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 6})
	m = updated.(NodeListModel)
	if m.Height != 5 {
		t.Errorf("height should clamp at 5, got %d", m.Height)
	}
}

func TestNodeListModelView(t *testing.T) {
	m := newNodeListModel(browserDoc(3))
	view := m.View()

	if !strings.Contains(view, "Layout Browser") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "3 nodes") {
		t.Error("view should contain the node count")
	}
	if !strings.Contains(view, "[1/3]") {
		t.Error("view should contain the position indicator")
	}
}
