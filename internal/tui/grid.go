package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/robby/dex/internal/domain"
)

// Layout constants
const (
	cardWidth  = 18 // Including border
	cardHeight = 5  // Including border
)

var (
	gridCardStyle = lipgloss.NewStyle().
			Width(cardWidth-2).
			Height(cardHeight-2).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	selectedGridCardStyle = gridCardStyle.
				BorderForeground(lipgloss.Color("205"))
)

// GridModel renders the catalog as a grid of cards. It always shows the
// whole catalog in fetch order; sorting and filters only affect the table.
type GridModel struct {
	keymap   KeyMap
	records  []domain.Pokemon
	selected int
	rowOff   int // First visible card row

	width  int
	height int
}

// NewGridModel creates an empty grid.
func NewGridModel(keymap KeyMap) GridModel {
	return GridModel{keymap: keymap}
}

// SetRecords replaces the catalog shown by the grid.
func (m *GridModel) SetRecords(records []domain.Pokemon) {
	m.records = records
	if m.selected >= len(records) {
		m.selected = max(len(records)-1, 0)
	}
	m.adjustScroll()
}

// SetSize sets the area available to the grid.
func (m *GridModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustScroll()
}

// Selected returns the highlighted record.
func (m GridModel) Selected() (domain.Pokemon, bool) {
	if m.selected < 0 || m.selected >= len(m.records) {
		return domain.Pokemon{}, false
	}
	return m.records[m.selected], true
}

func (m GridModel) columns() int {
	cols := m.width / cardWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m GridModel) visibleRows() int {
	rows := m.height / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Update handles navigation keys.
func (m GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.records) == 0 {
		return m, nil
	}

	cols := m.columns()
	switch {
	case key.Matches(keyMsg, m.keymap.Left):
		m.move(-1)
	case key.Matches(keyMsg, m.keymap.Right):
		m.move(1)
	case key.Matches(keyMsg, m.keymap.Up):
		m.move(-cols)
	case key.Matches(keyMsg, m.keymap.Down):
		m.move(cols)
	case keyMsg.String() == "home":
		m.selected = 0
	case keyMsg.String() == "end", keyMsg.String() == "G":
		m.selected = len(m.records) - 1
	case key.Matches(keyMsg, m.keymap.Details):
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return openDetailMsg{pokemon: p} }
		}
	}
	m.adjustScroll()
	return m, nil
}

func (m *GridModel) move(delta int) {
	next := m.selected + delta
	if next < 0 || next >= len(m.records) {
		return
	}
	m.selected = next
}

// adjustScroll keeps the selected card's row on screen.
func (m *GridModel) adjustScroll() {
	row := m.selected / m.columns()
	rows := m.visibleRows()
	if row < m.rowOff {
		m.rowOff = row
	}
	if row >= m.rowOff+rows {
		m.rowOff = row - rows + 1
	}
}

// View renders the visible card rows.
func (m GridModel) View() string {
	if len(m.records) == 0 {
		return dimStyle.Render("No Pokémon to show. Press r to reload.")
	}

	cols := m.columns()
	start := m.rowOff * cols
	end := min(start+m.visibleRows()*cols, len(m.records))

	var rows []string
	for i := start; i < end; i += cols {
		var cards []string
		for j := i; j < min(i+cols, end); j++ {
			cards = append(cards, m.renderCard(m.records[j], j == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m GridModel) renderCard(p domain.Pokemon, selected bool) string {
	inner := cardWidth - 2
	number := dimStyle.Render(fmt.Sprintf("#%03d", p.ID))
	name := truncate.StringWithTail(displayName(p.Name), uint(inner), "…")
	types := dimStyle.Render(truncate.StringWithTail(strings.Join(p.Types, " · "), uint(inner), "…"))

	content := lipgloss.JoinVertical(lipgloss.Center, number, name, types)
	if selected {
		return selectedGridCardStyle.Render(content)
	}
	return gridCardStyle.Render(content)
}

// displayName capitalizes the first letter of a catalog name.
func displayName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Skeleton renders placeholder cards shown while the catalog loads.
func Skeleton(width, height int) string {
	cols := max(width/cardWidth, 1)
	rows := max(height/cardHeight, 1)
	block := skeletonStyle.Render(strings.Repeat("░", cardWidth-6))

	placeholder := gridCardStyle.
		BorderForeground(lipgloss.Color("237")).
		Render(lipgloss.JoinVertical(lipgloss.Center, block, block))

	var lines []string
	for r := 0; r < min(rows, 3); r++ {
		cards := make([]string, cols)
		for c := range cards {
			cards[c] = placeholder
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
