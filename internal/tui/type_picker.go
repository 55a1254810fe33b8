package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/dex/internal/domain"
)

// typeItem is one entry of the type filter list. An empty value means all types.
type typeItem struct {
	value string
}

func (i typeItem) FilterValue() string {
	if i.value == "" {
		return "all"
	}
	return i.value
}

// typeDelegate renders a type as a coloured badge.
type typeDelegate struct {
	current string
}

func (d typeDelegate) Height() int                             { return 1 }
func (d typeDelegate) Spacing() int                            { return 0 }
func (d typeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d typeDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(typeItem)
	if !ok {
		return
	}

	label := NormalItemStyle.Render("All types")
	if i.value != "" {
		label = TypeBadge(i.value)
	}
	if i.value == d.current {
		label += dimStyle.Render(" (active)")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = SelectedItemStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+label)
}

// TypePickerModel lets the user choose the type filter.
type TypePickerModel struct {
	list list.Model
}

// NewTypePickerModel creates a picker with current preselected.
func NewTypePickerModel(current string) TypePickerModel {
	items := make([]list.Item, 0, len(domain.Types)+1)
	items = append(items, typeItem{})
	selected := 0
	for i, t := range domain.Types {
		items = append(items, typeItem{value: t})
		if t == current {
			selected = i + 1
		}
	}

	l := list.New(items, typeDelegate{current: current}, 40, 20)
	l.Title = "Filter by Type"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle
	l.Select(selected)

	return TypePickerModel{list: l}
}

// Init initializes the model.
func (m TypePickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m TypePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		// Let the list's own filter input consume keys while it is open.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return closeOverlayMsg{} }
		case "enter":
			if item, ok := m.list.SelectedItem().(typeItem); ok {
				return m, func() tea.Msg { return TypeSelectedMsg{Type: item.value} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m TypePickerModel) View() string {
	return m.list.View()
}
