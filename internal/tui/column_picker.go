package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/dex/internal/tabular"
)

// columnItem wraps a hideable tabular.Column for use in bubbles/list.
type columnItem struct {
	column tabular.Column
}

func (i columnItem) FilterValue() string {
	return i.column.Header
}

// columnDelegate renders a checkbox reflecting the shared visibility state.
type columnDelegate struct {
	visibility *tabular.Visibility
}

func (d columnDelegate) Height() int                             { return 1 }
func (d columnDelegate) Spacing() int                            { return 0 }
func (d columnDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d columnDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(columnItem)
	if !ok {
		return
	}

	box := "[ ]"
	if d.visibility.IsVisible(i.column.ID) {
		box = "[x]"
	}
	str := fmt.Sprintf("%s %s", box, i.column.Header)

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
		return
	}
	fmt.Fprint(w, NormalItemStyle.Render("  "+str))
}

// ColumnPickerModel toggles which table columns are shown.
// Name, image and actions are structural and never listed.
type ColumnPickerModel struct {
	list       list.Model
	visibility *tabular.Visibility
	err        error
}

// NewColumnPickerModel creates a picker editing v in place.
func NewColumnPickerModel(v *tabular.Visibility) ColumnPickerModel {
	cols := tabular.Hideable()
	items := make([]list.Item, len(cols))
	for i, c := range cols {
		items[i] = columnItem{column: c}
	}

	l := list.New(items, columnDelegate{visibility: v}, 40, 20)
	l.Title = "Columns"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle

	return ColumnPickerModel{list: l, visibility: v}
}

// Init initializes the model.
func (m ColumnPickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m ColumnPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "c":
			return m, func() tea.Msg { return closeOverlayMsg{} }
		case " ", "enter", "x":
			if item, ok := m.list.SelectedItem().(columnItem); ok {
				m.err = m.visibility.Toggle(item.column.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m ColumnPickerModel) View() string {
	view := m.list.View()
	if m.err != nil {
		view += ErrorStyle.Render(fmt.Sprintf("\nError: %v", m.err))
	}
	return view
}
