package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/dex/internal/domain"
	"github.com/robby/dex/internal/store"
	"github.com/robby/dex/internal/tabular"
	"go.uber.org/zap"
)

// Lines the table view draws around the bubbles table itself.
const tableChromeLines = 5

var (
	toolbarLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	toolbarValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	resetHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Padding(0, 1)
)

// TableModel is the sortable, filterable, paginated view of the catalog.
type TableModel struct {
	// Dependencies
	store  *store.Store
	ctx    context.Context
	logger *zap.Logger

	// UI components
	keymap     KeyMap
	table      table.Model
	nameInput  textinput.Model
	visibility *tabular.Visibility

	// Table state
	records   []domain.Pokemon
	page      tabular.Page
	pageIndex int
	pageSize  int
	cursorCol int // Index into the visible columns

	// View state
	width      int
	height     int
	filterMode bool
	toast      string
}

// NewTableModel creates a table view over the preferences in s.
func NewTableModel(s *store.Store, ctx context.Context, keymap KeyMap, pageSize int, logger *zap.Logger) TableModel {
	if !tabular.ValidPageSize(pageSize) {
		pageSize = tabular.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Filter by name..."
	ti.Prompt = "/ "
	ti.PromptStyle = PromptStyle.MarginBottom(0)

	km := table.DefaultKeyMap()
	// g and G belong to the view toggle.
	km.GotoTop = key.NewBinding(key.WithKeys("home"))
	km.GotoBottom = key.NewBinding(key.WithKeys("end"))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t := table.New(
		table.WithFocused(true),
		table.WithKeyMap(km),
		table.WithStyles(styles),
		table.WithHeight(pageSize),
	)

	m := TableModel{
		store:      s,
		ctx:        ctx,
		logger:     logger,
		keymap:     keymap,
		table:      t,
		nameInput:  ti,
		visibility: tabular.DefaultVisibility(),
		pageSize:   pageSize,
	}
	m.refresh()
	return m
}

// SetRecords replaces the catalog and recomputes the current page.
func (m *TableModel) SetRecords(records []domain.Pokemon) {
	m.records = records
	m.refresh()
}

// SetSize sets the area available to the table view.
func (m *TableModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-tableChromeLines, 3))
}

// Capturing reports whether keystrokes go to the name filter input.
func (m TableModel) Capturing() bool {
	return m.filterMode
}

// Page returns the page currently displayed.
func (m TableModel) Page() tabular.Page {
	return m.page
}

// Selected returns the record under the row cursor.
func (m TableModel) Selected() (domain.Pokemon, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.page.Rows) {
		return domain.Pokemon{}, false
	}
	return m.page.Rows[i], true
}

// SetTypeFilter sets or, with an empty value, clears the type filter.
func (m *TableModel) SetTypeFilter(value string) {
	m.setFilter(tabular.ColumnTypes, value)
}

// Update handles table keys.
func (m TableModel) Update(msg tea.Msg) (TableModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	if m.filterMode {
		return m.handleFilterKey(keyMsg)
	}

	m.toast = ""
	switch {
	case key.Matches(keyMsg, m.keymap.FilterName):
		m.filterMode = true
		m.nameInput.SetValue(m.store.ColumnFilters()[tabular.ColumnName])
		m.nameInput.CursorEnd()
		return m, m.nameInput.Focus()

	case key.Matches(keyMsg, m.keymap.FilterType):
		current := m.store.ColumnFilters()[tabular.ColumnTypes]
		return m, func() tea.Msg { return openTypePickerMsg{current: current} }

	case key.Matches(keyMsg, m.keymap.Columns):
		return m, func() tea.Msg { return openColumnPickerMsg{} }

	case key.Matches(keyMsg, m.keymap.Sort):
		m.sortCursor(false)

	case key.Matches(keyMsg, m.keymap.SortMulti):
		m.sortCursor(true)

	case key.Matches(keyMsg, m.keymap.Left):
		if m.cursorCol > 0 {
			m.cursorCol--
			m.refresh()
		}

	case key.Matches(keyMsg, m.keymap.Right):
		if m.cursorCol < len(m.visibility.VisibleColumns())-1 {
			m.cursorCol++
			m.refresh()
		}

	case key.Matches(keyMsg, m.keymap.Reset):
		if m.store.Preferences().IsFiltered() {
			if err := m.store.ResetTable(m.ctx); err != nil {
				m.fail("reset", err)
			}
			m.pageIndex = 0
			m.refresh()
		}

	case key.Matches(keyMsg, m.keymap.NextPage):
		if m.page.HasNext() {
			m.pageIndex++
			m.refresh()
			m.table.GotoTop()
		}

	case key.Matches(keyMsg, m.keymap.PrevPage):
		if m.page.HasPrev() {
			m.pageIndex--
			m.refresh()
			m.table.GotoTop()
		}

	case key.Matches(keyMsg, m.keymap.PageSize):
		next := tabular.NextPageSize(m.pageSize)
		// Keep the first row of the current page in view.
		m.pageIndex = m.pageIndex * m.pageSize / next
		m.pageSize = next
		m.refresh()

	case key.Matches(keyMsg, m.keymap.Details):
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return openDetailMsg{pokemon: p} }
		}

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleFilterKey edits the name filter. Every keystroke is applied.
func (m TableModel) handleFilterKey(msg tea.KeyMsg) (TableModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ApplyFilter):
		m.filterMode = false
		m.nameInput.Blur()
		return m, nil
	case key.Matches(msg, m.keymap.CancelFilter):
		m.filterMode = false
		m.nameInput.Blur()
		m.nameInput.SetValue("")
		m.setFilter(tabular.ColumnName, "")
		return m, nil
	}

	before := m.nameInput.Value()
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if after := m.nameInput.Value(); after != before {
		m.setFilter(tabular.ColumnName, after)
	}
	return m, cmd
}

// setFilter persists a column filter. Empty values remove the filter.
func (m *TableModel) setFilter(id, value string) {
	err := m.store.UpdateColumnFilters(m.ctx, func(f domain.ColumnFilters) domain.ColumnFilters {
		if value == "" {
			delete(f, id)
		} else {
			f[id] = value
		}
		return f
	})
	if err != nil {
		m.fail("filter", err)
	}
	m.pageIndex = 0
	m.refresh()
}

// sortCursor toggles sorting on the column under the column cursor.
func (m *TableModel) sortCursor(multi bool) {
	cols := m.visibility.VisibleColumns()
	if m.cursorCol >= len(cols) {
		return
	}
	col := cols[m.cursorCol]
	if !col.Sortable() {
		m.toast = fmt.Sprintf("%s is not sortable", columnLabel(col))
		return
	}

	err := m.store.UpdateSorting(m.ctx, func(s []domain.SortSpec) []domain.SortSpec {
		return tabular.ToggleSort(s, col.ID, multi)
	})
	if err != nil {
		m.fail("sort", err)
	}
	m.pageIndex = 0
	m.refresh()
}

func (m *TableModel) fail(action string, err error) {
	m.toast = fmt.Sprintf("Could not save %s: %v", action, err)
	m.logger.Warn("preference update failed", zap.String("action", action), zap.Error(err))
}

// refresh recomputes the page and pushes it into the bubbles table.
func (m *TableModel) refresh() {
	prefs := m.store.Preferences()
	req := tabular.PageRequest{Index: m.pageIndex, Size: m.pageSize}

	page, err := tabular.GetPage(m.records, prefs, req)
	if err != nil {
		m.toast = err.Error()
		return
	}
	if clamped := tabular.ClampPageIndex(m.pageIndex, page.TotalRows, m.pageSize); clamped != m.pageIndex {
		m.pageIndex = clamped
		req.Index = clamped
		page, _ = tabular.GetPage(m.records, prefs, req)
	}
	m.page = page

	cols := m.visibility.VisibleColumns()
	if m.cursorCol >= len(cols) {
		m.cursorCol = max(len(cols)-1, 0)
	}

	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		tcols[i] = table.Column{
			Title: headerTitle(c, prefs.Sorting, i == m.cursorCol),
			Width: c.Width + 3,
		}
	}

	rows := make([]table.Row, len(page.Rows))
	for i, p := range page.Rows {
		row := make(table.Row, len(cols))
		for j, c := range cols {
			row[j] = c.Cell(p)
		}
		rows[i] = row
	}

	// Rows must never be wider than the columns while swapping.
	m.table.SetRows(nil)
	m.table.SetColumns(tcols)
	m.table.SetRows(rows)
	switch {
	case len(rows) == 0:
	case m.table.Cursor() < 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

// headerTitle decorates a column title with its sort state and the cursor.
func headerTitle(c tabular.Column, sorting []domain.SortSpec, cursor bool) string {
	title := columnLabel(c)
	if desc, ok := tabular.SortDirection(sorting, c.ID); ok {
		arrow := "▲"
		if desc {
			arrow = "▼"
		}
		title += arrow
		if len(sorting) > 1 {
			for i, s := range sorting {
				if s.ID == c.ID {
					title += fmt.Sprintf("%d", i+1)
				}
			}
		}
	}
	if cursor {
		return "[" + title + "]"
	}
	return title
}

func columnLabel(c tabular.Column) string {
	if c.Header == "" {
		return c.ID
	}
	return c.Header
}

// View renders the toolbar, table and pagination footer.
func (m TableModel) View() string {
	prefs := m.store.Preferences()

	var sections []string
	sections = append(sections, m.renderToolbar(prefs))
	if m.filterMode {
		sections = append(sections, m.nameInput.View())
	}
	sections = append(sections, m.table.View())
	sections = append(sections, m.renderFooter())
	if m.toast != "" {
		sections = append(sections, ErrorStyle.Render(m.toast))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TableModel) renderToolbar(prefs domain.Preferences) string {
	name := prefs.ColumnFilters[tabular.ColumnName]
	if name == "" {
		name = "-"
	}
	typ := prefs.ColumnFilters[tabular.ColumnTypes]
	if typ == "" {
		typ = "all"
	}

	var keys []string
	for _, s := range prefs.Sorting {
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		keys = append(keys, s.ID+" "+dir)
	}
	sortText := "-"
	if len(keys) > 0 {
		sortText = strings.Join(keys, ", ")
	}

	parts := []string{
		toolbarLabelStyle.Render("Name: ") + toolbarValueStyle.Render(name),
		toolbarLabelStyle.Render("Type: ") + toolbarValueStyle.Render(typ),
		toolbarLabelStyle.Render("Sort: ") + toolbarValueStyle.Render(sortText),
	}
	line := strings.Join(parts, "   ")
	if prefs.IsFiltered() {
		line += "   " + resetHintStyle.Render("x reset")
	}
	return line
}

func (m TableModel) renderFooter() string {
	pageCount := max(m.page.PageCount, 1)
	return dimStyle.Render(fmt.Sprintf("%d of %d Pokémon   Page %d of %d   Rows per page: %d",
		m.page.TotalRows, len(m.records), m.pageIndex+1, pageCount, m.pageSize))
}
