package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/robby/dex/internal/catalog"
	"github.com/robby/dex/internal/domain"
	"github.com/robby/dex/internal/store"
	"go.uber.org/zap"
)

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenLoading AppScreen = iota
	ScreenError
	ScreenBrowse
)

// Lines taken by the header, tabs and key hints around the active view.
const appChromeLines = 4

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("241"))

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62")).
			Bold(true)
)

// AppModel is the root Bubble Tea model. It owns the catalog load and
// switches between the grid and table views, with the detail modal and
// pickers drawn as overlays on top.
type AppModel struct {
	// Dependencies
	catalog *catalog.Service
	store   *store.Store
	ctx     context.Context
	logger  *zap.Logger

	// UI components
	keymap  KeyMap
	help    HelpModel
	spinner spinner.Model
	grid    GridModel
	table   TableModel

	// Current state
	screen   AppScreen
	overlay  tea.Model
	err      error
	records  []domain.Pokemon
	showHelp bool
	toast    string

	// View dimensions
	width  int
	height int
}

// NewAppModel creates the root model. pageSize seeds the table's rows per page.
func NewAppModel(svc *catalog.Service, s *store.Store, ctx context.Context, logger *zap.Logger, pageSize int) AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	keymap := DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return AppModel{
		catalog: svc,
		store:   s,
		ctx:     ctx,
		logger:  logger,
		keymap:  keymap,
		help:    NewHelpModel(keymap),
		spinner: sp,
		grid:    NewGridModel(keymap),
		table:   NewTableModel(s, ctx, keymap, pageSize, logger),
		screen:  ScreenLoading,
	}
}

// Init starts the spinner and the initial catalog load.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.WindowSize(), m.loadCatalog())
}

// Update handles messages and routes keys to the active view or overlay.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.SetSize(msg.Width, msg.Height-appChromeLines)
		m.table.SetSize(msg.Width, msg.Height-appChromeLines)
		if m.overlay != nil {
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if m.screen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CatalogLoadedMsg:
		if msg.Err != nil {
			m.logger.Error("catalog load failed", zap.Error(msg.Err))
			m.screen = ScreenError
			m.err = msg.Err
			return m, nil
		}
		m.logger.Info("catalog loaded", zap.Int("records", len(msg.Records)))
		m.screen = ScreenBrowse
		m.err = nil
		m.records = msg.Records
		m.grid.SetRecords(msg.Records)
		m.table.SetRecords(msg.Records)
		return m, nil

	case openDetailMsg:
		return m.openOverlay(NewDetailModel(msg.pokemon, m.keymap))

	case openTypePickerMsg:
		return m.openOverlay(NewTypePickerModel(msg.current))

	case openColumnPickerMsg:
		return m.openOverlay(NewColumnPickerModel(m.table.visibility))

	case TypeSelectedMsg:
		m.overlay = nil
		m.table.SetTypeFilter(msg.Type)
		return m, nil

	case closeOverlayMsg:
		m.overlay = nil
		m.table.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.overlay != nil {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit handler
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.overlay != nil {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	switch m.screen {
	case ScreenLoading:
		if key.Matches(msg, m.keymap.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case ScreenError:
		switch {
		case key.Matches(msg, m.keymap.Refresh):
			return m.reload()
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	// Name filter input swallows everything, including g and t.
	if m.store.View() == domain.ViewTable && m.table.Capturing() {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.toast = ""
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.GridView):
		return m.setView(domain.ViewGrid)
	case key.Matches(msg, m.keymap.TableView):
		return m.setView(domain.ViewTable)
	case key.Matches(msg, m.keymap.Refresh):
		return m.reload()
	}

	var cmd tea.Cmd
	if m.store.View() == domain.ViewTable {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

func (m AppModel) openOverlay(overlay tea.Model) (tea.Model, tea.Cmd) {
	m.overlay = overlay
	if m.width > 0 {
		m.overlay, _ = m.overlay.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m, nil
}

func (m AppModel) setView(v domain.ViewMode) (tea.Model, tea.Cmd) {
	if m.store.View() == v {
		return m, nil
	}
	if err := m.store.SetView(m.ctx, v); err != nil {
		m.logger.Warn("failed to switch view", zap.String("view", string(v)), zap.Error(err))
		m.toast = fmt.Sprintf("Could not switch view: %v", err)
	}
	return m, nil
}

// reload drops the catalog caches and fetches again.
func (m AppModel) reload() (tea.Model, tea.Cmd) {
	m.catalog.Invalidate()
	m.screen = ScreenLoading
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// loadCatalog creates a command that runs the fetch pipeline.
func (m AppModel) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		if err := m.catalog.Load(m.ctx); err != nil {
			return CatalogLoadedMsg{Err: err}
		}
		return CatalogLoadedMsg{Records: m.catalog.Snapshot().Records}
	}
}

// View renders the current screen.
func (m AppModel) View() string {
	switch m.screen {
	case ScreenLoading:
		return m.renderLoading()
	case ScreenError:
		return m.renderError()
	}

	if m.overlay != nil {
		return m.overlay.View()
	}
	if m.showHelp {
		return m.help.View(m.width)
	}

	var content string
	if m.store.View() == domain.ViewTable {
		content = m.table.View()
	} else {
		content = m.grid.View()
	}

	sections := []string{m.renderHeader(), content}
	if m.toast != "" {
		sections = append(sections, ErrorStyle.Render(m.toast))
	}
	sections = append(sections, m.help.ShortView(m.width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AppModel) renderHeader() string {
	grid, table := tabStyle, tabStyle
	if m.store.View() == domain.ViewTable {
		table = activeTabStyle
	} else {
		grid = activeTabStyle
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		grid.Render("g Grid"),
		" ",
		table.Render("t Table"),
	)
	title := TitleStyle.MarginBottom(0).Render("Pokémon Explorer")
	count := dimStyle.Render(fmt.Sprintf("%d Pokémon", len(m.records)))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "   ", tabs, "   ", count)
}

func (m AppModel) renderLoading() string {
	status := fmt.Sprintf("%s Loading Pokémon...", m.spinner.View())
	if m.width == 0 {
		return status
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Pokémon Explorer"),
		status,
		"",
		Skeleton(m.width, m.height-appChromeLines),
	)
}

func (m AppModel) renderError() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	msg := "unknown error"
	if m.err != nil {
		msg = m.err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ErrorStyle.Render("Oh no!"),
		"Could not reach PokeAPI.",
		"",
		wordwrap.String(msg, width-2),
		"",
		HelpStyle.Render("r try again • q quit"),
	)
}
