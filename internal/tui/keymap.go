package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the browse screens.
type KeyMap struct {
	// Navigation
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Views
	GridView  key.Binding
	TableView key.Binding

	// Table actions
	FilterName   key.Binding
	FilterType   key.Binding
	Sort         key.Binding
	SortMulti    key.Binding
	Columns      key.Binding
	Reset        key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	PageSize     key.Binding
	ApplyFilter  key.Binding
	CancelFilter key.Binding

	// Actions
	Details key.Binding
	Open    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		GridView: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grid view"),
		),
		TableView: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "table view"),
		),
		FilterName: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter by name"),
		),
		FilterType: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "filter by type"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		SortMulti: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "add sort key"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "columns"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset filters"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "page size"),
		),
		ApplyFilter: key.NewBinding(
			key.WithKeys("enter"),
		),
		CancelFilter: key.NewBinding(
			key.WithKeys("esc"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open sprite"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GridView, k.TableView, k.Details, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Details},
		{k.GridView, k.TableView, k.Refresh, k.Help, k.Quit},
		{k.FilterName, k.FilterType, k.Sort, k.SortMulti, k.Reset},
		{k.Columns, k.NextPage, k.PrevPage, k.PageSize, k.Open},
	}
}
