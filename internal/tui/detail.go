package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	"github.com/robby/dex/internal/domain"
)

// Layout constants
const (
	modalWidth    = 52
	statLabelSize = 10
	maxStatValue  = 200 // Bar scale; legendary stats stay distinguishable
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	modalBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205")).
				Padding(1, 2)

	statTrackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// statRow pairs a label with its base stat.
type statRow struct {
	label string
	value int
}

func statRows(s domain.Stats) []statRow {
	return []statRow{
		{"HP", s.HP},
		{"Attack", s.Attack},
		{"Defense", s.Defense},
		{"Sp. Atk", s.SpecialAttack},
		{"Sp. Def", s.SpecialDefense},
		{"Speed", s.Speed},
	}
}

// DetailModel is the modal shown for a single record.
type DetailModel struct {
	keymap   KeyMap
	pokemon  domain.Pokemon
	viewport viewport.Model

	statusMsg string

	// View dimensions
	width  int
	height int
}

// NewDetailModel creates the modal for p.
func NewDetailModel(p domain.Pokemon, keymap KeyMap) DetailModel {
	m := DetailModel{
		keymap:  keymap,
		pokemon: p,
	}
	body := m.renderBody()
	m.viewport = viewport.New(modalWidth-6, lipgloss.Height(body)) // Shrunk in WindowSizeMsg
	m.viewport.SetContent(body)
	return m
}

// Init initializes the detail model.
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = modalWidth - 6
		m.viewport.Height = max(min(lipgloss.Height(m.renderBody()), msg.Height-8), 3)
		m.viewport.SetContent(m.renderBody())
		return m, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "esc", msg.String() == "q", key.Matches(msg, m.keymap.Details):
			return m, func() tea.Msg { return closeOverlayMsg{} }
		case key.Matches(msg, m.keymap.Open):
			if m.pokemon.SpriteURL == "" {
				m.statusMsg = "No sprite available"
				return m, nil
			}
			if err := openURL(m.pokemon.SpriteURL); err != nil {
				m.statusMsg = fmt.Sprintf("Could not open browser: %v", err)
				return m, nil
			}
			m.statusMsg = "Opened sprite in browser"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the modal centered on screen.
func (m DetailModel) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		detailTitleStyle.Render(displayName(m.pokemon.Name)),
		"  ",
		detailLabelStyle.Render(fmt.Sprintf("#%03d", m.pokemon.ID)),
	)

	footer := dimStyle.Render("o open sprite • esc close")
	if m.statusMsg != "" {
		footer = m.statusMsg
	}

	modal := modalBorderStyle.Width(modalWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View(), "", footer),
	)

	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderBody renders the scrollable modal content.
func (m DetailModel) renderBody() string {
	p := m.pokemon

	badges := make([]string, len(p.Types))
	for i, t := range p.Types {
		badges[i] = TypeBadge(t)
	}

	sprite := p.SpriteURL
	if sprite == "" {
		sprite = "(none)"
	}

	lines := []string{
		detailLabelStyle.Render("Sprite  ") + detailValueStyle.Render(sprite),
		detailLabelStyle.Render("Types   ") + strings.Join(badges, " "),
		"",
		detailLabelStyle.Render("Weight  ") + detailValueStyle.Render(fmt.Sprintf("%g kg", p.WeightKg)) +
			"    " + detailLabelStyle.Render("Height  ") + detailValueStyle.Render(fmt.Sprintf("%g m", p.HeightM)),
		"",
		detailTitleStyle.Render("Stats"),
	}
	for _, s := range statRows(p.Stats) {
		lines = append(lines, StatBar(s.label, s.value, modalWidth-6-statLabelSize-5))
	}
	return strings.Join(lines, "\n")
}

// StatBar renders a labelled bar scaled to maxStatValue and coloured by
// the value bucket.
func StatBar(label string, value, width int) string {
	filled := value * width / maxStatValue
	filled = max(min(filled, width), 0)

	bar := lipgloss.NewStyle().Foreground(statColor(value)).Render(strings.Repeat("█", filled)) +
		statTrackStyle.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s %s %3d",
		detailLabelStyle.Width(statLabelSize).Align(lipgloss.Right).Render(label),
		bar,
		value,
	)
}
