package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")). // Purple
			MarginBottom(1)

	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// PromptStyle is used for prompt text.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")). // Light blue
			MarginBottom(1)

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Dark gray
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	skeletonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("237"))
)

// typeColors maps each creature type to its badge background.
var typeColors = map[string]lipgloss.Color{
	"normal":   "248",
	"fire":     "196",
	"water":    "33",
	"electric": "220",
	"grass":    "34",
	"ice":      "87",
	"fighting": "130",
	"poison":   "91",
	"ground":   "178",
	"flying":   "105",
	"psychic":  "205",
	"bug":      "106",
	"rock":     "137",
	"ghost":    "55",
	"dragon":   "57",
	"dark":     "238",
	"steel":    "67",
	"fairy":    "218",
}

// darkTextTypes get black text on their light badges.
var darkTextTypes = map[string]bool{
	"electric": true,
	"ice":      true,
	"fairy":    true,
}

// TypeBadge renders a type as a coloured badge. Unknown types get grey.
func TypeBadge(t string) string {
	bg, ok := typeColors[t]
	if !ok {
		bg = "244"
	}
	fg := lipgloss.Color("255")
	if darkTextTypes[t] {
		fg = "0"
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Render(t)
}

// statColor buckets a base stat: red, yellow, green, cyan.
func statColor(value int) lipgloss.Color {
	switch {
	case value < 60:
		return "196"
	case value < 90:
		return "220"
	case value < 120:
		return "34"
	default:
		return "51"
	}
}
