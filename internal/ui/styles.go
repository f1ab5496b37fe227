package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("196") // Pokedex red
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("220") // Yellow
	colorFavorite  = lipgloss.Color("212") // Pink
)

// typeColors gives each Pokemon type its customary hue.
var typeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("#a8a77a"),
	"fire":     lipgloss.Color("#ee8130"),
	"water":    lipgloss.Color("#6390f0"),
	"electric": lipgloss.Color("#f7d02c"),
	"grass":    lipgloss.Color("#7ac74c"),
	"ice":      lipgloss.Color("#96d9d6"),
	"fighting": lipgloss.Color("#c22e28"),
	"poison":   lipgloss.Color("#a33ea1"),
	"ground":   lipgloss.Color("#e2bf65"),
	"flying":   lipgloss.Color("#a98ff3"),
	"psychic":  lipgloss.Color("#f95587"),
	"bug":      lipgloss.Color("#a6b91a"),
	"rock":     lipgloss.Color("#b6a136"),
	"ghost":    lipgloss.Color("#735797"),
	"dragon":   lipgloss.Color("#6f35fc"),
	"dark":     lipgloss.Color("#705746"),
	"steel":    lipgloss.Color("#b7b7ce"),
	"fairy":    lipgloss.Color("#d685ad"),
}

// SelectedItem style for the currently highlighted entry.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected entries.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// FavoriteMark style for the favorite indicator.
var FavoriteMark = lipgloss.NewStyle().
	Foreground(colorFavorite).
	Bold(true)

// TypeBadge returns a badge style colored for the given type name.
func TypeBadge(typeName string) lipgloss.Style {
	color, ok := typeColors[typeName]
	if !ok {
		color = colorSecondary
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(color).
		Padding(0, 1).
		MarginRight(1)
}

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// FilterBar style for the search input bar.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// DetailTitle style for the detail view header.
var DetailTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// DetailLabel style for field labels in the detail view.
var DetailLabel = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ChainArrow style for evolution chain transitions.
var ChainArrow = lipgloss.NewStyle().
	Foreground(colorMuted)

// ApplyTheme switches the palette for the named theme. Unknown names get
// the dark palette. Call before the program starts rendering.
func ApplyTheme(name string) {
	text := lipgloss.Color("255")
	bar := lipgloss.Color("236")
	if name == "light" {
		text = lipgloss.Color("235")
		bar = lipgloss.Color("253")
	}

	NormalItem = NormalItem.Foreground(text)
	SelectedItem = SelectedItem.Foreground(lipgloss.Color("255"))
	FilterBar = FilterBar.Foreground(text)
	StatusBar = StatusBar.Foreground(text).Background(bar)
}
