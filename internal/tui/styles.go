package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. brand is the indigo new modes start with.
var (
	colorBrand   = lipgloss.Color("#5B5BD6")
	colorText    = lipgloss.Color("#E4E4E7")
	colorDim     = lipgloss.Color("#71717A")
	colorBorder  = lipgloss.Color("#3F3F46")
	colorDone    = lipgloss.Color("#22C55E")
	colorPending = lipgloss.Color("#EAB308")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#38BDF8")
	colorRose    = lipgloss.Color("#FB7185")
)

// modeColors are the named colors a mode can take. "brand" is the color
// new modes start with.
var modeColors = []string{"brand", "blue", "orange", "green", "red", "purple", "pink", "teal"}

var modeColorValues = map[string]lipgloss.Color{
	"brand":  colorBrand,
	"blue":   lipgloss.Color("#3B82F6"),
	"orange": lipgloss.Color("#F97316"),
	"green":  lipgloss.Color("#10B981"),
	"red":    lipgloss.Color("#DC2626"),
	"purple": lipgloss.Color("#A855F7"),
	"pink":   lipgloss.Color("#EC4899"),
	"teal":   lipgloss.Color("#14B8A6"),
}

// modeColor resolves a mode color name or a "#rrggbb" value.
func modeColor(name string) lipgloss.Color {
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name)
	}
	if c, ok := modeColorValues[strings.ToLower(name)]; ok {
		return c
	}
	return colorBrand
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand).
			Border(lipgloss.ThickBorder(), false, false, true, false).
			BorderForeground(colorBrand).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Border(lipgloss.HiddenBorder(), false, false, true, false).
				Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	// activePanelStyle frames the panel that has focus.
	activePanelStyle = panelStyle.
				BorderForeground(colorBrand)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(colorDim)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorDim)

	accentStyle    = lipgloss.NewStyle().Foreground(colorRose)
	highlightStyle = lipgloss.NewStyle().Foreground(colorInfo)
	successStyle   = lipgloss.NewStyle().Foreground(colorDone)
	warningStyle   = lipgloss.NewStyle().Foreground(colorPending)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)

	doneTaskStyle = mutedStyle.
			Strikethrough(true)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorBorder).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBrand)
	normalItemStyle = lipgloss.NewStyle().Foreground(colorText)
)
