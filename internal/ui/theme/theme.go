// Package theme holds the colour palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, blocky and earthy with bright highlights.
var (
	Primary   = lipgloss.Color("#5B8C32") // Grass green
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#FACC15") // Gold
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Warning   = lipgloss.Color("#F97316") // Orange
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#111827") // Cave
	BgCard    = lipgloss.Color("#1F2937") // Stone
	Border    = lipgloss.Color("#374151") // Cobble
)

// Bar colours.
var (
	PlayerHP  = Success
	MonsterHP = Error
	Timer     = Secondary
	Danger    = Warning
)

// Epic is the loot colour between rare and legendary.
var Epic = lipgloss.Color("#A855F7")

// RarityColor returns the colour for a loot tier name such as "rare".
func RarityColor(tier string) color.Color {
	switch tier {
	case "rare":
		return Secondary
	case "epic":
		return Epic
	case "legendary":
		return Accent
	default:
		return Text
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	BarEmpty = lipgloss.NewStyle().
			Background(Border)

	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)
)
