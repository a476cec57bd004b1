package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the centered panels.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card cw cells wide.
func Card(content string, cw int, border lipgloss.Style) string {
	return border.
		Border(lipgloss.RoundedBorder()).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}

// Panel is a Card with the default border colour.
func Panel(content string, cw int) string {
	return Card(content, cw, lipgloss.NewStyle().BorderForeground(theme.Border))
}

// Center places s in the middle of a line width cells wide.
func Center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// Line renders text centered in the given colour.
func Line(width int, fg lipgloss.Style, text string) string {
	return fg.Width(width).Align(lipgloss.Center).Render(text)
}
