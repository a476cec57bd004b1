package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/ui/theme"
)

// Bar displays a horizontal gauge such as a health or countdown bar.
type Bar struct {
	Label string
	Value int
	Max   int
	Width int
	Color color.Color
	// Caption replaces the default "value/max" text when set.
	Caption string
}

// Fraction returns how full the bar is, clamped to [0, 1].
func (b Bar) Fraction() float64 {
	if b.Max <= 0 {
		return 0
	}
	f := float64(b.Value) / float64(b.Max)
	return min(max(f, 0), 1)
}

// Filled returns the number of filled cells for a bar of width cells.
func (b Bar) Filled(width int) int {
	return int(float64(width) * b.Fraction())
}

// View renders the bar.
func (b Bar) View() string {
	var result string
	if b.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(b.Label) + "  "
	}

	caption := b.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d/%d", max(b.Value, 0), b.Max)
	}
	caption = "  " + caption

	barWidth := b.Width - lipgloss.Width(result) - lipgloss.Width(caption)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := b.Filled(barWidth)
	fill := b.Color
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += theme.BarEmpty.Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
	return result
}

// HPBar renders a health bar.
func HPBar(label string, hp, maxHP, width int, c color.Color) string {
	return Bar{Label: label, Value: hp, Max: maxHP, Width: width, Color: c}.View()
}

// TimerBar renders the turn countdown. It switches to the danger colour
// once danger is set.
func TimerBar(remainingMs, limitMs int64, danger bool, width int) string {
	c := theme.Timer
	if danger {
		c = theme.Danger
	}
	return Bar{
		Label:   "TIME",
		Value:   int(remainingMs),
		Max:     int(limitMs),
		Width:   width,
		Color:   c,
		Caption: fmt.Sprintf("%4.1fs", float64(remainingMs)/1000),
	}.View()
}
