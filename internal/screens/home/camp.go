package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/theme"
)

const campTitleFull = `█▄ █ █ █ █▀▄▀█ █▀▀ █▀█ ▄▀█ █▀▀ ▀█▀
█ ▀█ █▄█ █ ▀ █ █▄▄ █▀▄ █▀█ █▀   █ `

const campTitleCompact = "N · U · M · C · R · A · F · T"

// stats is the summary shown in the camp's status box.
type stats struct {
	stage      int
	best       int
	totalScore int
	maxHP      int
	attack     int
}

func renderTitle(cw int, compact bool) string {
	art := campTitleFull
	if compact {
		art = campTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(art))
}

// renderStatsBar renders the run summary in a double-bordered box.
func renderStatsBar(st stats, cw int, compact bool) string {
	stage := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	score := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	gear := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var text string
	if compact {
		text = fmt.Sprintf("%s %s %s",
			stage.Render(fmt.Sprintf("⚑%d", st.stage+1)),
			score.Render("★"+components.FormatNumber(st.totalScore)),
			gear.Render(fmt.Sprintf("♥%d", st.maxHP)),
		)
	} else {
		text = fmt.Sprintf("%s  %s  %s",
			stage.Render(fmt.Sprintf("⚑ STAGE %d (BEST %d)", st.stage+1, st.best)),
			score.Render("★ "+components.FormatNumber(st.totalScore)),
			gear.Render(fmt.Sprintf("♥ %d  ⚔ +%d", st.maxHP, st.attack)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

const buttonWidth = 26

// renderMenu renders each item as a fixed-width button, or as plain lines
// when the terminal is short.
func renderMenu(labels []string, selected int, disabled map[int]bool, cw int, compact bool) string {
	base := lipgloss.NewStyle().Align(lipgloss.Center)
	if !compact {
		base = base.Width(buttonWidth).Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1)
	}

	var buttons []string
	for i, label := range labels {
		switch {
		case disabled[i]:
			buttons = append(buttons, base.Foreground(theme.TextDim).Render(label))
		case i == selected:
			buttons = append(buttons, base.
				Bold(true).
				Foreground(theme.BgDark).
				Background(theme.Accent).
				BorderForeground(theme.Accent).
				Render("▸ "+label))
		default:
			buttons = append(buttons, base.Foreground(theme.Text).Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func renderDetail(detail string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(detail)
}

// renderCampFrame wraps content in a double border centred in the area.
func renderCampFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
