package arena

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not start the battle: "+s.errMsg)+"\n\n"+
				theme.Hint.Render("press any key to go back"))
	}

	st := s.engine().State()
	cw := components.ContentWidth(width)
	cat := s.sess.Game().Catalog()

	var b strings.Builder

	// Monster line.
	m := st.Monster
	name := m.Name
	if m.Icon != "" {
		name = m.Icon + " " + name
	}
	if m.Boss {
		name += lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  BOSS")
	}
	left := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(name)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s  Stage %d", cat.Area(st.Stage).Label(), st.Stage+1))
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	b.WriteString(left + strings.Repeat(" ", gap) + right)
	b.WriteString("\n")
	b.WriteString(components.HPBar("MONSTER", st.MonsterHP, st.MonsterMax, cw, theme.MonsterHP))
	b.WriteString("\n\n")

	// Problem and input.
	problem := theme.Title.Width(cw).Render(st.Problem.Text())
	b.WriteString(problem)
	b.WriteString("\n\n")

	input := st.Input
	if input == "" {
		input = " "
	}
	b.WriteString(components.Center(cw, theme.InputBox.Render(fmt.Sprintf("%3s", input))))
	b.WriteString("\n")
	b.WriteString(s.renderReveal(cw))
	b.WriteString("\n\n")

	b.WriteString(components.TimerBar(st.Remaining.Milliseconds(), st.TimeLimit.Milliseconds(), st.Danger, cw))
	b.WriteString("\n")
	b.WriteString(components.HPBar("YOU    ", st.PlayerHP, st.PlayerMax, cw, theme.PlayerHP))
	b.WriteString("\n\n")

	// Stats line.
	stats := fmt.Sprintf("%s %s   Combo x%d   Score %s",
		st.Level.Icon(), st.Level.Name(), st.Combo, components.FormatNumber(st.Score))
	b.WriteString(components.Line(cw, lipgloss.NewStyle().Foreground(theme.TextDim), stats))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderReveal describes the turn just resolved.
func (s *Screen) renderReveal(width int) string {
	res := s.last
	if res == nil {
		return ""
	}

	var lines []string
	switch res.Kind {
	case battle.KindCorrect:
		msg := fmt.Sprintf("Hit! %d damage  +%d", res.Damage, res.ScoreGained)
		if res.Combo > 1 {
			msg += fmt.Sprintf("  🔥 x%d", res.Combo)
		}
		lines = append(lines, theme.Correct.Render(msg))
	case battle.KindTimeout:
		lines = append(lines, theme.Incorrect.Render(
			fmt.Sprintf("Time's up! The answer was %d. You take %d damage", res.Problem.Answer, res.Damage)))
	default:
		lines = append(lines, theme.Incorrect.Render(
			fmt.Sprintf("Miss! The answer was %d. You take %d damage", res.Problem.Answer, res.Damage)))
	}

	if hint := mistakeHint(s.category); hint != "" {
		lines = append(lines, theme.Hint.Render(hint))
	}
	if res.LevelChanged {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(
			fmt.Sprintf("Difficulty now %s %s", res.Level.Icon(), res.Level.Name())))
	}
	switch res.Outcome {
	case battle.OutcomeVictory:
		lines = append(lines, theme.Correct.Render(s.engine().State().Monster.DeathMessage))
	case battle.OutcomeDefeat:
		lines = append(lines, theme.Incorrect.Render("You were defeated..."))
	}

	for i, l := range lines {
		lines[i] = components.Center(width, l)
	}
	return strings.Join(lines, "\n")
}

// mistakeHint is a one-line nudge for a diagnosed miss.
func mistakeHint(c diagnosis.ErrorCategory) string {
	switch c {
	case diagnosis.CategoryForgotBorrow:
		return "Remember to borrow from the tens."
	case diagnosis.CategoryAddedInstead:
		return "That was the sum. Take away instead!"
	case diagnosis.CategoryOffByOne:
		return "So close, just one away."
	case diagnosis.CategorySpeedRush:
		return "Slow down a little."
	default:
		return ""
	}
}
