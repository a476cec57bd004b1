package arena

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/campaign"
	"github.com/abhisek/numcraft/internal/coach"
	"github.com/abhisek/numcraft/internal/router"
	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/layout"
	"github.com/abhisek/numcraft/internal/ui/theme"
)

// ResultScreen shows the outcome of a battle, its loot and the coach note.
type ResultScreen struct {
	sess   *session.Session
	report campaign.Report
	note   *coach.Note
	menu   components.Menu
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// NewResult creates the result screen for report.
func NewResult(sess *session.Session, report campaign.Report) *ResultScreen {
	r := &ResultScreen{sess: sess, report: report}

	var items []components.MenuItem
	if report.Result.Victory {
		items = append(items, components.MenuItem{
			Label: "Next stage",
			Action: func() tea.Cmd {
				return router.Replace(New(sess, ModeStart))
			},
		})
	} else {
		items = append(items, components.MenuItem{
			Label:  "Retry",
			Detail: fmt.Sprintf("-%d score", campaign.RetryPenalty),
			Action: func() tea.Cmd {
				return router.Replace(New(sess, ModeRetry))
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Back to camp",
		Action: func() tea.Cmd { return router.PopToRoot },
	})
	r.menu = components.NewMenu(items)
	return r
}

func (r *ResultScreen) Init() tea.Cmd {
	sess, report := r.sess, r.report
	return func() tea.Msg {
		return noteMsg{Note: sess.Note(context.Background(), report)}
	}
}

func (r *ResultScreen) Title() string {
	if r.report.Result.Victory {
		return "Victory"
	}
	return "Defeat"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		components.Hint(r.menu.Keys.Up),
		components.Hint(r.menu.Keys.Select),
		{Key: "Esc", Description: "Camp"},
	}
}

// Note returns the coach note once it has arrived.
func (r *ResultScreen) Note() (coach.Note, bool) {
	if r.note == nil {
		return coach.Note{}, false
	}
	return *r.note, true
}

// Leave returns to the hub rather than to the finished battle.
func (r *ResultScreen) Leave() tea.Cmd {
	return router.PopToRoot
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(noteMsg); ok {
		r.note = &msg.Note
		return r, nil
	}
	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

func (r *ResultScreen) View(width, height int) string {
	res := r.report.Result
	cw := components.ContentWidth(width)
	monster := r.sess.Game().Catalog().Monster(res.Stage)

	var b strings.Builder

	if res.Victory {
		b.WriteString(theme.Correct.Width(cw).Align(lipgloss.Center).Render("VICTORY!"))
		b.WriteString("\n")
		b.WriteString(components.Line(cw, lipgloss.NewStyle().Foreground(theme.Text), monster.DeathMessage))
	} else {
		b.WriteString(theme.Incorrect.Width(cw).Align(lipgloss.Center).Render("DEFEAT"))
		b.WriteString("\n")
		b.WriteString(components.Line(cw, lipgloss.NewStyle().Foreground(theme.Text),
			fmt.Sprintf("The %s is still standing.", monster.Name)))
	}
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Score %s   Banked %s   Accuracy %d%%   Best combo %d",
		components.FormatNumber(res.Score), components.FormatNumber(r.report.Banked), res.Accuracy, res.MaxCombo)
	b.WriteString(components.Line(cw, lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n")

	level := fmt.Sprintf("Difficulty %s %s", res.Level.Icon(), res.Level.Name())
	if res.LevelChanged {
		level += "  (changed this battle)"
	}
	b.WriteString(components.Line(cw, lipgloss.NewStyle().Foreground(theme.TextDim), level))
	b.WriteString("\n\n")

	if len(r.report.Loot) > 0 {
		b.WriteString(components.Panel(renderLoot(r.report.Loot), cw))
		b.WriteString("\n\n")
	}

	b.WriteString(components.Panel(r.renderNote(), cw))
	b.WriteString("\n\n")
	b.WriteString(r.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (r *ResultScreen) renderNote() string {
	if r.note == nil {
		return theme.Hint.Render("The coach is thinking...")
	}
	head := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(r.note.Headline)
	if r.note.Tip == "" {
		return head
	}
	return head + "\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(r.note.Tip)
}

func renderLoot(loot campaign.Loot) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loot"))
	for _, d := range loot {
		rarity := d.Resource.Rarity()
		line := fmt.Sprintf("%s %s ×%d", d.Resource.Icon(), d.Resource.DisplayName(), d.Amount)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.RarityColor(string(rarity))).Render(line))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + rarity.DisplayName()))
	}
	return b.String()
}
