// Package history lists past battles from the event store.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/store"
	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/layout"
	"github.com/abhisek/numcraft/internal/ui/theme"
)

// PageSize is how many battles are listed.
const PageSize = 50

type historyLoadedMsg struct {
	Battles []store.BattleEvent
	Summary store.BattleSummary
	Err     error
}

type answersLoadedMsg struct {
	BattleID string
	Answers  []store.AnswerEvent
	Err      error
}

// HistoryScreen displays past battles. Enter expands a battle into its
// turns.
type HistoryScreen struct {
	eventRepo store.EventRepo
	battles   []store.BattleEvent
	summary   store.BattleSummary
	answers   map[string][]store.AnswerEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
	menuKeys  components.MenuKeys
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerEvent),
		expanded:  make(map[int]bool),
		menuKeys:  components.DefaultMenuKeys(),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		battles, err := repo.RecentBattles(ctx, store.QueryOpts{Limit: PageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		summary, err := repo.BattleSummary(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Battles: battles, Summary: summary}
	}
}

func (s *HistoryScreen) loadAnswers(battleID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.Answers(context.Background(), store.QueryOpts{BattleID: battleID})
		return answersLoadedMsg{BattleID: battleID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Turns"},
		components.Hint(s.menuKeys.Up),
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.battles = msg.Battles
			s.summary = msg.Summary
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.BattleID] = msg.Answers
		}
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, s.menuKeys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.menuKeys.Down):
			if s.selected < len(s.battles)-1 {
				s.selected++
			}
		case key.Matches(msg, s.menuKeys.Select):
			if s.selected >= len(s.battles) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.battles[s.selected].BattleID
			if _, ok := s.answers[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAnswers(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.battles) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No battles yet. Go fight a monster!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Center(width, s.renderSummary()))
	b.WriteString("\n\n")

	for i, bt := range s.battles {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		outcome := "WON "
		if !bt.Victory {
			outcome = "LOST"
		}
		line := fmt.Sprintf("%s%s  %s  Stage %-3d %-14s %6s pts  %3d%%  x%d  %s",
			prefix, bt.Timestamp.Format("Jan 02 15:04"), outcome, bt.Stage+1, bt.Monster,
			components.FormatNumber(bt.Banked), bt.Accuracy, bt.MaxCombo, bt.Loot)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !bt.Victory {
			style = style.Foreground(theme.TextDim)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(components.Center(width, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderTurns(bt.BattleID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderSummary() string {
	best := "none yet"
	if s.summary.BestStage >= 0 {
		best = fmt.Sprintf("stage %d", s.summary.BestStage+1)
	}
	text := fmt.Sprintf("%d battles  %d won  best %s  %s points banked",
		s.summary.Battles, s.summary.Victories, best, components.FormatNumber(s.summary.TotalScore))
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(text)
}

func (s *HistoryScreen) renderTurns(battleID string, width int) string {
	answers, ok := s.answers[battleID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return components.Center(width, dim.Render("    loading turns...")) + "\n"
	}
	if len(answers) == 0 {
		return components.Center(width, dim.Render("    No turns recorded")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		given := a.Given
		if given == "" {
			given = "-"
		}
		line := fmt.Sprintf("    %2d - %-2d = %-3s (%d)  %5.1fs", a.A, a.B, given, a.Answer, float64(a.ElapsedMs)/1000)
		style := theme.Correct
		if !a.Correct {
			style = theme.Incorrect
			if a.Category != "" {
				line += "  " + a.Category
			}
		}
		b.WriteString(components.Center(width, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
