// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/router"
	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/screens/home"
	"github.com/abhisek/numcraft/internal/screens/title"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Session *session.Session

	// Resumed selects the welcome-back title card.
	Resumed bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sess   *session.Session
	router *router.Router
	width  int
	height int
}

// newAppModel starts on the title card, which hands over to the camp.
func newAppModel(opts Options) AppModel {
	sess := opts.Session
	camp := func() screen.Screen { return home.New(sess) }
	return AppModel{
		sess:   sess,
		router: router.New(title.New(camp, opts.Resumed)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.sess.Quit()
			return m, tea.Quit
		case "esc":
			if l, ok := m.router.Active().(screen.Leaver); ok {
				return m, l.Leave()
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the run progress for the header. During a battle the live
// score is shown instead of the banked total.
func (m AppModel) status() layout.Status {
	game := m.sess.Game()
	run := game.Run()
	score := run.TotalScore
	if e := game.Engine(); e.Active() {
		score = e.Score()
	}
	return layout.Status{Stage: run.Stage, Best: run.BestStage, Score: components.FormatNumber(score)}
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// render draws the whole frame.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	titleText := ""
	if active := m.router.Active(); active != nil {
		titleText = active.Title()
	}

	header := layout.RenderHeader(titleText, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("app: no session")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
