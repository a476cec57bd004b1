// Package atlas shows every stage grouped by area and lets the player pick
// any unlocked stage to fight.
package atlas

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/router"
	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/screens/arena"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/layout"
	"github.com/abhisek/numcraft/internal/ui/theme"
)

type rowKind int

const (
	rowAreaHeader rowKind = iota
	rowStage
)

type row struct {
	kind    rowKind
	area    catalog.Area
	stage   int
	monster catalog.Monster
}

// StageState is how far the player has got with a stage.
type StageState int

const (
	StateLocked StageState = iota
	StateOpen
	StateCleared
)

// Label returns the text shown in the status column.
func (s StageState) Label() string {
	switch s {
	case StateCleared:
		return "Cleared"
	case StateOpen:
		return "Open"
	default:
		return "Locked"
	}
}

// Icon returns the status glyph.
func (s StageState) Icon() string {
	switch s {
	case StateCleared:
		return "✓"
	case StateOpen:
		return "▶"
	default:
		return "·"
	}
}

// AtlasScreen lists the stages.
type AtlasScreen struct {
	sess         *session.Session
	keys         components.MenuKeys
	rows         []row
	cursor       int
	scrollOffset int
	notice       string
}

var _ screen.Screen = (*AtlasScreen)(nil)
var _ screen.KeyHintProvider = (*AtlasScreen)(nil)
var _ screen.Focuser = (*AtlasScreen)(nil)

// New creates an AtlasScreen with the cursor on the current stage.
func New(sess *session.Session) *AtlasScreen {
	s := &AtlasScreen{sess: sess, keys: components.DefaultMenuKeys()}
	s.build()
	return s
}

// build lays out the authored stages plus any endless stages reached.
func (s *AtlasScreen) build() {
	cat := s.sess.Game().Catalog()
	run := s.sess.Game().Run()
	count := max(cat.StageCount(), run.BestStage+1)

	s.rows = s.rows[:0]
	lastArea := -1
	for stage := 0; stage < count; stage++ {
		if idx := cat.AreaIndex(stage); idx != lastArea {
			s.rows = append(s.rows, row{kind: rowAreaHeader, area: cat.Area(stage)})
			lastArea = idx
		}
		s.rows = append(s.rows, row{kind: rowStage, stage: stage, monster: cat.Monster(stage), area: cat.Area(stage)})
	}

	for i, r := range s.rows {
		if r.kind == rowStage && r.stage == run.Stage {
			s.cursor = i
			return
		}
	}
	s.cursor = 1
}

// Focus refreshes the stage states after a battle.
func (s *AtlasScreen) Focus() tea.Cmd {
	s.build()
	return nil
}

func (s *AtlasScreen) Init() tea.Cmd {
	return nil
}

func (s *AtlasScreen) Title() string {
	return "Stage Atlas"
}

func (s *AtlasScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		components.Hint(s.keys.Up),
		{Key: "Enter", Description: "Fight"},
		{Key: "Esc", Description: "Back"},
	}
}

// State returns the state of stage for the current run.
func (s *AtlasScreen) State(stage int) StageState {
	best := s.sess.Game().Run().BestStage
	switch {
	case stage < best:
		return StateCleared
	case stage == best:
		return StateOpen
	default:
		return StateLocked
	}
}

func (s *AtlasScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, s.keys.Up):
		s.moveCursor(-1)
	case key.Matches(kmsg, s.keys.Down):
		s.moveCursor(1)
	case key.Matches(kmsg, s.keys.Select):
		return s, s.fight()
	}
	return s, nil
}

// moveCursor moves the cursor by delta, skipping area headers.
func (s *AtlasScreen) moveCursor(delta int) {
	s.notice = ""
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowStage {
			s.cursor = next
			return
		}
		next += delta
	}
}

func (s *AtlasScreen) fight() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowStage {
		return nil
	}
	if err := s.sess.Game().SelectStage(r.stage); err != nil {
		s.notice = fmt.Sprintf("Stage %d is locked. Clear stage %d first.", r.stage+1, s.sess.Game().Run().BestStage+1)
		return nil
	}
	return router.Push(arena.New(s.sess, arena.ModeStart))
}

func (s *AtlasScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	listHeight := height
	if s.notice != "" {
		listHeight -= 2
	}
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowAreaHeader:
			lines = append(lines, s.renderAreaHeader(r.area, width))
		case rowStage:
			lines = append(lines, s.renderStageRow(r, i == s.cursor))
		}
	}
	if s.notice != "" {
		lines = append(lines, "", components.Center(width, theme.Incorrect.Render(s.notice)))
	}
	return strings.Join(lines, "\n")
}

// adjustScroll keeps the cursor and its area header in view.
func (s *AtlasScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowAreaHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *AtlasScreen) renderAreaHeader(a catalog.Area, width int) string {
	text := strings.ToUpper(a.Label()) + fmt.Sprintf("  ⏱ %ds", a.TimeLimit)
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(0, 0, 0, 2).
		Render(text)
}

func (s *AtlasScreen) renderStageRow(r row, selected bool) string {
	state := s.State(r.stage)
	m := r.monster

	name := m.Name
	if m.Icon != "" {
		name = m.Icon + " " + name
	}
	if m.Boss {
		name += " ★"
	}

	var style lipgloss.Style
	switch {
	case selected:
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	case state == StateCleared:
		style = lipgloss.NewStyle().Foreground(theme.Success)
	case state == StateOpen:
		style = lipgloss.NewStyle().Foreground(theme.Text)
	default:
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	timer := s.sess.Game().Catalog().TimerDuration(r.stage)
	line := fmt.Sprintf("%s%s %2d  %-22s HP %4d  ATK %3d  %3.0fs  %s",
		cursor, state.Icon(), r.stage+1, name, m.HP, m.Attack, timer.Seconds(), state.Label())
	return "  " + style.Render(line)
}
