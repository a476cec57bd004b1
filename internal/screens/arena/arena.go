// Package arena holds the battle screen and the result screen that follows
// it.
package arena

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/router"
	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/layout"
)

// TickInterval is how often the countdown is sampled.
const TickInterval = 100 * time.Millisecond

// Mode selects how the battle is launched.
type Mode int

const (
	// ModeStart fights the current stage from a zero score.
	ModeStart Mode = iota
	// ModeRetry refights the current stage keeping the penalised score.
	ModeRetry
)

// Screen runs one battle.
type Screen struct {
	sess *session.Session
	mode Mode
	keys battleKeys

	last     *battle.Resolution
	category diagnosis.ErrorCategory
	errMsg   string
	left     bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a battle screen. The battle starts in Init.
func New(sess *session.Session, mode Mode) *Screen {
	return &Screen{sess: sess, mode: mode, keys: defaultBattleKeys()}
}

func (s *Screen) engine() *battle.Engine {
	return s.sess.Game().Engine()
}

func (s *Screen) Init() tea.Cmd {
	var err error
	if s.mode == ModeRetry {
		err = s.sess.Retry()
	} else {
		err = s.sess.StartBattle()
	}
	if err != nil {
		slog.Error("start battle", "err", err)
		s.errMsg = err.Error()
		return nil
	}
	slog.Debug("battle started", "battle_id", s.sess.Game().BattleID(), "stage", s.engine().Stage())
	return tick(s.engine().Turn())
}

func (s *Screen) Title() string {
	return "Battle"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		components.Hint(s.keys.Digit),
		components.Hint(s.keys.Delete),
		components.Hint(s.keys.Submit),
		components.Hint(s.keys.Flee),
	}
}

// Leave abandons an undecided battle: nothing is recorded and no result is
// shown. A battle already decided is concluded at once instead, so its
// result is never lost.
func (s *Screen) Leave() tea.Cmd {
	if s.left {
		return router.Pop
	}
	if s.engine().Phase().Terminal() {
		_, cmd := s.handleConclude()
		return cmd
	}
	s.left = true
	s.sess.Quit()
	return router.Pop
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.left {
		return s, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)
	case revealDoneMsg:
		if s.engine().Advance(msg.Turn) {
			s.last = nil
			s.category = ""
			return s, tick(s.engine().Turn())
		}
		return s, nil
	case concludeMsg:
		return s.handleConclude()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, s.Leave()
	}

	e := s.engine()
	switch {
	case key.Matches(msg, s.keys.Flee):
		return s, s.Leave()
	case key.Matches(msg, s.keys.Digit):
		if k := msg.String(); len(k) == 1 {
			e.Input(rune(k[0]))
		}
	case key.Matches(msg, s.keys.Delete):
		e.Delete()
	case key.Matches(msg, s.keys.Submit):
		if res, ok := e.Submit(); ok {
			return s, s.resolved(res)
		}
	}
	return s, nil
}

func (s *Screen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	e := s.engine()
	if msg.Turn != e.Turn() || !e.Active() || e.Processing() {
		// Stale tick from an earlier turn or battle.
		return s, nil
	}
	if res, ok := e.Tick(msg.Turn, msg.At); ok {
		return s, s.resolved(res)
	}
	return s, tick(msg.Turn)
}

// resolved records the turn and schedules what follows the reveal pause.
func (s *Screen) resolved(res battle.Resolution) tea.Cmd {
	s.last = &res
	s.category = s.sess.RecordTurn(context.Background(), res, nil)

	if res.Outcome == battle.OutcomeContinue {
		turn := res.Turn
		return tea.Tick(res.RevealDelay, func(time.Time) tea.Msg {
			return revealDoneMsg{Turn: turn}
		})
	}
	return tea.Tick(res.RevealDelay, func(time.Time) tea.Msg {
		return concludeMsg{}
	})
}

func (s *Screen) handleConclude() (screen.Screen, tea.Cmd) {
	report, ok := s.sess.Conclude(context.Background())
	if !ok {
		return s, router.Pop
	}
	s.left = true
	return s, router.Replace(NewResult(s.sess, report))
}

func tick(turn uint64) tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg{Turn: turn, At: t}
	})
}
