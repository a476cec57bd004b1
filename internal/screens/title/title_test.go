package title

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numcraft/internal/router"
	"github.com/abhisek/numcraft/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "hub" }
func (s *stubScreen) Title() string                           { return "Camp" }

func newTestTitle(resumed bool) (*Screen, *int) {
	calls := 0
	next := func() screen.Screen {
		calls++
		return &stubScreen{}
	}
	return New(next, resumed), &calls
}

func sendTicks(s *Screen, n int) {
	for i := 0; i < n; i++ {
		s.Update(tickMsg(time.Now()))
	}
}

func containsBanner(view string) bool {
	return strings.Contains(view, "|_|\\_|") || strings.Contains(view, bannerCompact)
}

func TestBannerAppearsAfterAnimation(t *testing.T) {
	s, _ := newTestTitle(false)

	if containsBanner(s.View(80, 24)) {
		t.Error("banner should not be visible at start")
	}

	sendTicks(s, 15)
	if s.elapsed != bannerEnd {
		t.Errorf("expected elapsed %v, got %v", bannerEnd, s.elapsed)
	}
	view := s.View(80, 24)
	if !containsBanner(view) {
		t.Error("banner should be visible after 1.5s")
	}
	if !strings.Contains(view, "Solve fast") {
		t.Error("expected the new-game tagline")
	}
}

func TestElapsedStopsAtTotal(t *testing.T) {
	s, _ := newTestTitle(false)
	sendTicks(s, 100)
	if s.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, s.elapsed)
	}
}

func TestFirstKeySkipsAnimation(t *testing.T) {
	s, calls := newTestTitle(false)
	sendTicks(s, 3)

	_, cmd := s.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Error("first key should only skip the animation")
	}
	if s.elapsed != totalDur {
		t.Errorf("expected animation skipped, elapsed %v", s.elapsed)
	}
	if *calls != 0 {
		t.Error("next screen should not be built yet")
	}
}

func TestKeyAfterAnimationReplaces(t *testing.T) {
	s, calls := newTestTitle(true)
	sendTicks(s, 30)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'a'})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Camp" {
		t.Errorf("unexpected next screen %q", msg.Screen.Title())
	}

	// Further keys do not build another screen.
	_, cmd = s.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("expected no second transition")
	}
	if *calls != 1 {
		t.Errorf("expected factory called once, got %d", *calls)
	}
}

func TestResumedTagline(t *testing.T) {
	s, _ := newTestTitle(true)
	sendTicks(s, 30)
	if !strings.Contains(s.View(80, 24), "Welcome back") {
		t.Error("expected the welcome-back tagline")
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("expected compact banner, got %q", got)
	}
}

func TestTicksStopAfterTransition(t *testing.T) {
	s, _ := newTestTitle(false)
	sendTicks(s, 30)
	s.Update(tea.KeyPressMsg{Code: 'a'})
	if _, cmd := s.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("expected ticking to stop after transition")
	}
}
