// Package title is the splash screen shown at start-up.
package title

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/router"
	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	swordEnd     = 500 * time.Millisecond
	bannerEnd    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const swordArt = `      /\
     /  \
     |  |
     |  |
   __|  |__
   \______/
      ||
      ||`

const bannerArt = `
 _  _ _   _ __  __  ___ ___    _   ___ _____
| \| | | | |  \/  |/ __| _ \  /_\ | __|_   _|
| .' | |_| | |\/| | (__|   / / _ \| _|  | |
|_|\_|\___/|_|  |_|\___|_|_\/_/ \_\_|   |_|`

const bannerCompact = "N U M C R A F T"

var sparkleFrames = []string{"✦", "✧"}

type tickMsg time.Time

// Screen animates the logo, then hands over to the screen built by next.
type Screen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
	resumed      bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates the title screen. resumed selects the welcome-back tagline.
func New(next func() screen.Screen, resumed bool) *Screen {
	return &Screen{next: next, resumed: resumed}
}

func (s *Screen) Title() string {
	return ""
}

func (s *Screen) Init() tea.Cmd {
	return nextTick()
}

func nextTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.transitioned {
			return s, nil
		}
		s.tickCount++
		if s.elapsed < totalDur {
			s.elapsed += tickInterval
		}
		return s, nextTick()

	case tea.KeyPressMsg:
		// The first key during the animation shows the finished logo.
		if s.elapsed < totalDur {
			s.elapsed = totalDur
			return s, nil
		}
		return s, s.transition()
	}

	return s, nil
}

func (s *Screen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	return router.Replace(s.next())
}

func (s *Screen) View(width, height int) string {
	var sections []string

	sword := lipgloss.NewStyle().Foreground(theme.Secondary).Render(swordArt)
	if s.elapsed >= swordEnd {
		sparkle := sparkleFrames[s.tickCount%len(sparkleFrames)]
		spark := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		lines := strings.Split(sword, "\n")
		if len(lines) > 1 {
			lines[1] = spark + "  " + lines[1]
		}
		if len(lines) > 4 {
			lines[4] = lines[4] + "  " + spark
		}
		sword = strings.Join(lines, "\n")
	}
	sections = append(sections, sword)

	if s.elapsed >= bannerEnd {
		tagline := "Solve fast. Hit hard."
		if s.resumed {
			tagline = "Welcome back, hero!"
		}
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// RenderBanner returns the game banner, compact below 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
