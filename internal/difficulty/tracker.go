// Package difficulty tracks rolling answer performance and decides when the
// problem level should move up or down.
package difficulty

import (
	"math"

	"github.com/abhisek/numcraft/internal/problemgen"
)

// StageMemory is per-stage state that is forgotten between battles.
// *problemgen.UsedSet satisfies it.
type StageMemory interface {
	Clear()
}

// Config holds the adjustment thresholds.
type Config struct {
	// Window is the number of most recent answers considered.
	Window int

	// MinSamples is the number of recent answers required before any
	// adjustment is evaluated.
	MinSamples int

	// PromoteRate and PromoteStreak must both be met to move up a level.
	PromoteRate   float64
	PromoteStreak int

	// DemoteRate at or below which the level moves down.
	DemoteRate float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		Window:        10,
		MinSamples:    5,
		PromoteRate:   0.8,
		PromoteStreak: 3,
		DemoteRate:    0.3,
	}
}

// Outcome is the result of recording one answer.
type Outcome struct {
	Combo        int
	LevelChanged bool
	NewLevel     problemgen.Level
}

// State is the persistent part of a Tracker.
type State struct {
	Level         problemgen.Level `json:"level"`
	TotalCorrect  int              `json:"total_correct"`
	TotalAttempts int              `json:"total_attempts"`
	MaxCombo      int              `json:"max_combo"`
}

// Tracker keeps accuracy and combo statistics and owns the current level.
// It is not safe for concurrent use.
type Tracker struct {
	cfg    Config
	memory StageMemory

	level         problemgen.Level
	totalCorrect  int
	totalAttempts int
	consecutive   int
	maxCombo      int
	recent        []bool
}

// New creates a Tracker at the easiest level. memory may be nil.
func New(cfg Config, memory StageMemory) *Tracker {
	return &Tracker{
		cfg:    cfg,
		memory: memory,
		level:  problemgen.LevelEasy,
		recent: make([]bool, 0, cfg.Window),
	}
}

// RecordAnswer updates the statistics with one answer and applies at most one
// level step.
func (t *Tracker) RecordAnswer(correct bool) Outcome {
	t.totalAttempts++
	if correct {
		t.totalCorrect++
		t.consecutive++
		t.maxCombo = max(t.maxCombo, t.consecutive)
	} else {
		t.consecutive = 0
	}

	t.recent = append(t.recent, correct)
	if over := len(t.recent) - t.cfg.Window; over > 0 {
		t.recent = append(t.recent[:0], t.recent[over:]...)
	}

	changed := t.adjust()
	return Outcome{
		Combo:        t.consecutive,
		LevelChanged: changed,
		NewLevel:     t.level,
	}
}

// adjust moves the level by one step when the recent window warrants it and
// restarts the window on any change.
func (t *Tracker) adjust() bool {
	if len(t.recent) < t.cfg.MinSamples {
		return false
	}

	rate := t.RecentRate()
	old := t.level
	switch {
	case rate >= t.cfg.PromoteRate && t.consecutive >= t.cfg.PromoteStreak && t.level < problemgen.LevelHard:
		t.level++
	case rate <= t.cfg.DemoteRate && t.level > problemgen.LevelEasy:
		t.level--
	}

	if t.level == old {
		return false
	}
	t.recent = t.recent[:0]
	return true
}

// RecentRate returns the fraction of correct answers in the window, or 0 when
// the window is empty.
func (t *Tracker) RecentRate() float64 {
	if len(t.recent) == 0 {
		return 0
	}
	n := 0
	for _, r := range t.recent {
		if r {
			n++
		}
	}
	return float64(n) / float64(len(t.recent))
}

// Accuracy returns the lifetime accuracy as a rounded percentage.
func (t *Tracker) Accuracy() int {
	if t.totalAttempts == 0 {
		return 0
	}
	return int(math.Round(100 * float64(t.totalCorrect) / float64(t.totalAttempts)))
}

// ResetStage forgets per-stage state: the current combo and the served
// problem memory. Level and accuracy carry over.
func (t *Tracker) ResetStage() {
	t.consecutive = 0
	if t.memory != nil {
		t.memory.Clear()
	}
}

// ResetAll returns the tracker to a new-game state.
func (t *Tracker) ResetAll() {
	t.level = problemgen.LevelEasy
	t.totalCorrect = 0
	t.totalAttempts = 0
	t.consecutive = 0
	t.maxCombo = 0
	t.recent = t.recent[:0]
	if t.memory != nil {
		t.memory.Clear()
	}
}

// State returns the persistent statistics.
func (t *Tracker) State() State {
	return State{
		Level:         t.level,
		TotalCorrect:  t.totalCorrect,
		TotalAttempts: t.totalAttempts,
		MaxCombo:      t.maxCombo,
	}
}

// Restore loads persisted statistics. The rolling window and combo start
// empty.
func (t *Tracker) Restore(s State) {
	t.level = s.Level.Clamp()
	t.totalCorrect = max(s.TotalCorrect, 0)
	t.totalAttempts = max(s.TotalAttempts, t.totalCorrect)
	t.maxCombo = max(s.MaxCombo, 0)
	t.consecutive = 0
	t.recent = t.recent[:0]
}

func (t *Tracker) Level() problemgen.Level { return t.level }
func (t *Tracker) Combo() int              { return t.consecutive }
func (t *Tracker) MaxCombo() int           { return t.maxCombo }
func (t *Tracker) TotalCorrect() int       { return t.totalCorrect }
func (t *Tracker) TotalAttempts() int      { return t.totalAttempts }

// RecentResults returns a copy of the rolling window, oldest first.
func (t *Tracker) RecentResults() []bool {
	out := make([]bool, len(t.recent))
	copy(out, t.recent)
	return out
}
