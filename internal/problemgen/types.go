package problemgen

import "fmt"

// Level is a difficulty tier governing the operand ranges of generated
// problems. Valid levels are 1 through 3.
type Level int

const (
	LevelEasy   Level = 1
	LevelMedium Level = 2
	LevelHard   Level = 3
)

// AllLevels returns the levels in ascending order.
func AllLevels() []Level {
	return []Level{LevelEasy, LevelMedium, LevelHard}
}

// Clamp returns l forced into [LevelEasy, LevelHard].
func (l Level) Clamp() Level {
	switch {
	case l < LevelEasy:
		return LevelEasy
	case l > LevelHard:
		return LevelHard
	default:
		return l
	}
}

// Name returns a human-readable label for the level.
func (l Level) Name() string {
	switch l.Clamp() {
	case LevelMedium:
		return "Medium"
	case LevelHard:
		return "Hard"
	default:
		return "Easy"
	}
}

// Icon returns the display icon for the level.
func (l Level) Icon() string {
	switch l.Clamp() {
	case LevelMedium:
		return "⚡"
	case LevelHard:
		return "🔥"
	default:
		return "🌱"
	}
}

// Problem is a single subtraction fact. Answer is always A - B and B < A.
type Problem struct {
	A      int
	B      int
	Answer int
}

// Key identifies the (A, B) pair for repeat avoidance, e.g. "13-6".
func (p Problem) Key() string {
	return fmt.Sprintf("%d-%d", p.A, p.B)
}

// Text renders the problem as it is shown to the player.
func (p Problem) Text() string {
	return fmt.Sprintf("%d - %d = ?", p.A, p.B)
}

// NeedsBorrow reports whether the ones digit of A is smaller than the ones
// digit of B, i.e. column subtraction has to regroup.
func (p Problem) NeedsBorrow() bool {
	return p.A%10 < p.B%10
}
