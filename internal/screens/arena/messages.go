package arena

import (
	"time"

	"github.com/abhisek/numcraft/internal/coach"
)

// tickMsg samples the countdown of one turn.
type tickMsg struct {
	Turn uint64
	At   time.Time
}

// revealDoneMsg ends the pause after a non-final turn.
type revealDoneMsg struct {
	Turn uint64
}

// concludeMsg ends the pause after the deciding turn.
type concludeMsg struct{}

// noteMsg carries the coach note for the result screen.
type noteMsg struct {
	Note coach.Note
}
