package battle

import (
	"errors"
	"time"

	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/problemgen"
)

// ErrInvalidStage is returned by Start for a negative stage index.
var ErrInvalidStage = errors.New("invalid stage")

// Phase is the engine's position in the turn cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingAnswer
	PhaseResolving
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseResolving:
		return "resolving"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "idle"
	}
}

// Terminal reports whether the battle has been decided.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Kind tags how a turn was resolved.
type Kind int

const (
	KindCorrect Kind = iota
	KindIncorrect
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindCorrect:
		return "correct"
	case KindTimeout:
		return "timeout"
	default:
		return "incorrect"
	}
}

// Outcome says what a resolved turn means for the battle.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "continue"
	}
}

// Resolution describes one resolved turn. Callers switch on Outcome: on
// OutcomeContinue they call Advance(Turn) after RevealDelay, otherwise they
// call Conclude after RevealDelay.
type Resolution struct {
	Turn    uint64
	Kind    Kind
	Outcome Outcome

	Problem problemgen.Problem
	Asked   problemgen.Level // level the problem was generated at
	Given   string           // input buffer at resolution, empty on timeout
	Elapsed time.Duration    // time from problem shown to resolution

	// Damage is dealt to the monster on a correct answer and to the player
	// otherwise.
	Damage      int
	ScoreGained int
	Combo       int

	LevelChanged bool
	Level        problemgen.Level

	RevealDelay time.Duration
}

// Correct reports whether the turn was answered correctly.
func (r Resolution) Correct() bool {
	return r.Kind == KindCorrect
}

// Result is the payload handed to the Observer when a battle ends.
type Result struct {
	Stage        int
	Victory      bool
	Score        int
	Accuracy     int
	MaxCombo     int
	Level        problemgen.Level
	LevelChanged bool
}

// Observer receives the end of a battle. Exactly one method is called,
// once, per battle that reaches a terminal state. Quitting calls neither.
type Observer interface {
	OnVictory(Result)
	OnDefeat(Result)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Victory func(Result)
	Defeat  func(Result)
}

func (o ObserverFuncs) OnVictory(r Result) {
	if o.Victory != nil {
		o.Victory(r)
	}
}

func (o ObserverFuncs) OnDefeat(r Result) {
	if o.Defeat != nil {
		o.Defeat(r)
	}
}

// AttackBonusProvider supplies the player's attack bonuses at the moment a
// hit lands.
type AttackBonusProvider interface {
	EquipmentAttack() int
	FoodAttack() int
}

// NoBonus is an AttackBonusProvider with no gear and no food.
type NoBonus struct{}

func (NoBonus) EquipmentAttack() int { return 0 }
func (NoBonus) FoodAttack() int      { return 0 }

// StageCatalog is the read-only stage data the engine needs.
// *catalog.Catalog satisfies it.
type StageCatalog interface {
	Monster(stage int) catalog.Monster
	TimerDuration(stage int) time.Duration
}

// Config holds the combat constants.
type Config struct {
	BaseAttack   int
	ComboBonus   int // extra damage per combo stack
	MaxInputLen  int
	CorrectDelay time.Duration
	WrongDelay   time.Duration
	EndDelay     time.Duration
}

// DefaultConfig returns the standard combat constants.
func DefaultConfig() Config {
	return Config{
		BaseAttack:   10,
		ComboBonus:   2,
		MaxInputLen:  3,
		CorrectDelay: 1000 * time.Millisecond,
		WrongDelay:   1200 * time.Millisecond,
		EndDelay:     1500 * time.Millisecond,
	}
}

// State is a read-only snapshot of the battle for renderers.
type State struct {
	Phase      Phase
	Turn       uint64
	Stage      int
	Monster    catalog.Monster
	MonsterHP  int
	MonsterMax int
	PlayerHP   int
	PlayerMax  int
	Score      int
	Combo      int
	Level      problemgen.Level
	Problem    problemgen.Problem
	Input      string
	Remaining  time.Duration
	TimeLimit  time.Duration
	Danger     bool
	Active     bool
	Processing bool
}
