// Package battle runs one monster encounter at a time: HP bookkeeping, the
// per-turn countdown, damage and score, and victory or defeat detection.
//
// The Engine is passive and single-threaded. The caller drives it with
// Input, Delete, Submit and Tick, then schedules Advance or Conclude after
// the RevealDelay carried by each Resolution. Every scheduled call carries a
// turn token; tokens from a finished turn or an earlier battle are ignored.
package battle

import (
	"fmt"
	"time"

	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/difficulty"
	"github.com/abhisek/numcraft/internal/problemgen"
)

// Engine is the battle state machine. It is not safe for concurrent use.
type Engine struct {
	cfg      Config
	stages   StageCatalog
	gen      *problemgen.Generator
	tracker  *difficulty.Tracker
	bonus    AttackBonusProvider
	observer Observer
	clock    func() time.Time

	phase      Phase
	turn       uint64
	active     bool
	processing bool

	stage        int
	monster      catalog.Monster
	monsterHP    int
	playerHP     int
	playerMax    int
	score        int
	levelChanged bool

	problem   problemgen.Problem
	input     string
	countdown Countdown

	pending   *Result
	concluded bool
}

// Option customises an Engine.
type Option func(*Engine)

// WithConfig replaces the combat constants.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithClock replaces time.Now as the engine's clock.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithObserver registers the end-of-battle observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithAttackBonus injects the source of equipment and food attack bonuses.
func WithAttackBonus(p AttackBonusProvider) Option {
	return func(e *Engine) { e.bonus = p }
}

// New creates an idle Engine. The tracker must have been built around gen's
// used-pair memory so stage resets clear it.
func New(stages StageCatalog, gen *problemgen.Generator, tracker *difficulty.Tracker, opts ...Option) *Engine {
	e := &Engine{
		cfg:     DefaultConfig(),
		stages:  stages,
		gen:     gen,
		tracker: tracker,
		bonus:   NoBonus{},
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bonus == nil {
		e.bonus = NoBonus{}
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	return e
}

// Start begins a battle at stage with the player at full HP. Any turn of a
// previous battle is abandoned without notifying the observer. The score
// carries over; callers reset it with SetScore.
func (e *Engine) Start(stage, playerMaxHP int) error {
	if stage < 0 {
		return fmt.Errorf("start battle at stage %d: %w", stage, ErrInvalidStage)
	}
	if playerMaxHP < 1 {
		playerMaxHP = 1
	}

	e.countdown.Stop(e.clock())

	e.stage = stage
	e.monster = e.stages.Monster(stage)
	e.monsterHP = e.monster.HP
	e.playerMax = playerMaxHP
	e.playerHP = playerMaxHP
	e.active = true
	e.processing = false
	e.levelChanged = false
	e.pending = nil
	e.concluded = false

	e.tracker.ResetStage()
	e.nextProblem()
	return nil
}

// nextProblem presents a fresh problem and restarts the countdown.
func (e *Engine) nextProblem() {
	e.turn++
	e.problem = e.gen.Generate(e.tracker.Level())
	e.input = ""
	e.phase = PhaseAwaitingAnswer
	e.countdown.Start(e.clock(), e.stages.TimerDuration(e.stage))
}

// Input appends digit to the answer buffer. It returns false when the digit
// was ignored: not a digit, buffer full, battle inactive, or a turn being
// resolved.
func (e *Engine) Input(digit rune) bool {
	if !e.accepting() || digit < '0' || digit > '9' {
		return false
	}
	if len(e.input) >= e.cfg.MaxInputLen {
		return false
	}
	e.input += string(digit)
	return true
}

// Delete removes the last digit of the answer buffer.
func (e *Engine) Delete() bool {
	if !e.accepting() || e.input == "" {
		return false
	}
	e.input = e.input[:len(e.input)-1]
	return true
}

func (e *Engine) accepting() bool {
	return e.active && !e.processing
}

// Submit resolves the turn with the current buffer. It returns false, and
// changes nothing, when the buffer is empty, the battle is inactive, or the
// turn is already resolved.
func (e *Engine) Submit() (Resolution, bool) {
	if !e.accepting() || e.input == "" {
		return Resolution{}, false
	}
	now := e.clock()
	if e.countdown.Expired(now) {
		// The deadline passed before this submission arrived.
		return e.resolve(now, KindTimeout), true
	}
	if problemgen.CheckAnswer(e.input, e.problem) {
		return e.resolve(now, KindCorrect), true
	}
	return e.resolve(now, KindIncorrect), true
}

// Tick samples the countdown for turn at now. When the deadline has passed
// it resolves the turn as a timeout. Ticks for any other turn, and ticks
// while a resolution is pending, are ignored.
func (e *Engine) Tick(turn uint64, now time.Time) (Resolution, bool) {
	if !e.accepting() || turn != e.turn {
		return Resolution{}, false
	}
	if !e.countdown.Expired(now) {
		return Resolution{}, false
	}
	return e.resolve(now, KindTimeout), true
}

// resolve owns the turn from here on: the processing flag is set before any
// state changes so no other entry point can resolve it again.
func (e *Engine) resolve(now time.Time, kind Kind) Resolution {
	e.processing = true
	e.phase = PhaseResolving
	e.countdown.Stop(now)

	res := Resolution{
		Turn:    e.turn,
		Kind:    kind,
		Problem: e.problem,
		Asked:   e.tracker.Level(),
		Elapsed: e.countdown.Elapsed(now),
	}
	if kind != KindTimeout {
		res.Given = e.input
	}

	if kind == KindCorrect {
		e.resolveHit(&res)
	} else {
		e.resolveMiss(&res)
	}
	return res
}

func (e *Engine) resolveHit(res *Resolution) {
	out := e.tracker.RecordAnswer(true)
	e.levelChanged = e.levelChanged || out.LevelChanged

	res.Combo = out.Combo
	res.Level = out.NewLevel
	res.LevelChanged = out.LevelChanged
	res.Damage = e.cfg.BaseAttack + e.bonus.EquipmentAttack() + e.bonus.FoodAttack() + out.Combo*e.cfg.ComboBonus
	res.ScoreGained = TurnScore(out.NewLevel, out.Combo)
	e.score += res.ScoreGained

	e.monsterHP = max(0, e.monsterHP-res.Damage)
	if e.monsterHP == 0 {
		e.finish(PhaseVictory, res)
		return
	}
	res.Outcome = OutcomeContinue
	res.RevealDelay = e.cfg.CorrectDelay
}

func (e *Engine) resolveMiss(res *Resolution) {
	out := e.tracker.RecordAnswer(false)
	e.levelChanged = e.levelChanged || out.LevelChanged

	res.Combo = out.Combo
	res.Level = out.NewLevel
	res.LevelChanged = out.LevelChanged
	res.Damage = e.monster.Attack

	e.playerHP = max(0, e.playerHP-res.Damage)
	if e.playerHP == 0 {
		e.finish(PhaseDefeat, res)
		return
	}
	res.Outcome = OutcomeContinue
	res.RevealDelay = e.cfg.WrongDelay
}

// finish marks the battle decided and stages the result for Conclude.
func (e *Engine) finish(phase Phase, res *Resolution) {
	e.phase = phase
	e.active = false

	result := e.snapshotResult(phase == PhaseVictory)
	e.pending = &result

	res.RevealDelay = e.cfg.EndDelay
	if phase == PhaseVictory {
		res.Outcome = OutcomeVictory
	} else {
		res.Outcome = OutcomeDefeat
	}
}

func (e *Engine) snapshotResult(victory bool) Result {
	return Result{
		Stage:        e.stage,
		Victory:      victory,
		Score:        e.score,
		Accuracy:     e.tracker.Accuracy(),
		MaxCombo:     e.tracker.MaxCombo(),
		Level:        e.tracker.Level(),
		LevelChanged: e.levelChanged,
	}
}

// Advance moves past a resolved, non-terminal turn and presents the next
// problem. It returns false if turn is stale or nothing is pending.
func (e *Engine) Advance(turn uint64) bool {
	if !e.active || e.phase != PhaseResolving || turn != e.turn {
		return false
	}
	e.processing = false
	e.nextProblem()
	return true
}

// Conclude delivers the decided battle's result to the observer. It fires at
// most once per battle and returns false when there is nothing to deliver.
func (e *Engine) Conclude() (Result, bool) {
	if e.pending == nil || e.concluded {
		return Result{}, false
	}
	e.concluded = true
	result := *e.pending

	if e.observer != nil {
		if result.Victory {
			e.observer.OnVictory(result)
		} else {
			e.observer.OnDefeat(result)
		}
	}
	return result, true
}

// Quit abandons an undecided battle: the countdown stops, the battle goes
// inactive, and the observer is never called. Quitting a decided battle does
// nothing. It reports whether a battle was abandoned.
func (e *Engine) Quit() bool {
	if !e.active {
		return false
	}
	e.countdown.Stop(e.clock())
	e.active = false
	e.processing = false
	e.phase = PhaseIdle
	// Invalidate any scheduled tick or advance for the abandoned turn.
	e.turn++
	return true
}

// SetScore replaces the running score, e.g. zero at the start of a run or a
// retry penalty.
func (e *Engine) SetScore(score int) {
	e.score = max(score, 0)
}

// TurnScore is the score for a correct answer at level with combo stacks:
// floor((100 + 50*level) * (1 + 0.2*(combo-1))).
func TurnScore(level problemgen.Level, combo int) int {
	base := 100 + 50*int(level)
	// base is a multiple of 50, so the division is exact.
	return base * (8 + 2*combo) / 10
}

// State returns a snapshot for rendering.
func (e *Engine) State() State {
	now := e.clock()
	return State{
		Phase:      e.phase,
		Turn:       e.turn,
		Stage:      e.stage,
		Monster:    e.monster,
		MonsterHP:  e.monsterHP,
		MonsterMax: e.monster.HP,
		PlayerHP:   e.playerHP,
		PlayerMax:  e.playerMax,
		Score:      e.score,
		Combo:      e.tracker.Combo(),
		Level:      e.tracker.Level(),
		Problem:    e.problem,
		Input:      e.input,
		Remaining:  e.countdown.Remaining(now),
		TimeLimit:  e.countdown.Duration(),
		Danger:     e.countdown.Running() && e.countdown.Danger(now),
		Active:     e.active,
		Processing: e.processing,
	}
}

func (e *Engine) Phase() Phase                 { return e.phase }
func (e *Engine) Turn() uint64                 { return e.turn }
func (e *Engine) Active() bool                 { return e.active }
func (e *Engine) Processing() bool             { return e.processing }
func (e *Engine) Score() int                   { return e.score }
func (e *Engine) Stage() int                   { return e.stage }
func (e *Engine) Problem() problemgen.Problem  { return e.problem }
func (e *Engine) Buffer() string               { return e.input }
func (e *Engine) Tracker() *difficulty.Tracker { return e.tracker }

// Remaining returns the time left on the current turn.
func (e *Engine) Remaining() time.Duration {
	return e.countdown.Remaining(e.clock())
}
