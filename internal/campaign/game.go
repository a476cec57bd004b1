// Package campaign strings battles into a run: stage progression, score
// banking, loot, and the crafting inventory that feeds the next battle.
package campaign

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/difficulty"
	"github.com/abhisek/numcraft/internal/problemgen"
)

// RetryPenalty is deducted from the battle score when a lost stage is
// retried.
const RetryPenalty = 200

// ErrStageLocked is returned when selecting a stage past the furthest one
// unlocked.
var ErrStageLocked = errors.New("stage locked")

// Run is the progress of one playthrough.
type Run struct {
	ID         string `json:"id"`
	Stage      int    `json:"stage"`
	BestStage  int    `json:"best_stage"` // stages cleared
	TotalScore int    `json:"total_score"`
	Battles    int    `json:"battles"`
	Victories  int    `json:"victories"`
}

// Report describes the battle that just ended.
type Report struct {
	BattleID string
	Result   battle.Result
	Loot     Loot
	Banked   int // score added to the run total
	Run      Run
}

// Snapshot is the persisted state of a Game.
type Snapshot struct {
	Run       Run              `json:"run"`
	Tracker   difficulty.State `json:"tracker"`
	Inventory InventoryState   `json:"inventory"`
}

// Game owns the battle engine and everything that outlives a battle. It is
// not safe for concurrent use.
type Game struct {
	cat     *catalog.Catalog
	src     problemgen.Source
	gen     *problemgen.Generator
	tracker *difficulty.Tracker
	inv     *Inventory
	engine  *battle.Engine

	run      Run
	battleID string
	report   *Report
}

// New creates a Game over cat. src drives both problem generation and loot
// rolls. opts are passed through to the battle engine; the observer and
// attack bonus options are set by the Game.
func New(cat *catalog.Catalog, src problemgen.Source, opts ...battle.Option) *Game {
	if src == nil {
		src = problemgen.NewSource(rand.Uint64())
	}
	g := &Game{cat: cat, src: src}
	g.gen = problemgen.New(src, problemgen.DefaultConfig())
	g.tracker = difficulty.New(difficulty.DefaultConfig(), g.gen.Used())
	g.inv = NewInventory(cat)

	all := append([]battle.Option{}, opts...)
	all = append(all, battle.WithObserver(g), battle.WithAttackBonus(g.inv))
	g.engine = battle.New(cat, g.gen, g.tracker, all...)

	g.run = Run{ID: uuid.NewString()}
	return g
}

// NewRun abandons any battle and starts over from stage 0 with an empty
// inventory and a fresh difficulty tracker.
func (g *Game) NewRun() {
	g.engine.Quit()
	g.tracker.ResetAll()
	g.inv.Reset()
	g.engine.SetScore(0)
	g.run = Run{ID: uuid.NewString()}
	g.report = nil
}

// StartBattle begins the battle at the current stage with a zero score.
func (g *Game) StartBattle() error {
	return g.launch(0)
}

// Retry restarts the current stage, keeping the last battle's score less
// RetryPenalty.
func (g *Game) Retry() error {
	return g.launch(max(0, g.engine.Score()-RetryPenalty))
}

func (g *Game) launch(score int) error {
	maxHP := g.inv.BeginBattle()
	g.engine.SetScore(score)
	if err := g.engine.Start(g.run.Stage, maxHP); err != nil {
		return fmt.Errorf("launch battle: %w", err)
	}
	g.battleID = uuid.NewString()
	g.report = nil
	g.run.Battles++
	return nil
}

// SelectStage moves the run to stage. Any stage up to the first uncleared
// one may be chosen.
func (g *Game) SelectStage(stage int) error {
	if stage < 0 {
		return fmt.Errorf("select stage %d: %w", stage, battle.ErrInvalidStage)
	}
	if stage > g.run.BestStage {
		return fmt.Errorf("select stage %d: %w", stage, ErrStageLocked)
	}
	g.run.Stage = stage
	return nil
}

// OnVictory banks the score, advances the stage and rolls loot.
func (g *Game) OnVictory(res battle.Result) {
	g.run.TotalScore += res.Score
	g.run.Victories++
	g.run.BestStage = max(g.run.BestStage, res.Stage+1)
	g.run.Stage = res.Stage + 1

	loot := RollLoot(g.src, res.Stage)
	g.inv.AddLoot(loot)
	g.report = &Report{BattleID: g.battleID, Result: res, Loot: loot, Banked: res.Score, Run: g.run}
}

// OnDefeat banks half the score.
func (g *Game) OnDefeat(res battle.Result) {
	banked := res.Score / 2
	g.run.TotalScore += banked
	g.report = &Report{BattleID: g.battleID, Result: res, Banked: banked, Run: g.run}
}

// LastReport returns the report of the most recently concluded battle.
func (g *Game) LastReport() (Report, bool) {
	if g.report == nil {
		return Report{}, false
	}
	return *g.report, true
}

// Snapshot captures the persistent state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Run:       g.run,
		Tracker:   g.tracker.State(),
		Inventory: g.inv.State(),
	}
}

// Restore loads a snapshot. Any battle in progress is abandoned.
func (g *Game) Restore(s Snapshot) {
	g.engine.Quit()
	g.run = s.Run
	if g.run.ID == "" {
		g.run.ID = uuid.NewString()
	}
	g.run.Stage = max(g.run.Stage, 0)
	g.run.BestStage = max(g.run.BestStage, g.run.Stage)
	g.tracker.Restore(s.Tracker)
	g.inv.Restore(s.Inventory)
	g.report = nil
}

func (g *Game) Engine() *battle.Engine           { return g.engine }
func (g *Game) Inventory() *Inventory            { return g.inv }
func (g *Game) Catalog() *catalog.Catalog        { return g.cat }
func (g *Game) Tracker() *difficulty.Tracker     { return g.tracker }
func (g *Game) Run() Run                         { return g.run }
func (g *Game) BattleID() string                 { return g.battleID }
func (g *Game) Generator() *problemgen.Generator { return g.gen }
