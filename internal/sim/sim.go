// Package sim plays battles without a terminal: a synthetic player with a
// fixed accuracy and answer latency drives the engine against a fake clock.
package sim

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/campaign"
	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/problemgen"
	"github.com/abhisek/numcraft/internal/session"
)

// maxTurns bounds a single battle.
const maxTurns = 1000

// ErrRunaway is returned when a battle does not end within maxTurns.
var ErrRunaway = errors.New("battle did not end")

// Clock is a manually advanced clock. Pass Now to battle.WithClock.
type Clock struct {
	now time.Time
}

// NewClock returns a clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Player describes the synthetic player.
type Player struct {
	Accuracy  float64       // chance of a correct answer, 0..1
	Latency   time.Duration // mean time to answer
	Jitter    time.Duration // latency varies uniformly by ± Jitter
	AutoCraft bool          // craft better gear whenever it is affordable
	Retry     bool          // retry a lost stage instead of starting it fresh
}

// BattleReport is one simulated battle.
type BattleReport struct {
	Number   int
	Stage    int
	Monster  string
	Victory  bool
	Score    int
	Banked   int
	Accuracy int
	Turns    int
	Timeouts int
	Level    problemgen.Level
	Changed  bool
	Loot     campaign.Loot
	Crafted  []string
	Mistakes diagnosis.Tally
}

// Summary totals a simulation.
type Summary struct {
	Battles   int
	Victories int
	Turns     int
	Correct   int
	Timeouts  int
	BestStage int
	Total     int
	Mistakes  diagnosis.Tally
}

// Simulator plays battles on a session.
type Simulator struct {
	sess   *session.Session
	clock  *Clock
	src    problemgen.Source
	player Player
}

// New creates a Simulator. clock must be the clock the session's engine
// reads; src drives the player's decisions.
func New(sess *session.Session, clock *Clock, src problemgen.Source, player Player) *Simulator {
	return &Simulator{sess: sess, clock: clock, src: src, player: player}
}

// Run plays n battles, calling onBattle after each.
func (s *Simulator) Run(ctx context.Context, n int, onBattle func(BattleReport)) (Summary, error) {
	sum := Summary{Mistakes: diagnosis.Tally{}}
	lost := false
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		rep, err := s.Battle(ctx, lost)
		if err != nil {
			return sum, fmt.Errorf("battle %d: %w", i, err)
		}
		rep.Number = i
		lost = !rep.Victory

		sum.Battles++
		sum.Turns += rep.Turns
		sum.Timeouts += rep.Timeouts
		sum.Correct += rep.Turns - rep.Mistakes.Total()
		if rep.Victory {
			sum.Victories++
		}
		for c, k := range rep.Mistakes {
			sum.Mistakes[c] += k
		}
		if onBattle != nil {
			onBattle(rep)
		}
	}
	run := s.sess.Game().Run()
	sum.BestStage = run.BestStage
	sum.Total = run.TotalScore
	return sum, nil
}

// Battle plays one battle at the current stage. After a defeat, retry
// applies the retry penalty when the player is configured to retry.
func (s *Simulator) Battle(ctx context.Context, retry bool) (BattleReport, error) {
	var err error
	if retry && s.player.Retry {
		err = s.sess.Retry()
	} else {
		err = s.sess.StartBattle()
	}
	if err != nil {
		return BattleReport{}, err
	}

	e := s.sess.Game().Engine()
	rep := BattleReport{Stage: e.Stage()}
	for rep.Turns < maxTurns {
		res := s.turn(e)
		rep.Turns++
		if res.Kind == battle.KindTimeout {
			rep.Timeouts++
		}
		s.sess.RecordTurn(ctx, res, nil)
		s.clock.Advance(res.RevealDelay)

		if res.Outcome == battle.OutcomeContinue {
			e.Advance(res.Turn)
			continue
		}

		report, ok := s.sess.Conclude(ctx)
		if !ok {
			return rep, fmt.Errorf("conclude stage %d: no result", rep.Stage)
		}
		rep.Monster = s.sess.Game().Catalog().Monster(rep.Stage).Name
		rep.Victory = report.Result.Victory
		rep.Score = report.Result.Score
		rep.Banked = report.Banked
		rep.Accuracy = report.Result.Accuracy
		rep.Level = report.Result.Level
		rep.Changed = report.Result.LevelChanged
		rep.Loot = report.Loot
		rep.Mistakes = s.sess.Mistakes()
		if s.player.AutoCraft {
			rep.Crafted = s.craft()
		}
		return rep, nil
	}

	s.sess.Quit()
	return rep, fmt.Errorf("stage %d after %d turns: %w", rep.Stage, rep.Turns, ErrRunaway)
}

// turn waits out the player's latency and answers, or lets the countdown
// expire when the player is too slow.
func (s *Simulator) turn(e *battle.Engine) battle.Resolution {
	limit := s.sess.Game().Catalog().TimerDuration(e.Stage())
	latency := s.latency()
	if latency >= limit {
		s.clock.Advance(limit)
		if res, ok := e.Tick(e.Turn(), s.clock.Now()); ok {
			return res
		}
	} else {
		s.clock.Advance(latency)
	}

	for _, r := range s.answer(e.Problem()) {
		e.Input(r)
	}
	res, _ := e.Submit()
	return res
}

func (s *Simulator) latency() time.Duration {
	d := s.player.Latency
	if j := s.player.Jitter; j > 0 {
		d += time.Duration(s.src.IntN(int(2*j)+1)) - j
	}
	return max(d, 0)
}

// answer returns the player's typed answer. Misses imitate common slips.
func (s *Simulator) answer(p problemgen.Problem) string {
	if float64(s.src.IntN(1000)) < s.player.Accuracy*1000 {
		return strconv.Itoa(p.Answer)
	}
	candidates := []int{p.Answer + 1, p.A + p.B, p.Answer + 10}
	if p.Answer > 0 {
		candidates = append(candidates, p.Answer-1)
	}
	if p.NeedsBorrow() {
		candidates = append(candidates, forgotBorrow(p))
	}
	for {
		if c := candidates[s.src.IntN(len(candidates))]; c != p.Answer {
			return strconv.Itoa(c)
		}
	}
}

// forgotBorrow subtracts each column's smaller digit from the larger.
func forgotBorrow(p problemgen.Problem) int {
	tens := p.A/10 - p.B/10
	ones := p.A%10 - p.B%10
	if ones < 0 {
		ones = -ones
	}
	return max(tens, 0)*10 + ones
}

// craft buys every weapon and armor that beats what is equipped.
func (s *Simulator) craft() []string {
	inv := s.sess.Game().Inventory()
	var made []string
	for _, kind := range []catalog.RecipeKind{catalog.KindWeapon, catalog.KindArmor} {
		for _, r := range s.sess.Game().Catalog().RecipesOfKind(kind) {
			if !inv.CanAfford(r) || !better(inv, r) {
				continue
			}
			if equipped, err := inv.Craft(r.ID); err == nil && equipped {
				made = append(made, r.Name)
			}
		}
	}
	return made
}

func better(inv *campaign.Inventory, r catalog.Recipe) bool {
	switch r.Kind {
	case catalog.KindWeapon:
		w, ok := inv.Weapon()
		return !ok || r.Attack > w.Attack
	case catalog.KindArmor:
		a, ok := inv.Armor()
		return !ok || r.HP > a.HP
	}
	return false
}
