package battle

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/difficulty"
	"github.com/abhisek/numcraft/internal/problemgen"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recorder struct {
	victories []Result
	defeats   []Result
}

func (r *recorder) OnVictory(res Result) { r.victories = append(r.victories, res) }
func (r *recorder) OnDefeat(res Result)  { r.defeats = append(r.defeats, res) }
func (r *recorder) total() int           { return len(r.victories) + len(r.defeats) }

type fakeBonus struct{ equip, food int }

func (f fakeBonus) EquipmentAttack() int { return f.equip }
func (f fakeBonus) FoodAttack() int      { return f.food }

// fixedStages serves one monster for every stage.
type fixedStages struct {
	monster catalog.Monster
	limit   time.Duration
}

func (f fixedStages) Monster(int) catalog.Monster     { return f.monster }
func (f fixedStages) TimerDuration(int) time.Duration { return f.limit }

func newTestEngine(t *testing.T, stages StageCatalog, seed uint64, opts ...Option) (*Engine, *fakeClock, *recorder) {
	t.Helper()
	clk := newFakeClock()
	rec := &recorder{}
	gen := problemgen.New(problemgen.NewSource(seed), problemgen.DefaultConfig())
	tracker := difficulty.New(difficulty.DefaultConfig(), gen.Used())
	all := append([]Option{WithClock(clk.Now), WithObserver(rec)}, opts...)
	return New(stages, gen, tracker, all...), clk, rec
}

func typeAnswer(e *Engine, n int) {
	for _, r := range strconv.Itoa(n) {
		e.Input(r)
	}
}

func answerCorrect(t *testing.T, e *Engine) Resolution {
	t.Helper()
	typeAnswer(e, e.Problem().Answer)
	res, ok := e.Submit()
	require.True(t, ok, "submit should resolve the turn")
	return res
}

func answerWrong(t *testing.T, e *Engine) Resolution {
	t.Helper()
	typeAnswer(e, e.Problem().Answer+1)
	res, ok := e.Submit()
	require.True(t, ok, "submit should resolve the turn")
	return res
}

func TestStartRejectsNegativeStage(t *testing.T) {
	e, _, _ := newTestEngine(t, catalog.Default(), 1)
	err := e.Start(-1, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStage))
	assert.False(t, e.Active())
}

func TestStartPresentsFirstProblem(t *testing.T) {
	e, _, _ := newTestEngine(t, catalog.Default(), 1)
	require.NoError(t, e.Start(0, 115))

	s := e.State()
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase)
	assert.True(t, s.Active)
	assert.False(t, s.Processing)
	assert.Equal(t, "Slime", s.Monster.Name)
	assert.Equal(t, 30, s.MonsterHP)
	assert.Equal(t, 30, s.MonsterMax)
	assert.Equal(t, 115, s.PlayerHP)
	assert.Equal(t, 115, s.PlayerMax)
	assert.Equal(t, 15*time.Second, s.TimeLimit)
	assert.Equal(t, 15*time.Second, s.Remaining)
	assert.Equal(t, s.Problem.A-s.Problem.B, s.Problem.Answer)
	assert.Empty(t, s.Input)
}

func TestThreeHitsDefeatSlime(t *testing.T) {
	e, _, rec := newTestEngine(t, catalog.Default(), 2)
	require.NoError(t, e.Start(0, 100))

	wantDamage := []int{12, 14, 16}
	wantHP := []int{18, 4, 0}
	for i := range wantDamage {
		res := answerCorrect(t, e)
		assert.Equal(t, KindCorrect, res.Kind)
		assert.Equal(t, i+1, res.Combo)
		assert.Equal(t, wantDamage[i], res.Damage, "hit %d", i+1)
		assert.Equal(t, wantHP[i], e.State().MonsterHP, "hit %d", i+1)

		if i < 2 {
			assert.Equal(t, OutcomeContinue, res.Outcome)
			assert.Equal(t, time.Second, res.RevealDelay)
			assert.Equal(t, 0, rec.total(), "no result before the monster falls")
			require.True(t, e.Advance(res.Turn))
			continue
		}
		assert.Equal(t, OutcomeVictory, res.Outcome)
		assert.Equal(t, 1500*time.Millisecond, res.RevealDelay)
	}

	assert.Equal(t, PhaseVictory, e.Phase())
	assert.False(t, e.Active())
	assert.Equal(t, 0, rec.total(), "observer waits for Conclude")

	result, ok := e.Conclude()
	require.True(t, ok)
	require.Len(t, rec.victories, 1)
	assert.Empty(t, rec.defeats)
	assert.Equal(t, result, rec.victories[0])
	assert.Equal(t, 0, result.Stage)
	assert.Equal(t, 150+180+210, result.Score)
	assert.Equal(t, 100, result.Accuracy)
	assert.Equal(t, 3, result.MaxCombo)
	assert.Equal(t, problemgen.LevelEasy, result.Level)
	assert.True(t, result.Victory)

	_, ok = e.Conclude()
	assert.False(t, ok, "conclusion fires once")
	assert.Len(t, rec.victories, 1)
}

func TestEightMissesDefeatPlayer(t *testing.T) {
	stages := fixedStages{
		monster: catalog.Monster{Name: "Zombie", HP: 60, Attack: 14, Boss: true},
		limit:   15 * time.Second,
	}
	e, _, rec := newTestEngine(t, stages, 3)
	require.NoError(t, e.Start(2, 100))

	for i := 1; i <= 8; i++ {
		res := answerWrong(t, e)
		assert.Equal(t, KindIncorrect, res.Kind)
		assert.Equal(t, 14, res.Damage)
		assert.Equal(t, 0, res.Combo)

		if i < 8 {
			assert.Equal(t, OutcomeContinue, res.Outcome, "miss %d", i)
			assert.Equal(t, 100-14*i, e.State().PlayerHP)
			assert.Equal(t, 1200*time.Millisecond, res.RevealDelay)
			require.True(t, e.Advance(res.Turn))
			continue
		}
		assert.Equal(t, OutcomeDefeat, res.Outcome)
		assert.Equal(t, 0, e.State().PlayerHP, "hp clamps at zero")
	}

	_, ok := e.Conclude()
	require.True(t, ok)
	require.Len(t, rec.defeats, 1)
	assert.Empty(t, rec.victories)
	assert.Equal(t, 0, rec.defeats[0].Accuracy)
	assert.False(t, rec.defeats[0].Victory)
}

func TestDamageIncludesAttackBonuses(t *testing.T) {
	e, _, _ := newTestEngine(t, catalog.Default(), 4, WithAttackBonus(fakeBonus{equip: 8, food: 3}))
	require.NoError(t, e.Start(3, 100))

	res := answerCorrect(t, e)
	assert.Equal(t, 10+8+3+2, res.Damage)
	assert.Equal(t, 45-23, e.State().MonsterHP)
}

func TestTurnScore(t *testing.T) {
	tests := []struct {
		level problemgen.Level
		combo int
		want  int
	}{
		{problemgen.LevelEasy, 1, 150},
		{problemgen.LevelEasy, 2, 180},
		{problemgen.LevelEasy, 5, 240},
		{problemgen.LevelMedium, 1, 200},
		{problemgen.LevelMedium, 4, 320},
		{problemgen.LevelHard, 1, 250},
		{problemgen.LevelHard, 3, 350},
		{problemgen.LevelHard, 10, 700},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TurnScore(tt.level, tt.combo), "level %d combo %d", tt.level, tt.combo)
	}
}

func TestInputBuffer(t *testing.T) {
	e, _, _ := newTestEngine(t, catalog.Default(), 5)

	assert.False(t, e.Input('1'), "input before start is ignored")
	require.NoError(t, e.Start(0, 100))

	assert.False(t, e.Input('x'))
	assert.True(t, e.Input('1'))
	assert.True(t, e.Input('2'))
	assert.True(t, e.Input('3'))
	assert.False(t, e.Input('4'), "buffer holds three characters")
	assert.Equal(t, "123", e.Buffer())

	assert.True(t, e.Delete())
	assert.Equal(t, "12", e.Buffer())
	e.Delete()
	e.Delete()
	assert.False(t, e.Delete(), "delete on empty buffer")
}

func TestEmptySubmitIsNoop(t *testing.T) {
	e, _, _ := newTestEngine(t, catalog.Default(), 6)
	require.NoError(t, e.Start(0, 100))

	_, ok := e.Submit()
	assert.False(t, ok)
	assert.Equal(t, PhaseAwaitingAnswer, e.Phase())
	assert.False(t, e.Processing())
}

func TestInputIgnoredWhileResolving(t *testing.T) {
	e, _, _ := newTestEngine(t, catalog.Default(), 7)
	require.NoError(t, e.Start(0, 100))

	res := answerWrong(t, e)
	require.Equal(t, OutcomeContinue, res.Outcome)
	assert.True(t, e.Processing())

	assert.False(t, e.Input('5'))
	assert.False(t, e.Delete())
	_, ok := e.Submit()
	assert.False(t, ok, "second submit in the same turn")

	require.True(t, e.Advance(res.Turn))
	assert.False(t, e.Processing())
	assert.Empty(t, e.Buffer())
	assert.False(t, e.Advance(res.Turn), "advance token is single use")
}

func TestTimeoutMatchesIncorrectAnswer(t *testing.T) {
	build := func() (*Engine, *fakeClock) {
		e, clk, _ := newTestEngine(t, catalog.Default(), 8)
		require.NoError(t, e.Start(1, 100))
		// Build a combo first.
		for i := 0; i < 2; i++ {
			res := answerCorrect(t, e)
			require.True(t, e.Advance(res.Turn))
		}
		require.Equal(t, 2, e.Tracker().Combo())
		return e, clk
	}

	timedOut, clk := build()
	turn := timedOut.Turn()

	clk.Advance(14*time.Second + 900*time.Millisecond)
	_, ok := timedOut.Tick(turn, clk.Now())
	require.False(t, ok, "deadline not reached yet")

	clk.Advance(200 * time.Millisecond)
	timeout, ok := timedOut.Tick(turn, clk.Now())
	require.True(t, ok)
	assert.Equal(t, KindTimeout, timeout.Kind)
	assert.Equal(t, 15*time.Second, timeout.Elapsed)
	assert.Equal(t, time.Duration(0), timedOut.Remaining())

	wrongEngine, _ := build()
	wrong := answerWrong(t, wrongEngine)

	assert.Equal(t, wrong.Damage, timeout.Damage)
	assert.Equal(t, 0, timeout.Combo)
	assert.Equal(t, wrong.Combo, timeout.Combo)
	assert.Equal(t, wrong.RevealDelay, timeout.RevealDelay)
	assert.Equal(t, wrongEngine.State().PlayerHP, timedOut.State().PlayerHP)
	assert.Equal(t, wrongEngine.Tracker().TotalAttempts(), timedOut.Tracker().TotalAttempts())

	// Neither a late submit nor a second expiry can resolve the turn again.
	typeAnswer(timedOut, timedOut.Problem().Answer)
	_, ok = timedOut.Submit()
	assert.False(t, ok)
	_, ok = timedOut.Tick(turn, clk.Now().Add(time.Minute))
	assert.False(t, ok)
}

func TestSubmitAfterDeadlineResolvesAsTimeout(t *testing.T) {
	e, clk, _ := newTestEngine(t, catalog.Default(), 9)
	require.NoError(t, e.Start(0, 100))

	typeAnswer(e, e.Problem().Answer)
	clk.Advance(16 * time.Second)

	res, ok := e.Submit()
	require.True(t, ok)
	assert.Equal(t, KindTimeout, res.Kind)
	assert.Empty(t, res.Given)
}

func TestStaleTickIgnored(t *testing.T) {
	e, clk, _ := newTestEngine(t, catalog.Default(), 10)
	require.NoError(t, e.Start(0, 100))

	first := e.Turn()
	res := answerCorrect(t, e)
	require.True(t, e.Advance(res.Turn))

	clk.Advance(20 * time.Second)
	_, ok := e.Tick(first, clk.Now())
	assert.False(t, ok, "tick for an earlier turn")

	_, ok = e.Tick(e.Turn(), clk.Now())
	assert.True(t, ok, "tick for the current turn")
}

func TestQuitSuppressesObserver(t *testing.T) {
	e, clk, rec := newTestEngine(t, catalog.Default(), 11)
	require.NoError(t, e.Start(0, 100))
	turn := e.Turn()

	require.True(t, e.Quit())
	assert.False(t, e.Active())
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.False(t, e.Quit(), "already quit")

	clk.Advance(time.Minute)
	_, ok := e.Tick(turn, clk.Now())
	assert.False(t, ok)
	assert.False(t, e.Input('1'))
	_, ok = e.Conclude()
	assert.False(t, ok)
	assert.Equal(t, 0, rec.total())
}

func TestQuitDuringRevealCancelsAdvance(t *testing.T) {
	e, _, rec := newTestEngine(t, catalog.Default(), 12)
	require.NoError(t, e.Start(0, 100))

	res := answerWrong(t, e)
	require.True(t, e.Quit())
	assert.False(t, e.Advance(res.Turn))
	assert.Equal(t, 0, rec.total())
}

func TestQuitAfterDecisionKeepsResult(t *testing.T) {
	stages := fixedStages{monster: catalog.Monster{Name: "Wisp", HP: 1, Attack: 1}, limit: 10 * time.Second}
	e, _, rec := newTestEngine(t, stages, 13)
	require.NoError(t, e.Start(0, 100))

	res := answerCorrect(t, e)
	require.Equal(t, OutcomeVictory, res.Outcome)
	assert.False(t, e.Quit())

	_, ok := e.Conclude()
	assert.True(t, ok)
	assert.Len(t, rec.victories, 1)
}

func TestRestartCancelsPreviousBattle(t *testing.T) {
	e, clk, rec := newTestEngine(t, catalog.Default(), 14)
	require.NoError(t, e.Start(0, 100))
	oldTurn := e.Turn()

	require.NoError(t, e.Start(1, 100))
	clk.Advance(30 * time.Second)
	_, ok := e.Tick(oldTurn, clk.Now())
	assert.False(t, ok, "tick from the previous battle")
	assert.Equal(t, 1, e.Stage())
	assert.Equal(t, 0, rec.total())
}

func TestScorePersistsAcrossBattles(t *testing.T) {
	stages := fixedStages{monster: catalog.Monster{Name: "Wisp", HP: 1, Attack: 1}, limit: 10 * time.Second}
	e, _, _ := newTestEngine(t, stages, 15)
	e.SetScore(0)

	require.NoError(t, e.Start(0, 100))
	answerCorrect(t, e)
	first := e.Score()
	require.Equal(t, 150, first)

	require.NoError(t, e.Start(1, 100))
	assert.Equal(t, first, e.Score(), "start does not reset the score")
	assert.Equal(t, 0, e.Tracker().Combo(), "start resets the combo")

	e.SetScore(-50)
	assert.Equal(t, 0, e.Score())
}

func TestLevelChangeReported(t *testing.T) {
	stages := fixedStages{monster: catalog.Monster{Name: "Golem", HP: 500, Attack: 1}, limit: 10 * time.Second}
	e, _, _ := newTestEngine(t, stages, 16)
	require.NoError(t, e.Start(0, 100))

	var res Resolution
	for i := 0; i < 5; i++ {
		res = answerCorrect(t, e)
		require.True(t, e.Advance(res.Turn))
	}
	assert.True(t, res.LevelChanged)
	assert.Equal(t, problemgen.LevelMedium, res.Level)
	// Score for the promoting answer uses the new level.
	assert.Equal(t, TurnScore(problemgen.LevelMedium, 5), res.ScoreGained)

	p := e.Problem()
	assert.GreaterOrEqual(t, p.A, 11, "next problem drawn at the new level")
}

func TestRandomBattlesEndExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	cat := catalog.Default()

	for battle := 0; battle < 200; battle++ {
		e, clk, rec := newTestEngine(t, cat, uint64(battle))
		stage := rng.IntN(24)
		require.NoError(t, e.Start(stage, 100+rng.IntN(80)))

		terminal := 0
		for turn := 0; turn < 1000 && e.Active(); turn++ {
			var res Resolution
			switch rng.IntN(3) {
			case 0:
				res = answerWrong(t, e)
			case 1:
				clk.Advance(cat.TimerDuration(stage))
				var ok bool
				res, ok = e.Tick(e.Turn(), clk.Now())
				require.True(t, ok)
			default:
				res = answerCorrect(t, e)
			}

			s := e.State()
			require.GreaterOrEqual(t, s.MonsterHP, 0)
			require.LessOrEqual(t, s.MonsterHP, s.MonsterMax)
			require.GreaterOrEqual(t, s.PlayerHP, 0)
			require.LessOrEqual(t, s.PlayerHP, s.PlayerMax)

			if res.Outcome != OutcomeContinue {
				terminal++
				break
			}
			require.True(t, e.Advance(res.Turn))
		}

		require.Equal(t, 1, terminal, "battle %d", battle)
		_, ok := e.Conclude()
		require.True(t, ok)
		_, ok = e.Conclude()
		require.False(t, ok)
		require.Equal(t, 1, rec.total(), "battle %d", battle)

		if e.Phase() == PhaseVictory {
			assert.Equal(t, 0, e.State().MonsterHP)
			assert.Len(t, rec.victories, 1)
		} else {
			assert.Equal(t, 0, e.State().PlayerHP)
			assert.Len(t, rec.defeats, 1)
		}
	}
}
