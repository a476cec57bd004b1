package problemgen

import "math/rand/v2"

// Source is the uniform random source used for sampling.
// IntN returns a value in [0, n) and panics if n <= 0.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic Source seeded with seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator produces subtraction problems for a level while avoiding
// repeats within the current stage.
type Generator struct {
	src  Source
	used *UsedSet
	cfg  Config
}

// New creates a Generator. A nil src falls back to an unseeded source.
func New(src Source, cfg Config) *Generator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Generator{
		src:  src,
		used: NewUsedSet(cfg.MaxUsed),
		cfg:  cfg,
	}
}

// Used returns the generator's per-stage memory of served pairs.
func (g *Generator) Used() *UsedSet {
	return g.used
}

// Generate returns a problem for level. Out-of-range levels are clamped.
//
// Up to MaxAttempts samples are drawn looking for a pair that has not been
// served since the last clear; if every attempt collides the final sample is
// served anyway.
func (g *Generator) Generate(level Level) Problem {
	level = level.Clamp()

	var p Problem
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		p = g.sample(level)
		if !g.used.Has(p.Key()) {
			break
		}
	}

	g.used.Add(p.Key())
	return p
}

// sample draws one pair for level without consulting the used set.
func (g *Generator) sample(level Level) Problem {
	var a, b int
	switch level {
	case LevelMedium:
		a = g.between(11, 18)
		b = g.between(a-9, a-1)
	case LevelHard:
		a = g.between(12, 19)
		ones := a % 10
		b = g.between(max(ones+1, a-9), a-1)
	default:
		a = g.between(3, 10)
		b = g.between(1, a-1)
	}
	return Problem{A: a, B: b, Answer: a - b}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.src.IntN(hi-lo+1)
}
