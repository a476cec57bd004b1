package problemgen

import "testing"

// constSource always returns the same offset and counts calls.
type constSource struct {
	v     int
	calls int
}

func (c *constSource) IntN(n int) int {
	c.calls++
	if c.v >= n {
		return n - 1
	}
	return c.v
}

func TestGenerateAnswerCorrectness(t *testing.T) {
	g := New(NewSource(1), DefaultConfig())
	for _, level := range AllLevels() {
		for i := 0; i < 500; i++ {
			p := g.Generate(level)
			if p.Answer != p.A-p.B {
				t.Fatalf("level %d: answer %d != %d-%d", level, p.Answer, p.A, p.B)
			}
			if !(p.A > p.B && p.B >= 0) {
				t.Fatalf("level %d: want a > b >= 0, got %d-%d", level, p.A, p.B)
			}
			if p.Answer < 0 || p.Answer > 18 {
				t.Fatalf("level %d: answer %d out of [0,18]", level, p.Answer)
			}
		}
	}
}

func TestGenerateLevelRanges(t *testing.T) {
	tests := []struct {
		level      Level
		aMin, aMax int
	}{
		{LevelEasy, 3, 10},
		{LevelMedium, 11, 18},
		{LevelHard, 12, 19},
	}

	for _, tt := range tests {
		t.Run(tt.level.Name(), func(t *testing.T) {
			g := New(NewSource(42), DefaultConfig())
			for i := 0; i < 1000; i++ {
				p := g.Generate(tt.level)
				if p.A < tt.aMin || p.A > tt.aMax {
					t.Fatalf("a = %d, want [%d,%d]", p.A, tt.aMin, tt.aMax)
				}
				switch tt.level {
				case LevelEasy:
					if p.B < 1 || p.B > p.A-1 {
						t.Fatalf("b = %d out of [1,%d]", p.B, p.A-1)
					}
				case LevelMedium:
					if p.B < p.A-9 || p.B > p.A-1 {
						t.Fatalf("b = %d out of [%d,%d]", p.B, p.A-9, p.A-1)
					}
				case LevelHard:
					if p.B <= p.A%10 {
						t.Fatalf("b = %d does not exceed ones digit of %d", p.B, p.A)
					}
					if p.B < p.A-9 || p.B > p.A-1 {
						t.Fatalf("b = %d out of [%d,%d]", p.B, p.A-9, p.A-1)
					}
				}
			}
		})
	}
}

func TestGenerateNoRepeatsWithinStage(t *testing.T) {
	g := New(NewSource(7), DefaultConfig())
	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		p := g.Generate(LevelMedium)
		if seen[p.Key()] {
			t.Fatalf("problem %s repeated after %d problems", p.Key(), i)
		}
		seen[p.Key()] = true
	}
}

func TestGenerateAcceptsRepeatAfterMaxAttempts(t *testing.T) {
	src := &constSource{}
	g := New(src, DefaultConfig())

	first := g.Generate(LevelEasy)
	if src.calls != 2 {
		t.Fatalf("first generate: calls = %d, want 2", src.calls)
	}

	second := g.Generate(LevelEasy)
	if second != first {
		t.Errorf("second = %+v, want repeat of %+v", second, first)
	}
	// Two draws per sample, fifty samples before giving up.
	if src.calls != 2+2*50 {
		t.Errorf("calls = %d, want %d", src.calls, 2+2*50)
	}
}

func TestGenerateClampsLevel(t *testing.T) {
	g := New(NewSource(3), DefaultConfig())
	p := g.Generate(Level(0))
	if p.A < 3 || p.A > 10 {
		t.Errorf("level 0 should behave as easy, got a = %d", p.A)
	}
	p = g.Generate(Level(9))
	if p.A < 12 || p.A > 19 {
		t.Errorf("level 9 should behave as hard, got a = %d", p.A)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	g1 := New(NewSource(99), DefaultConfig())
	g2 := New(NewSource(99), DefaultConfig())
	for i := 0; i < 50; i++ {
		level := AllLevels()[i%3]
		if a, b := g1.Generate(level), g2.Generate(level); a != b {
			t.Fatalf("draw %d diverged: %+v vs %+v", i, a, b)
		}
	}
}

func TestUsedSetClearsPastLimit(t *testing.T) {
	u := NewUsedSet(200)
	for i := 0; i < 200; i++ {
		u.Add(Problem{A: i + 1, B: i}.Key())
	}
	if u.Len() != 200 {
		t.Fatalf("len = %d, want 200", u.Len())
	}

	u.Add("overflow")
	if u.Len() != 0 {
		t.Errorf("len after overflow = %d, want 0", u.Len())
	}
	if u.Has("1-0") {
		t.Error("expected cleared set to forget old keys")
	}
}

func TestUsedSetGeneratorIntegration(t *testing.T) {
	g := New(NewSource(5), DefaultConfig())
	p := g.Generate(LevelHard)
	if !g.Used().Has(p.Key()) {
		t.Fatalf("expected %s to be recorded", p.Key())
	}
	g.Used().Clear()
	if g.Used().Len() != 0 {
		t.Errorf("len = %d after clear, want 0", g.Used().Len())
	}
}
