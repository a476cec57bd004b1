package battle

import (
	"testing"
	"time"
)

func TestCountdownDriftFree(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var c Countdown
	c.Start(start, 10*time.Second)

	// Irregular sampling does not change the answer.
	for _, ms := range []int{16, 33, 250, 1000, 3300} {
		_ = c.Remaining(start.Add(time.Duration(ms) * time.Millisecond))
	}
	if got := c.Remaining(start.Add(3300 * time.Millisecond)); got != 6700*time.Millisecond {
		t.Errorf("remaining = %v, want 6.7s", got)
	}
}

func TestCountdownClampsAtZero(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var c Countdown
	c.Start(start, 8*time.Second)

	late := start.Add(12 * time.Second)
	if got := c.Remaining(late); got != 0 {
		t.Errorf("remaining = %v, want 0", got)
	}
	if !c.Expired(late) {
		t.Error("expected expired")
	}
	if got := c.Elapsed(late); got != 8*time.Second {
		t.Errorf("elapsed = %v, want capped at 8s", got)
	}
}

func TestCountdownDanger(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var c Countdown
	c.Start(start, 10*time.Second)

	tests := []struct {
		elapsed time.Duration
		want    bool
	}{
		{0, false},
		{7 * time.Second, false},
		{7500 * time.Millisecond, false},
		{7600 * time.Millisecond, true},
		{10 * time.Second, true},
	}
	for _, tt := range tests {
		if got := c.Danger(start.Add(tt.elapsed)); got != tt.want {
			t.Errorf("Danger after %v = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestCountdownStopFreezes(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var c Countdown
	c.Start(start, 10*time.Second)
	c.Stop(start.Add(4 * time.Second))

	if c.Running() {
		t.Fatal("expected stopped countdown")
	}
	if got := c.Remaining(start.Add(time.Hour)); got != 6*time.Second {
		t.Errorf("remaining = %v, want frozen 6s", got)
	}
	if c.Expired(start.Add(time.Hour)) {
		t.Error("stopped countdown never expires")
	}
}
