package battle

import "time"

// DangerFraction is the share of the time limit below which a countdown is
// in danger.
const DangerFraction = 0.25

// Countdown is a per-turn deadline. Remaining time is always derived from
// the fixed start instant, so it does not drift however irregularly it is
// sampled. Instants from time.Now carry a monotonic reading, which Sub uses.
type Countdown struct {
	start    time.Time
	duration time.Duration
	running  bool
	frozen   time.Duration
}

// Start begins a new countdown of d at now, replacing any previous one.
func (c *Countdown) Start(now time.Time, d time.Duration) {
	c.start = now
	c.duration = d
	c.running = true
	c.frozen = d
}

// Stop freezes the countdown at the remaining time as of now.
func (c *Countdown) Stop(now time.Time) {
	if !c.running {
		return
	}
	c.frozen = c.Remaining(now)
	c.running = false
}

// Running reports whether the countdown is live.
func (c *Countdown) Running() bool {
	return c.running
}

// Duration returns the full length of the current countdown.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// Remaining returns the time left at now, clamped to zero. A stopped
// countdown reports the time left when it was stopped.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if !c.running {
		return c.frozen
	}
	left := c.duration - now.Sub(c.start)
	if left < 0 {
		return 0
	}
	return left
}

// Elapsed returns the time since the countdown started, capped at its
// duration.
func (c *Countdown) Elapsed(now time.Time) time.Duration {
	return c.duration - c.Remaining(now)
}

// Expired reports whether a running countdown has reached zero.
func (c *Countdown) Expired(now time.Time) bool {
	return c.running && c.Remaining(now) == 0
}

// Fraction returns the remaining share of the duration in [0, 1].
func (c *Countdown) Fraction(now time.Time) float64 {
	if c.duration <= 0 {
		return 0
	}
	return float64(c.Remaining(now)) / float64(c.duration)
}

// Danger reports whether less than DangerFraction of the time is left.
func (c *Countdown) Danger(now time.Time) bool {
	return c.duration > 0 && c.Fraction(now) < DangerFraction
}
