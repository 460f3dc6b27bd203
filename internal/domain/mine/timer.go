package mine

import "time"

// Countdown is a one-shot timer driven by frame deltas. It is ready once it
// has run down to zero and stays ready until reset.
type Countdown struct {
	Remaining time.Duration `json:"remaining"`
}

func (c *Countdown) Tick(dt time.Duration) {
	if c.Remaining <= 0 || dt <= 0 {
		return
	}
	c.Remaining -= dt
	if c.Remaining < 0 {
		c.Remaining = 0
	}
}

func (c Countdown) Ready() bool {
	return c.Remaining <= 0
}

func (c *Countdown) Reset(d time.Duration) {
	c.Remaining = d
}

// Repeating fires once every Period of accumulated delta.
type Repeating struct {
	Period  time.Duration `json:"period"`
	Elapsed time.Duration `json:"elapsed"`
}

func NewRepeating(period time.Duration) Repeating {
	return Repeating{Period: period}
}

// Tick advances the timer and reports whether at least one period completed.
func (r *Repeating) Tick(dt time.Duration) bool {
	if dt <= 0 {
		return false
	}
	if r.Period <= 0 {
		return true
	}
	r.Elapsed += dt
	if r.Elapsed < r.Period {
		return false
	}
	r.Elapsed %= r.Period
	return true
}
