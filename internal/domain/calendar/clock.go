package calendar

import "time"

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

type ClockConfig struct {
	StartAt       time.Time
	DayDuration   time.Duration
	NightDuration time.Duration
}

// Clock maps wall time onto in-game days. A day is one day phase followed by
// one night phase; it ends when the night runs out.
type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.DayDuration <= 0 {
		cfg.DayDuration = 10 * time.Minute
	}
	if cfg.NightDuration <= 0 {
		cfg.NightDuration = 5 * time.Minute
	}
	if cfg.StartAt.IsZero() {
		cfg.StartAt = time.Unix(0, 0)
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

func (c Clock) DayLength() time.Duration {
	return c.cfg.DayDuration + c.cfg.NightDuration
}

func (c Clock) elapsed(now time.Time) time.Duration {
	e := now.Sub(c.cfg.StartAt)
	if e < 0 {
		return 0
	}
	return e
}

// PhaseAt returns the phase at now and how long it still lasts.
func (c Clock) PhaseAt(now time.Time) (Phase, time.Duration) {
	offset := c.elapsed(now) % c.DayLength()
	if offset < c.cfg.DayDuration {
		return PhaseDay, c.cfg.DayDuration - offset
	}
	return PhaseNight, c.DayLength() - offset
}

// DayAt returns the 1-based day number at now.
func (c Clock) DayAt(now time.Time) int {
	return int(c.elapsed(now)/c.DayLength()) + 1
}

// DaysEnded reports how many day boundaries lie in (prev, now].
func (c Clock) DaysEnded(prev, now time.Time) int {
	if !now.After(prev) {
		return 0
	}
	return c.DayAt(now) - c.DayAt(prev)
}

// NextDayEnd is the first day boundary strictly after now.
func (c Clock) NextDayEnd(now time.Time) time.Time {
	return c.cfg.StartAt.Add(time.Duration(c.DayAt(now)) * c.DayLength())
}
