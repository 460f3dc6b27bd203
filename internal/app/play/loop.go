package play

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Run drives the simulation from wall time until ctx is cancelled. Day
// boundaries crossed between ticks are delivered as day-end signals.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	s.mu.Lock()
	now := s.deps.Now()
	s.lastTick = now
	s.lastClock = now
	s.mu.Unlock()

	s.log.Info("mine loop started", zap.Duration("tick", s.cfg.TickInterval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("mine loop stopped")
			return nil
		case <-ticker.C:
			s.step(ctx)
		}
	}
}

func (s *Service) step(ctx context.Context) {
	now := s.deps.Now()

	s.mu.Lock()
	dt := now.Sub(s.lastTick)
	s.lastTick = now
	days := s.cfg.Clock.DaysEnded(s.lastClock, now)
	s.lastClock = now
	s.mu.Unlock()

	if err := s.Tick(ctx, dt); err != nil {
		s.log.Warn("tick failed", zap.Error(err))
	}
	if days == 0 {
		return
	}
	s.log.Info("day ended", zap.Int("day", s.cfg.Clock.DayAt(now)))
	if _, err := s.DayEnd(ctx); err != nil {
		s.log.Warn("day end failed", zap.Error(err))
	}
}
