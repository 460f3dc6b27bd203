package sim

import (
	"time"

	"deepmine/internal/domain/mine"
)

// updateMovement steps the player one cell per cooldown. Facing follows the
// input even when the step is refused, so a rock can be faced and mined.
func (s *Simulation) updateMovement(dt time.Duration, in Input) {
	s.moveCooldown.Tick(dt)

	dir, ok := mine.DirectionFromAxis(in.MoveX, in.MoveY)
	if !ok {
		return
	}
	s.facing = dir
	if !s.moveCooldown.Ready() {
		return
	}

	target := s.active.PlayerPos.Add(dir)
	if !s.floor.Walkable(target) {
		return
	}
	if _, blocked := s.floor.RockAt(target); blocked {
		return
	}
	s.active.PlayerPos = target
	s.moveCooldown.Reset(mine.PlayerMoveCooldown)
}

// FacingTarget is the cell an attack swing hits.
func (s *Simulation) FacingTarget() mine.GridPos {
	return s.active.PlayerPos.Add(s.facing)
}
