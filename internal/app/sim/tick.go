package sim

import "time"

// Tick advances the mine by dt. A floor requested during the previous tick
// is spawned first so no system sees a half-built floor.
func (s *Simulation) Tick(dt time.Duration, in Input) {
	if dt < 0 {
		dt = 0
	}
	s.resolvePendingFloor()

	if !s.session.InMine {
		s.toolUses = nil
		if s.floor != nil {
			s.despawnFloor()
		}
		return
	}
	if s.elevatorOpen {
		if !in.Blocked {
			s.updateElevator(in)
		}
		return
	}
	if !s.active.Spawned || s.floor == nil {
		return
	}

	if !in.Blocked {
		s.updateMovement(dt, in)
		if in.Attack {
			s.toolUses = append(s.toolUses, ToolUse{Tool: s.tool, Tier: s.tier, Target: s.FacingTarget()})
		}
	}

	uses := s.drainToolUses()
	s.processRockHits(uses)
	s.processPlayerAttacks(uses)

	s.updateEnemyAI(dt)
	s.updateEnemyAttacks(dt)
	if s.checkKnockout() {
		return
	}

	if in.Blocked {
		return
	}
	if s.updateLadder(in) {
		return
	}
	s.updateExit(in)
}
