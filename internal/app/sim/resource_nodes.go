package sim

import (
	"go.uber.org/zap"

	"deepmine/internal/app/ports"
	"deepmine/internal/domain/mine"
)

// UseTool queues a tool swing for the next tick. It reports false when no
// floor is active to receive it.
func (s *Simulation) UseTool(use ToolUse) bool {
	if !s.session.InMine || s.elevatorOpen || s.floor == nil {
		s.log.Warn("tool use outside an active floor",
			zap.String("tool", string(use.Tool)),
			zap.Int("x", use.Target.X),
			zap.Int("y", use.Target.Y),
		)
		return false
	}
	s.toolUses = append(s.toolUses, use)
	return true
}

func (s *Simulation) drainToolUses() []ToolUse {
	uses := s.toolUses
	s.toolUses = nil
	return uses
}

func (s *Simulation) processRockHits(uses []ToolUse) {
	for _, use := range uses {
		if use.Tool != mine.ToolPickaxe {
			continue
		}
		rock, ok := s.floor.RockAt(use.Target)
		if !ok {
			s.log.Debug("pickaxe swing hit no rock", zap.Int("x", use.Target.X), zap.Int("y", use.Target.Y))
			continue
		}

		broke := rock.Hit(mine.RockDamage(use.Tier))
		s.sfx(mine.SfxRockHit)
		s.emit(ports.StaminaDrain{Amount: mine.StaminaCost(use.Tier)})
		if !broke {
			continue
		}

		s.floor.RemoveRock(rock.Pos)
		s.emit(ports.ItemPickup{ItemID: rock.Drop.ItemID, Quantity: rock.Drop.Quantity})
		s.sfx(mine.SfxRockBreak)
		if s.active.RocksRemaining > 0 {
			s.active.RocksRemaining--
		}
		s.checkLadderReveal(rock)
	}
}

// checkLadderReveal uncovers the ladder once its host rock breaks or the
// floor runs out of rocks. It fires at most once per floor.
func (s *Simulation) checkLadderReveal(broken *mine.Rock) {
	if s.active.LadderRevealed {
		return
	}
	if !broken.LadderHost && broken.Pos != s.floor.Ladder.Pos && s.active.RocksRemaining > 0 {
		return
	}
	s.floor.Ladder.Revealed = true
	s.active.LadderRevealed = true
	s.log.Debug("ladder revealed",
		zap.Int("floor", s.floor.Number),
		zap.Int("x", s.floor.Ladder.Pos.X),
		zap.Int("y", s.floor.Ladder.Pos.Y),
	)
}
