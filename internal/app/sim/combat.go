package sim

import (
	"time"

	"go.uber.org/zap"

	"deepmine/internal/app/ports"
	"deepmine/internal/domain/mine"
)

// processPlayerAttacks lets pickaxe swings land on enemies; the pickaxe
// doubles as the weapon.
func (s *Simulation) processPlayerAttacks(uses []ToolUse) {
	for _, use := range uses {
		if use.Tool != mine.ToolPickaxe {
			continue
		}
		enemy, ok := s.floor.EnemyAt(use.Target)
		if !ok {
			continue
		}
		enemy.Health -= mine.AttackDamage(use.Tier)
		s.sfx(mine.SfxEnemyHit)
		if enemy.Health > 0 {
			continue
		}

		s.floor.RemoveEnemy(enemy.ID)
		s.sfx(mine.SfxEnemyDie)
		loot := mine.RollEnemyLoot(enemy.Kind, s.rng)
		s.emit(ports.ItemPickup{ItemID: loot.ItemID, Quantity: loot.Quantity})
		s.log.Debug("enemy defeated",
			zap.Int("enemy_id", enemy.ID),
			zap.String("kind", string(enemy.Kind)),
			zap.String("loot", loot.ItemID),
		)
	}
}

// updateEnemyAI moves each enemy whose move timer fired one greedy step
// toward the player. Enemies stop next to the player rather than on it.
func (s *Simulation) updateEnemyAI(dt time.Duration) {
	player := s.active.PlayerPos
	for _, e := range s.floor.Enemies {
		if !e.Move.Tick(dt) {
			continue
		}
		for _, next := range mine.GreedySteps(e.Pos, player) {
			if next == e.Pos || !s.floor.Walkable(next) {
				continue
			}
			if _, rock := s.floor.RockAt(next); rock {
				continue
			}
			if next == player {
				break
			}
			if s.enemyOccupies(next, e.ID) {
				continue
			}
			e.Pos = next
			break
		}
	}
}

func (s *Simulation) enemyOccupies(p mine.GridPos, except int) bool {
	for _, e := range s.floor.Enemies {
		if e.ID != except && e.Pos == p {
			return true
		}
	}
	return false
}

// updateEnemyAttacks lands at most one hit per tick. Every enemy's attack
// timer keeps running; when several adjacent enemies are ready the earliest
// spawned one strikes and the rest lose their turn to the invincibility
// window.
func (s *Simulation) updateEnemyAttacks(dt time.Duration) {
	s.player.Invincibility.Tick(dt)
	player := s.active.PlayerPos
	for _, e := range s.floor.Enemies {
		if !e.Attack.Tick(dt) {
			continue
		}
		if s.player.Invincible() || e.Pos.Manhattan(player) > 1 {
			continue
		}
		s.player.TakeHit(e.Damage, mine.PlayerInvincibility)
		s.sfx(mine.SfxPlayerHurt)
		s.log.Debug("player hit",
			zap.Int("enemy_id", e.ID),
			zap.Float64("damage", e.Damage),
			zap.Float64("health", s.player.Health),
		)
	}
}

// checkKnockout ejects the player once health reaches zero.
func (s *Simulation) checkKnockout() bool {
	if !s.player.KnockedOut() {
		return false
	}
	s.sfx(mine.SfxKnockout)
	s.log.Info("player knocked out", zap.Int("floor", s.session.CurrentFloor), zap.Int("gold", s.player.Gold))
	s.ejectWithPenalty(mine.ReasonKnockout, mine.KnockoutDestination)
	return true
}

func (s *Simulation) ejectWithPenalty(reason string, dest mine.Destination) {
	if loss := mine.KnockoutGoldLoss(s.player.Gold); loss > 0 {
		s.emit(ports.GoldChange{Amount: -loss, Reason: reason})
	}
	s.player.Recover()
	s.leave(dest)
}
