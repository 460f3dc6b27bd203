package sim

import (
	"go.uber.org/zap"

	"deepmine/internal/domain/mine"
)

// requestFloor schedules floor to be spawned at the start of the next tick.
func (s *Simulation) requestFloor(floor int) {
	floor = mine.ClampFloor(floor)
	s.pendingFloor = floor
	s.session.CurrentFloor = floor
	s.active.Spawned = false
}

func (s *Simulation) resolvePendingFloor() {
	if s.pendingFloor == 0 {
		return
	}
	floor := s.pendingFloor
	s.pendingFloor = 0
	if !s.session.InMine {
		return
	}
	s.SpawnFloor(mine.GenerateFloor(floor))
}

// SpawnFloor tears down the current floor and materialises bp in its place.
func (s *Simulation) SpawnFloor(bp mine.FloorBlueprint) {
	s.despawnFloor()

	f := &mine.Floor{
		ID:      s.newID(),
		Number:  bp.Floor,
		Rocks:   make(map[mine.GridPos]*mine.Rock, len(bp.Rocks)),
		Enemies: make([]*mine.Enemy, 0, len(bp.Enemies)),
		Ladder:  mine.Ladder{Pos: bp.LadderPos, Revealed: !bp.LadderHidden},
		Exit:    mine.Exit{Pos: mine.ExitPos},
	}
	for y := 0; y < mine.GridHeight; y++ {
		for x := 0; x < mine.GridWidth; x++ {
			if mine.IsWall(mine.GridPos{X: x, Y: y}) {
				f.Tiles[y][x] = mine.TileWall
			} else {
				f.Tiles[y][x] = mine.TileFloor
			}
		}
	}
	for _, r := range bp.Rocks {
		f.Rocks[r.Pos] = &mine.Rock{
			ID:         s.nextID(),
			Pos:        r.Pos,
			Health:     r.Health,
			MaxHealth:  r.Health,
			Drop:       r.Drop,
			LadderHost: r.LadderHost,
		}
	}
	for _, e := range bp.Enemies {
		f.Enemies = append(f.Enemies, &mine.Enemy{
			ID:        s.nextID(),
			Pos:       e.Pos,
			Kind:      e.Kind,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
			Damage:    e.Damage,
			Speed:     e.Speed,
			Move:      mine.NewRepeating(mine.EnemyMoveInterval(e.Kind)),
			Attack:    mine.NewRepeating(mine.EnemyAttackCooldown),
		})
	}

	s.floor = f
	s.active = mine.ActiveFloorState{
		Floor:          bp.Floor,
		TotalRocks:     len(f.Rocks),
		RocksRemaining: len(f.Rocks),
		LadderRevealed: f.Ladder.Revealed,
		PlayerPos:      bp.SpawnPos,
		Spawned:        true,
	}
	s.moveCooldown.Reset(0)
	s.toolUses = nil

	s.log.Debug("floor spawned",
		zap.Int("floor", bp.Floor),
		zap.Stringer("floor_id", f.ID),
		zap.Int("rocks", len(f.Rocks)),
		zap.Int("enemies", len(f.Enemies)),
		zap.Bool("ladder_hidden", bp.LadderHidden),
	)
}

// despawnFloor drops the current floor and everything on it.
func (s *Simulation) despawnFloor() {
	if s.floor == nil {
		return
	}
	n := s.floor.EntityCount()
	s.log.Debug("floor despawned",
		zap.Int("floor", s.floor.Number),
		zap.Stringer("floor_id", s.floor.ID),
		zap.Int("entities", n),
	)
	s.floor = nil
	s.active.Spawned = false
}
