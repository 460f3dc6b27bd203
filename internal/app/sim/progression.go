package sim

import (
	"go.uber.org/zap"

	"deepmine/internal/app/ports"
	"deepmine/internal/domain/mine"
)

// EnterMine starts a visit. With elevator stops unlocked the player first
// picks a floor; otherwise floor 1 spawns on the next tick.
func (s *Simulation) EnterMine() bool {
	if s.session.InMine {
		s.log.Warn("enter mine ignored, already inside", zap.Int("floor", s.session.CurrentFloor))
		return false
	}
	s.session.InMine = true
	s.active = mine.NewActiveFloorState()
	s.sfx(mine.SfxEnter)
	s.emit(ports.MusicCue{Track: mine.MusicMineAmbient, FadeIn: true})

	if len(s.session.ElevatorFloors) > 0 {
		s.elevatorOpen = true
		return true
	}
	s.session.RecordFloorReached(mine.MinFloor)
	s.requestFloor(mine.MinFloor)
	return true
}

// LeaveMine handles the player being moved elsewhere by the outside world.
// Progress below the surface is dropped without a penalty.
func (s *Simulation) LeaveMine() bool {
	if !s.session.InMine {
		return false
	}
	s.reset()
	return true
}

// DayEnd makes a player still underground pass out: the knockout penalty,
// but waking up at home.
func (s *Simulation) DayEnd() bool {
	if !s.session.InMine {
		return false
	}
	s.log.Info("player passed out in the mine", zap.Int("floor", s.session.CurrentFloor), zap.Int("gold", s.player.Gold))
	s.ejectWithPenalty(mine.ReasonPassout, mine.PassoutDestination)
	return true
}

func (s *Simulation) leave(dest mine.Destination) {
	s.reset()
	s.emit(ports.MapTransition{Map: dest.Map, X: dest.Pos.X, Y: dest.Pos.Y})
}

func (s *Simulation) reset() {
	s.session.Leave()
	s.pendingFloor = 0
	s.elevatorOpen = false
	s.toolUses = nil
	s.despawnFloor()
	s.active = mine.NewActiveFloorState()
}

// updateLadder descends when the player interacts while standing on the
// revealed ladder. Nothing happens on the deepest floor.
func (s *Simulation) updateLadder(in Input) bool {
	if !in.interact() || !s.active.LadderRevealed || !s.floor.Ladder.Revealed {
		return false
	}
	if s.active.PlayerPos != s.floor.Ladder.Pos {
		return false
	}
	next := s.session.CurrentFloor + 1
	if next > mine.MaxFloor {
		s.log.Debug("ladder ignored on the deepest floor", zap.Int("floor", s.session.CurrentFloor))
		return false
	}

	s.sfx(mine.SfxDescend)
	if s.session.RecordFloorReached(next) {
		s.log.Info("elevator stop unlocked", zap.Int("floor", next))
	}
	s.requestFloor(next)
	return true
}

// updateExit leaves the mine when the player interacts on or next to the exit.
func (s *Simulation) updateExit(in Input) bool {
	if !in.interact() || s.active.PlayerPos.Manhattan(s.floor.Exit.Pos) > 1 {
		return false
	}
	s.sfx(mine.SfxExit)
	s.leave(mine.ExitDestination)
	return true
}

type ElevatorOption struct {
	Slot  int `json:"slot"`
	Floor int `json:"floor"`
}

// ElevatorOptions lists the selectable stops. Slot 1 is always floor 1 and is
// also what cancelling picks.
func (s *Simulation) ElevatorOptions() []ElevatorOption {
	out := make([]ElevatorOption, 0, len(s.session.ElevatorFloors)+1)
	out = append(out, ElevatorOption{Slot: 1, Floor: mine.MinFloor})
	for i, f := range s.session.ElevatorFloors {
		out = append(out, ElevatorOption{Slot: i + 2, Floor: f})
	}
	return out
}

func (s *Simulation) updateElevator(in Input) {
	floor, ok := s.elevatorSelection(in)
	if !ok {
		return
	}
	s.sfx(mine.SfxElevator)
	s.elevatorOpen = false
	s.requestFloor(floor)
}

func (s *Simulation) elevatorSelection(in Input) (int, bool) {
	switch {
	case in.Slot == 1:
		return mine.MinFloor, true
	case in.Slot >= 2:
		floor, ok := s.session.ElevatorFloor(in.Slot - 2)
		if !ok {
			s.log.Warn("elevator slot has no stop", zap.Int("slot", in.Slot))
		}
		return floor, ok
	case in.Cancel:
		return mine.MinFloor, true
	default:
		return 0, false
	}
}
