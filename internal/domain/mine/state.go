package mine

import (
	"slices"
	"time"
)

// ActiveFloorState tracks the currently loaded floor. It is replaced on every
// floor transition.
type ActiveFloorState struct {
	Floor          int     `json:"floor"`
	TotalRocks     int     `json:"total_rocks"`
	RocksRemaining int     `json:"rocks_remaining"`
	LadderRevealed bool    `json:"ladder_revealed"`
	PlayerPos      GridPos `json:"player_pos"`
	Spawned        bool    `json:"spawned"`
}

func NewActiveFloorState() ActiveFloorState {
	return ActiveFloorState{PlayerPos: SpawnPos}
}

// SessionState is the mine progress that survives floor changes and mine
// visits. CurrentFloor is 0 while the player is outside.
type SessionState struct {
	CurrentFloor   int   `json:"current_floor"`
	DeepestFloor   int   `json:"deepest_floor"`
	ElevatorFloors []int `json:"elevator_floors"`
	InMine         bool  `json:"in_mine"`
}

func (s SessionState) Clone() SessionState {
	s.ElevatorFloors = slices.Clone(s.ElevatorFloors)
	return s
}

func (s SessionState) Equal(o SessionState) bool {
	return s.CurrentFloor == o.CurrentFloor &&
		s.DeepestFloor == o.DeepestFloor &&
		s.InMine == o.InMine &&
		slices.Equal(s.ElevatorFloors, o.ElevatorFloors)
}

// RecordFloorReached raises the deepest-floor mark and unlocks the elevator
// stop for floor when it is a multiple of ElevatorInterval. It reports
// whether a new stop was unlocked.
func (s *SessionState) RecordFloorReached(floor int) bool {
	if floor > s.DeepestFloor {
		s.DeepestFloor = floor
	}
	if floor <= 0 || floor%ElevatorInterval != 0 {
		return false
	}
	i, found := slices.BinarySearch(s.ElevatorFloors, floor)
	if found {
		return false
	}
	s.ElevatorFloors = slices.Insert(s.ElevatorFloors, i, floor)
	return true
}

// ElevatorFloor maps a 0-based index into the unlocked stops.
func (s SessionState) ElevatorFloor(i int) (int, bool) {
	if i < 0 || i >= len(s.ElevatorFloors) {
		return 0, false
	}
	return s.ElevatorFloors[i], true
}

func (s *SessionState) Leave() {
	s.CurrentFloor = 0
	s.InMine = false
}

// Normalize repairs a restored session: floors are clamped, the deepest floor
// is raised to the current one, and the elevator list is reduced to sorted unique multiples of ElevatorInterval that do not
// exceed the deepest floor.
func (s *SessionState) Normalize() {
	if s.DeepestFloor < 0 {
		s.DeepestFloor = 0
	}
	if s.DeepestFloor > MaxFloor {
		s.DeepestFloor = MaxFloor
	}
	if s.CurrentFloor < 0 || !s.InMine {
		s.CurrentFloor = 0
	}
	if s.CurrentFloor > MaxFloor {
		s.CurrentFloor = MaxFloor
	}
	if s.CurrentFloor > s.DeepestFloor {
		s.DeepestFloor = s.CurrentFloor
	}
	out := make([]int, 0, len(s.ElevatorFloors))
	for _, f := range s.ElevatorFloors {
		if f > 0 && f%ElevatorInterval == 0 && f <= s.DeepestFloor {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	s.ElevatorFloors = slices.Compact(out)
}

type PlayerCombatState struct {
	Health        float64   `json:"health"`
	MaxHealth     float64   `json:"max_health"`
	Gold          int       `json:"gold"`
	Invincibility Countdown `json:"invincibility"`
}

func (p PlayerCombatState) Invincible() bool {
	return !p.Invincibility.Ready()
}

func (p PlayerCombatState) KnockedOut() bool {
	return p.Health <= 0
}

// TakeHit applies damage, clamping at zero, and starts the invincibility
// window.
func (p *PlayerCombatState) TakeHit(damage float64, window time.Duration) {
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
	p.Invincibility.Reset(window)
}

// Recover restores health to the post-knockout level.
func (p *PlayerCombatState) Recover() {
	p.Health = p.MaxHealth * RecoveryHealthRatio
	p.Invincibility.Reset(0)
}
