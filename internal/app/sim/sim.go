// Package sim runs the mine: floor spawning, movement, rock breaking, combat
// and floor progression. A Simulation is not safe for concurrent use; callers
// serialise access and drive it with Tick.
package sim

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"deepmine/internal/app/ports"
	"deepmine/internal/domain/mine"
)

type Phase string

const (
	PhaseNotInMine      Phase = "not_in_mine"
	PhaseElevatorChoice Phase = "elevator_choice"
	PhaseFloorActive    Phase = "floor_active"
)

// PlayerStats is the player data the mine reads from outside.
type PlayerStats struct {
	Health    float64
	MaxHealth float64
	Gold      int
	Tool      mine.ToolKind
	Tier      mine.ToolTier
}

type Options struct {
	Logger   *zap.Logger
	Notifier ports.Notifier
	// Rand drives loot rolls. Floor layouts never use it.
	Rand  *rand.Rand
	NewID func() uuid.UUID
}

type Simulation struct {
	log      *zap.Logger
	notifier ports.Notifier
	rng      *rand.Rand
	newID    func() uuid.UUID

	session      mine.SessionState
	active       mine.ActiveFloorState
	floor        *mine.Floor
	pendingFloor int
	elevatorOpen bool

	player       mine.PlayerCombatState
	tool         mine.ToolKind
	tier         mine.ToolTier
	facing       mine.Direction
	moveCooldown mine.Countdown
	toolUses     []ToolUse

	nextEntityID int
}

func New(opts Options, stats PlayerStats) *Simulation {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = ports.NopNotifier{}
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if opts.NewID == nil {
		opts.NewID = uuid.New
	}
	if stats.MaxHealth <= 0 {
		stats.MaxHealth = 100
	}
	if stats.Health <= 0 || stats.Health > stats.MaxHealth {
		stats.Health = stats.MaxHealth
	}
	if stats.Tool == "" {
		stats.Tool = mine.ToolPickaxe
	}
	return &Simulation{
		log:      opts.Logger,
		notifier: opts.Notifier,
		rng:      opts.Rand,
		newID:    opts.NewID,
		active:   mine.NewActiveFloorState(),
		player: mine.PlayerCombatState{
			Health:    stats.Health,
			MaxHealth: stats.MaxHealth,
			Gold:      stats.Gold,
		},
		tool:   stats.Tool,
		tier:   stats.Tier,
		facing: mine.DirUp,
	}
}

func (s *Simulation) Phase() Phase {
	switch {
	case !s.session.InMine:
		return PhaseNotInMine
	case s.elevatorOpen:
		return PhaseElevatorChoice
	default:
		return PhaseFloorActive
	}
}

func (s *Simulation) Session() mine.SessionState {
	return s.session.Clone()
}

func (s *Simulation) Active() mine.ActiveFloorState {
	return s.active
}

// Floor returns the live floor, or nil when none is loaded. Callers must not
// keep it past the next Tick.
func (s *Simulation) Floor() *mine.Floor {
	return s.floor
}

func (s *Simulation) Player() mine.PlayerCombatState {
	return s.player
}

func (s *Simulation) Facing() mine.Direction {
	return s.facing
}

func (s *Simulation) PendingFloor() int {
	return s.pendingFloor
}

func (s *Simulation) Loadout() (mine.ToolKind, mine.ToolTier) {
	return s.tool, s.tier
}

// SetGold mirrors the wallet balance used for knockout penalties.
func (s *Simulation) SetGold(gold int) {
	s.player.Gold = gold
}

func (s *Simulation) SetLoadout(tool mine.ToolKind, tier mine.ToolTier) {
	s.tool = tool
	s.tier = tier
}

// Restore loads persisted progress. A session that was inside the mine
// resumes on its floor at the next tick.
func (s *Simulation) Restore(state mine.SessionState) {
	state.Normalize()
	s.despawnFloor()
	s.session = state.Clone()
	s.pendingFloor = 0
	s.elevatorOpen = false
	s.active = mine.NewActiveFloorState()
	s.toolUses = nil
	if !s.session.InMine {
		return
	}
	switch {
	case s.session.CurrentFloor > 0:
		s.requestFloor(s.session.CurrentFloor)
	case len(s.session.ElevatorFloors) > 0:
		s.elevatorOpen = true
	default:
		s.requestFloor(mine.MinFloor)
	}
}

func (s *Simulation) emit(n ports.Notification) {
	s.notifier.Notify(n)
}

func (s *Simulation) sfx(id string) {
	s.emit(ports.SoundCue{ID: id})
}

func (s *Simulation) nextID() int {
	s.nextEntityID++
	return s.nextEntityID
}
