package mine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_RecordFloorReached(t *testing.T) {
	var s SessionState
	for floor := 1; floor <= MaxFloor; floor++ {
		unlocked := s.RecordFloorReached(floor)
		assert.Equal(t, floor%ElevatorInterval == 0, unlocked, "floor %d", floor)
	}
	assert.Equal(t, []int{5, 10, 15, 20}, s.ElevatorFloors)
	assert.Equal(t, MaxFloor, s.DeepestFloor)

	assert.False(t, s.RecordFloorReached(10), "re-reaching a stop must not duplicate it")
	s.RecordFloorReached(3)
	assert.Equal(t, MaxFloor, s.DeepestFloor, "deepest floor never decreases")
	assert.Equal(t, []int{5, 10, 15, 20}, s.ElevatorFloors)
}

func TestSessionState_NormalizeRepairsRestoredState(t *testing.T) {
	s := SessionState{
		CurrentFloor:   7,
		DeepestFloor:   12,
		ElevatorFloors: []int{15, 10, 5, 10, 3, 0},
		InMine:         false,
	}
	s.Normalize()
	assert.Equal(t, []int{5, 10}, s.ElevatorFloors)
	assert.Zero(t, s.CurrentFloor)

	s = SessionState{CurrentFloor: 40, DeepestFloor: 40, InMine: true}
	s.Normalize()
	assert.Equal(t, MaxFloor, s.CurrentFloor)
	assert.Equal(t, MaxFloor, s.DeepestFloor)
}

func TestSessionState_NormalizeRaisesDeepestToCurrent(t *testing.T) {
	s := SessionState{CurrentFloor: 12, DeepestFloor: 3, ElevatorFloors: []int{10, 5}, InMine: true}
	s.Normalize()
	assert.Equal(t, 12, s.CurrentFloor)
	assert.Equal(t, 12, s.DeepestFloor)
	assert.Equal(t, []int{5, 10}, s.ElevatorFloors, "stops up to the current floor survive")

	out := SessionState{CurrentFloor: 12, DeepestFloor: 3, InMine: false}
	out.Normalize()
	assert.Equal(t, 3, out.DeepestFloor, "a session outside the mine keeps its deepest floor")
}

func TestSessionState_CloneIsIndependent(t *testing.T) {
	s := SessionState{ElevatorFloors: []int{5}}
	c := s.Clone()
	c.ElevatorFloors[0] = 10
	assert.Equal(t, 5, s.ElevatorFloors[0])
	assert.False(t, s.Equal(c))
}

func TestPlayerCombatState_TakeHitClampsAndGrantsWindow(t *testing.T) {
	p := PlayerCombatState{Health: 10, MaxHealth: 100, Gold: 1000}
	p.TakeHit(15, PlayerInvincibility)
	assert.Equal(t, 0.0, p.Health)
	assert.True(t, p.KnockedOut())
	assert.True(t, p.Invincible())

	p.Invincibility.Tick(PlayerInvincibility)
	assert.False(t, p.Invincible())

	p.Recover()
	assert.Equal(t, 50.0, p.Health)
	assert.Equal(t, 100, KnockoutGoldLoss(p.Gold))
}

func TestKnockoutGoldLoss_RoundsDown(t *testing.T) {
	assert.Equal(t, 0, KnockoutGoldLoss(9))
	assert.Equal(t, 1, KnockoutGoldLoss(19))
	assert.Equal(t, 0, KnockoutGoldLoss(-50))
}

func TestRock_HitSaturates(t *testing.T) {
	r := Rock{Health: 2, MaxHealth: 2}
	require.False(t, r.Hit(RockDamage(TierBasic)))
	require.True(t, r.Hit(RockDamage(TierBasic)))
	require.True(t, r.Hit(4))
	assert.Zero(t, r.Health)
}

func TestTimers(t *testing.T) {
	var c Countdown
	assert.True(t, c.Ready())
	c.Reset(150 * time.Millisecond)
	c.Tick(100 * time.Millisecond)
	assert.False(t, c.Ready())
	c.Tick(100 * time.Millisecond)
	assert.True(t, c.Ready())
	assert.Zero(t, c.Remaining)

	r := NewRepeating(time.Second)
	assert.False(t, r.Tick(600*time.Millisecond))
	assert.True(t, r.Tick(600*time.Millisecond))
	assert.Equal(t, 200*time.Millisecond, r.Elapsed)
	assert.False(t, r.Tick(0))
}

func TestGreedySteps_PrefersLargerAxis(t *testing.T) {
	steps := GreedySteps(GridPos{X: 5, Y: 5}, GridPos{X: 9, Y: 6})
	assert.Equal(t, GridPos{X: 6, Y: 5}, steps[0])
	assert.Equal(t, GridPos{X: 5, Y: 6}, steps[1])

	steps = GreedySteps(GridPos{X: 5, Y: 5}, GridPos{X: 4, Y: 1})
	assert.Equal(t, GridPos{X: 5, Y: 4}, steps[0])
	assert.Equal(t, GridPos{X: 4, Y: 5}, steps[1])
}

func TestDirectionFromAxis_VerticalWins(t *testing.T) {
	d, ok := DirectionFromAxis(1, -1)
	require.True(t, ok)
	assert.Equal(t, DirDown, d)
	d, ok = DirectionFromAxis(-1, 0)
	require.True(t, ok)
	assert.Equal(t, DirLeft, d)
	_, ok = DirectionFromAxis(0, 0)
	assert.False(t, ok)
}

func TestParseToolTier(t *testing.T) {
	tier, err := ParseToolTier(" Gold ")
	require.NoError(t, err)
	assert.Equal(t, TierGold, tier)
	_, err = ParseToolTier("mithril")
	assert.Error(t, err)
}
