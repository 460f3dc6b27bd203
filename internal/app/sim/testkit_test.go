package sim

import (
	"math/rand/v2"
	"testing"

	"go.uber.org/zap/zaptest"

	"deepmine/internal/app/ports"
	"deepmine/internal/domain/mine"
)

type notificationLog struct {
	got []ports.Notification
}

func (l *notificationLog) Notify(n ports.Notification) {
	l.got = append(l.got, n)
}

func (l *notificationLog) reset() {
	l.got = nil
}

func (l *notificationLog) sounds() []string {
	var out []string
	for _, n := range l.got {
		if c, ok := n.(ports.SoundCue); ok {
			out = append(out, c.ID)
		}
	}
	return out
}

func collect[T ports.Notification](l *notificationLog) []T {
	var out []T
	for _, n := range l.got {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func newTestSim(t *testing.T, stats PlayerStats) (*Simulation, *notificationLog) {
	t.Helper()
	log := &notificationLog{}
	s := New(Options{
		Logger:   zaptest.NewLogger(t),
		Notifier: log,
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}, stats)
	return s, log
}

// startOn puts the simulation inside the mine on a hand-built floor.
func startOn(s *Simulation, bp mine.FloorBlueprint) {
	s.session.InMine = true
	s.session.CurrentFloor = bp.Floor
	s.session.RecordFloorReached(bp.Floor)
	s.SpawnFloor(bp)
}

func emptyBlueprint(floor int) mine.FloorBlueprint {
	return mine.FloorBlueprint{
		Floor:           floor,
		LadderPos:       mine.GridPos{X: 20, Y: 20},
		LadderRockIndex: mine.NoLadderRock,
		SpawnPos:        mine.SpawnPos,
	}
}

func stoneRock(pos mine.GridPos, health int) mine.RockSpec {
	return mine.RockSpec{Pos: pos, Health: health, Drop: mine.ItemStack{ItemID: mine.ItemStone, Quantity: 2}}
}
