package play

import (
	"context"
	"errors"
	"testing"
	"time"

	"deepmine/internal/app/ports"
	"deepmine/internal/app/sim"
	"deepmine/internal/domain/calendar"
	"deepmine/internal/domain/mine"
)

func TestService_LoadWithoutRecordStartsFresh(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1"})
	if err := f.svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	v := f.svc.View()
	if v.Phase != sim.PhaseNotInMine || v.Version != 0 {
		t.Fatalf("unexpected fresh view: %+v", v)
	}
}

func TestService_LoadRestoresSavedFloor(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1"})
	f.sessions.byPlayer["p1"] = ports.SessionRecord{
		PlayerID: "p1",
		State:    mine.SessionState{CurrentFloor: 6, DeepestFloor: 6, ElevatorFloors: []int{5}, InMine: true},
		Version:  4,
	}
	ctx := context.Background()
	if err := f.svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := f.svc.Tick(ctx, 0); err != nil {
		t.Fatalf("tick: %v", err)
	}
	v := f.svc.View()
	if v.FloorLabel != "Floor 6" || v.Version != 4 || !v.Active.Spawned {
		t.Fatalf("unexpected restored view: %+v", v)
	}
	if f.sessions.saves != 0 {
		t.Fatalf("restoring must not rewrite the session, got %d saves", f.sessions.saves)
	}
}

func TestService_EnterMinePersistsThenNotifies(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1"})
	ctx := context.Background()
	_ = f.svc.Load(ctx)

	v, err := f.svc.EnterMine(ctx)
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if v.Phase != sim.PhaseFloorActive || v.Version != 1 {
		t.Fatalf("unexpected view after enter: %+v", v)
	}
	rec := f.sessions.byPlayer["p1"]
	if !rec.State.InMine || rec.State.CurrentFloor != 1 || rec.Version != 1 {
		t.Fatalf("unexpected saved session: %+v", rec)
	}
	if len(f.events.events) != 2 || f.events.events[0].Type != ports.KindSoundCue || f.events.events[1].Type != ports.KindMusicCue {
		t.Fatalf("unexpected event log: %+v", f.events.events)
	}
	if len(f.notifier.got) != 2 || f.metrics.byKind[ports.KindSoundCue] != 1 {
		t.Fatalf("notifications not fanned out: %+v %+v", f.notifier.got, f.metrics.byKind)
	}

	if _, err := f.svc.EnterMine(ctx); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on second enter, got %v", err)
	}

	if err := f.svc.Tick(ctx, 16*time.Millisecond); err != nil {
		t.Fatalf("tick: %v", err)
	}
	v = f.svc.View()
	if v.FloorLabel != "Floor 1" || len(v.Rocks) != v.Active.RocksRemaining || v.Exit == nil {
		t.Fatalf("unexpected floor view: label=%q rocks=%d remaining=%d", v.FloorLabel, len(v.Rocks), v.Active.RocksRemaining)
	}
}

func TestService_DayEndChargesWallet(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1", Player: sim.PlayerStats{Health: 40, MaxHealth: 100, Gold: 1000}})
	ctx := context.Background()
	_ = f.svc.Load(ctx)
	if _, err := f.svc.EnterMine(ctx); err != nil {
		t.Fatalf("enter: %v", err)
	}
	_ = f.svc.Tick(ctx, 0)

	v, err := f.svc.DayEnd(ctx)
	if err != nil {
		t.Fatalf("day end: %v", err)
	}
	if v.Player.Gold != 900 || v.Player.Health != 50 || v.Phase != sim.PhaseNotInMine {
		t.Fatalf("unexpected view after pass out: %+v", v.Player)
	}
	if rec := f.sessions.byPlayer["p1"]; rec.State.InMine || rec.State.CurrentFloor != 0 {
		t.Fatalf("session not reset: %+v", rec.State)
	}
	last := f.events.events[len(f.events.events)-1]
	if last.Type != ports.KindMapTransition || last.Payload["map"] != string(mine.MapPlayerHouse) {
		t.Fatalf("expected transition home, got %+v", last)
	}

	before := len(f.events.events)
	if _, err := f.svc.DayEnd(ctx); err != nil {
		t.Fatalf("day end outside mine: %v", err)
	}
	if len(f.events.events) != before {
		t.Fatalf("day end outside the mine must be silent")
	}
}

func TestService_SubmitLatchesButtonsUntilTick(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1"})
	ctx := context.Background()
	_ = f.svc.Load(ctx)

	if _, err := f.svc.Submit(ctx, sim.Input{MoveX: 2}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if _, err := f.svc.Submit(ctx, sim.Input{Confirm: true, Slot: 2}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.svc.Submit(ctx, sim.Input{MoveY: 1}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !f.svc.input.Confirm || f.svc.input.Slot != 2 || f.svc.input.MoveY != 1 {
		t.Fatalf("buttons not latched: %+v", f.svc.input)
	}
	_ = f.svc.Tick(ctx, 0)
	if f.svc.input.Confirm || f.svc.input.Slot != 0 || f.svc.input.MoveY != 1 {
		t.Fatalf("tick must clear buttons but keep the axis: %+v", f.svc.input)
	}
}

func TestService_UseToolValidation(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1"})
	ctx := context.Background()
	_ = f.svc.Load(ctx)

	if _, err := f.svc.UseTool(ctx, sim.ToolUse{Tier: mine.TierBasic}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid request for missing tool, got %v", err)
	}
	if _, err := f.svc.UseTool(ctx, sim.ToolUse{Tool: mine.ToolPickaxe, Tier: 9}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid request for tier, got %v", err)
	}
	if _, err := f.svc.UseTool(ctx, sim.ToolUse{Tool: mine.ToolPickaxe, Target: mine.GridPos{X: 3, Y: 3}}); !errors.Is(err, ErrNotOnFloor) {
		t.Fatalf("expected not on floor, got %v", err)
	}
}

func TestService_VersionConflictIsReported(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1"})
	ctx := context.Background()
	_ = f.svc.Load(ctx)
	f.sessions.byPlayer["p1"] = ports.SessionRecord{PlayerID: "p1", Version: 7}

	v, err := f.svc.EnterMine(ctx)
	if err != nil {
		t.Fatalf("enter must succeed despite the conflict: %v", err)
	}
	if v.Phase != sim.PhaseFloorActive {
		t.Fatalf("unexpected phase after enter: %s", v.Phase)
	}
	if f.metrics.conflicts != 1 || len(f.notifier.got) != 2 {
		t.Fatalf("conflict must be counted and notifications still sent: %+v %d", f.metrics, len(f.notifier.got))
	}
	if len(f.events.events) != 0 {
		t.Fatalf("nothing is logged while the write fails: %+v", f.events.events)
	}

	if err := f.svc.Tick(ctx, 0); err != nil {
		t.Fatalf("retry after adopting stored version: %v", err)
	}
	if rec := f.sessions.byPlayer["p1"]; rec.Version != 8 || !rec.State.InMine {
		t.Fatalf("unexpected record after retry: %+v", rec)
	}
	if len(f.events.events) < 2 || f.events.events[0].Type != ports.KindSoundCue || f.events.events[1].Type != ports.KindMusicCue {
		t.Fatalf("backlogged events must be written on retry, got %+v", f.events.events)
	}
}

func TestService_EventLogFailureStillDelivers(t *testing.T) {
	f := newFixture(Config{PlayerID: "p1", Player: sim.PlayerStats{Gold: 1000}})
	ctx := context.Background()
	_ = f.svc.Load(ctx)
	if _, err := f.svc.EnterMine(ctx); err != nil {
		t.Fatalf("enter: %v", err)
	}
	f.notifier.got = nil
	f.events.err = errors.New("event log unavailable")

	v, err := f.svc.DayEnd(ctx)
	if err != nil {
		t.Fatalf("day end: %v", err)
	}
	if v.Phase != sim.PhaseNotInMine || v.Player.Gold != 900 {
		t.Fatalf("unexpected view after pass out: phase=%s gold=%d", v.Phase, v.Player.Gold)
	}
	var gold, transitions int
	for _, n := range f.notifier.got {
		switch n := n.(type) {
		case ports.GoldChange:
			gold++
			if n.Amount != -100 {
				t.Fatalf("unexpected gold change: %+v", n)
			}
		case ports.MapTransition:
			transitions++
		}
	}
	if gold != 1 || transitions != 1 {
		t.Fatalf("pass out must reach the notifier, got %+v", f.notifier.got)
	}
	if f.metrics.failures != 1 || f.metrics.byKind[ports.KindGoldChange] != 1 {
		t.Fatalf("failure and delivery must both be counted: %+v", f.metrics)
	}

	f.events.err = nil
	if err := f.svc.Tick(ctx, 0); err != nil {
		t.Fatalf("tick after recovery: %v", err)
	}
	var logged bool
	for _, e := range f.events.events {
		if e.Type == ports.KindGoldChange {
			logged = true
		}
	}
	if !logged {
		t.Fatalf("gold change must be logged once the store recovers: %+v", f.events.events)
	}
}

func TestService_PreviewBounds(t *testing.T) {
	f := newFixture(Config{})
	if _, err := f.svc.Preview(0); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid request for floor 0, got %v", err)
	}
	if _, err := f.svc.Preview(mine.MaxFloor + 1); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid request past the deepest floor, got %v", err)
	}
	bp, err := f.svc.Preview(10)
	if err != nil || bp.Floor != 10 {
		t.Fatalf("unexpected preview: %+v %v", bp.Floor, err)
	}
}

func TestService_StepDeliversDayEnd(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(Config{
		PlayerID: "p1",
		Player:   sim.PlayerStats{Gold: 200},
		Clock:    calendar.NewClock(calendar.ClockConfig{StartAt: start, DayDuration: time.Minute, NightDuration: time.Minute}),
	})
	ctx := context.Background()
	_ = f.svc.Load(ctx)
	_, _ = f.svc.EnterMine(ctx)

	f.now = start.Add(119 * time.Second)
	f.svc.lastTick = f.now
	f.svc.lastClock = f.now
	f.svc.step(ctx)
	if f.svc.View().Phase != sim.PhaseFloorActive {
		t.Fatalf("expected to still be underground before the boundary")
	}

	f.now = start.Add(121 * time.Second)
	f.svc.step(ctx)
	v := f.svc.View()
	if v.Phase != sim.PhaseNotInMine || v.Player.Gold != 180 {
		t.Fatalf("expected pass out at the day boundary, got phase=%s gold=%d", v.Phase, v.Player.Gold)
	}
}

func TestService_ViewReportsClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(Config{
		PlayerID: "p1",
		Clock:    calendar.NewClock(calendar.ClockConfig{StartAt: start, DayDuration: time.Minute, NightDuration: time.Minute}),
	})

	f.now = start.Add(30 * time.Second)
	c := f.svc.View().Clock
	if c.Day != 1 || c.Phase != calendar.PhaseDay || c.PhaseRemainingMS != 30000 {
		t.Fatalf("unexpected daytime clock: %+v", c)
	}
	if !c.NextDayEnd.Equal(start.Add(2 * time.Minute)) {
		t.Fatalf("unexpected next day end: %v", c.NextDayEnd)
	}

	f.now = start.Add(150 * time.Second)
	c = f.svc.View().Clock
	if c.Day != 2 || c.Phase != calendar.PhaseDay || !c.NextDayEnd.Equal(start.Add(4*time.Minute)) {
		t.Fatalf("unexpected second day clock: %+v", c)
	}

	f.now = start.Add(100 * time.Second)
	c = f.svc.View().Clock
	if c.Phase != calendar.PhaseNight || c.PhaseRemainingMS != 20000 {
		t.Fatalf("unexpected night clock: %+v", c)
	}
}
