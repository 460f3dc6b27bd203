package play

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"deepmine/internal/app/ports"
	"deepmine/internal/app/sim"
	"deepmine/internal/domain/calendar"
	"deepmine/internal/domain/mine"
)

var (
	ErrInvalidRequest = errors.New("invalid mine request")
	ErrNotOnFloor     = errors.New("player is not on a mine floor")
)

const (
	defaultEventLimit = 50
	maxEventBacklog   = 1024
)

type Config struct {
	PlayerID     string
	TickInterval time.Duration
	Clock        calendar.Clock
	Player       sim.PlayerStats
	LootSeed     uint64
}

type Deps struct {
	Sessions  ports.SessionRepository
	Events    ports.EventRepository
	TxManager ports.TxManager
	Metrics   ports.MineMetrics
	// Notifier receives every notification once per flush, whether or not
	// the write to Sessions and Events succeeded.
	Notifier ports.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

// Service owns one player's mine simulation. All entry points share a single
// mutex, which keeps the simulation itself lock-free.
type Service struct {
	deps Deps
	cfg  Config
	log  *zap.Logger

	mu        sync.Mutex
	sim       *sim.Simulation
	input     sim.Input
	pending   []ports.Notification
	backlog   []ports.MineEvent
	gold      int
	version   int64
	saved     mine.SessionState
	lastTick  time.Time
	lastClock time.Time
}

func NewService(deps Deps, cfg Config) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Notifier == nil {
		deps.Notifier = ports.NopNotifier{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if strings.TrimSpace(cfg.PlayerID) == "" {
		cfg.PlayerID = "demo-player"
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}
	if cfg.Clock.DayLength() <= 0 {
		cfg.Clock = calendar.DefaultClock()
	}
	svc := &Service{
		deps: deps,
		cfg:  cfg,
		log:  deps.Logger.With(zap.String("player_id", cfg.PlayerID)),
		gold: cfg.Player.Gold,
	}
	svc.sim = sim.New(sim.Options{
		Logger:   svc.log.Named("sim"),
		Notifier: ports.NotifierFunc(svc.collect),
		Rand:     rand.New(rand.NewPCG(cfg.LootSeed, cfg.LootSeed^0x5851f42d4c957f2d)),
	}, cfg.Player)
	return svc
}

// collect runs under s.mu because the simulation only emits from inside
// service calls.
func (s *Service) collect(n ports.Notification) {
	s.pending = append(s.pending, n)
}

// Load restores the player's saved progress. A missing record starts fresh.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.deps.Sessions.GetByPlayerID(ctx, s.cfg.PlayerID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		s.version = 0
		s.saved = mine.SessionState{}
		s.sim.Restore(mine.SessionState{})
		s.log.Info("no saved mine session, starting fresh")
		return nil
	case err != nil:
		return fmt.Errorf("load mine session: %w", err)
	}
	s.version = rec.Version
	s.sim.Restore(rec.State)
	s.saved = s.sim.Session()
	s.log.Info("mine session restored",
		zap.Int64("version", rec.Version),
		zap.Int("current_floor", s.saved.CurrentFloor),
		zap.Int("deepest_floor", s.saved.DeepestFloor),
	)
	return nil
}

// Submit replaces the held movement axis and latches the one-shot buttons
// until the next tick consumes them.
func (s *Service) Submit(ctx context.Context, in sim.Input) (View, error) {
	if in.MoveX < -1 || in.MoveX > 1 || in.MoveY < -1 || in.MoveY > 1 {
		return View{}, fmt.Errorf("%w: move axis out of range", ErrInvalidRequest)
	}
	if in.Slot < 0 {
		return View{}, fmt.Errorf("%w: negative elevator slot", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.input
	s.input = sim.Input{
		MoveX:   in.MoveX,
		MoveY:   in.MoveY,
		Attack:  prev.Attack || in.Attack,
		Confirm: prev.Confirm || in.Confirm,
		Cancel:  prev.Cancel || in.Cancel,
		Slot:    in.Slot,
		Blocked: in.Blocked,
	}
	if in.Slot == 0 {
		s.input.Slot = prev.Slot
	}
	return s.viewLocked(), nil
}

// UseTool forwards an external tool swing to the next tick.
func (s *Service) UseTool(ctx context.Context, use sim.ToolUse) (View, error) {
	if strings.TrimSpace(string(use.Tool)) == "" {
		return View{}, fmt.Errorf("%w: tool is required", ErrInvalidRequest)
	}
	if !use.Tier.Valid() {
		return View{}, fmt.Errorf("%w: unknown tool tier %d", ErrInvalidRequest, use.Tier)
	}
	if !mine.InBounds(use.Target) {
		return View{}, fmt.Errorf("%w: target outside the floor", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sim.UseTool(use) {
		return View{}, ErrNotOnFloor
	}
	return s.viewLocked(), nil
}

func (s *Service) EnterMine(ctx context.Context) (View, error) {
	return s.apply(ctx, func(sm *sim.Simulation) bool { return sm.EnterMine() }, "already in the mine")
}

func (s *Service) LeaveMine(ctx context.Context) (View, error) {
	return s.apply(ctx, func(sm *sim.Simulation) bool { return sm.LeaveMine() }, "not in the mine")
}

// DayEnd delivers the end-of-day signal. It is not an error for the player
// to be outside the mine.
func (s *Service) DayEnd(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncPlayer()
	s.sim.DayEnd()
	s.flushBestEffort(ctx)
	return s.viewLocked(), nil
}

func (s *Service) apply(ctx context.Context, fn func(*sim.Simulation) bool, conflict string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncPlayer()
	if !fn(s.sim) {
		return View{}, fmt.Errorf("%w: %s", ports.ErrConflict, conflict)
	}
	s.flushBestEffort(ctx)
	return s.viewLocked(), nil
}

// flushBestEffort is used after a state change that has already happened in
// the simulation. The failure is recorded by flush and the write retried on
// the next one, so the caller still gets the new view.
func (s *Service) flushBestEffort(ctx context.Context) {
	if err := s.flush(ctx); err != nil {
		s.log.Debug("flush deferred", zap.Error(err))
	}
}

// Tick advances the simulation by dt using the latched input.
func (s *Service) Tick(ctx context.Context, dt time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncPlayer()
	s.sim.Tick(dt, s.input)
	s.input = sim.Input{MoveX: s.input.MoveX, MoveY: s.input.MoveY, Blocked: s.input.Blocked}
	return s.flush(ctx)
}

func (s *Service) syncPlayer() {
	s.sim.SetGold(s.gold)
}

func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Service) Events(ctx context.Context, limit int) (EventsResponse, error) {
	if limit < 0 {
		return EventsResponse{}, fmt.Errorf("%w: negative limit", ErrInvalidRequest)
	}
	if limit == 0 {
		limit = defaultEventLimit
	}
	events, err := s.deps.Events.ListByPlayerID(ctx, s.cfg.PlayerID, limit)
	if err != nil {
		return EventsResponse{}, err
	}
	return EventsResponse{Events: events}, nil
}

// Preview generates the blueprint for floor without touching the session.
func (s *Service) Preview(floor int) (mine.FloorBlueprint, error) {
	if floor < mine.MinFloor || floor > mine.MaxFloor {
		return mine.FloorBlueprint{}, fmt.Errorf("%w: floor must be between %d and %d", ErrInvalidRequest, mine.MinFloor, mine.MaxFloor)
	}
	return mine.GenerateFloor(floor), nil
}

// flush applies wallet changes, persists changed progress together with the
// notification log, and fans the notifications out. Delivery does not wait on
// storage: a failed write keeps its events in the backlog for the next flush,
// and unsaved progress is retried because s.saved is left untouched.
func (s *Service) flush(ctx context.Context) error {
	batch := s.pending
	s.pending = nil
	for _, n := range batch {
		if gc, ok := n.(ports.GoldChange); ok {
			s.gold = max(0, s.gold+gc.Amount)
		}
	}
	defer s.deliver(batch)

	state := s.sim.Session()
	if len(batch) == 0 && len(s.backlog) == 0 && state.Equal(s.saved) {
		return nil
	}

	now := s.deps.Now()
	floor := state.CurrentFloor
	events := slices.Clip(s.backlog)
	for _, n := range batch {
		events = append(events, ports.EventFromNotification(n, floor, now))
	}

	err := s.deps.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if !state.Equal(s.saved) {
			rec := ports.SessionRecord{PlayerID: s.cfg.PlayerID, State: state, Version: s.version + 1, UpdatedAt: now}
			if err := s.deps.Sessions.SaveWithVersion(txCtx, rec, s.version); err != nil {
				return err
			}
		}
		if len(events) == 0 {
			return nil
		}
		return s.deps.Events.Append(txCtx, s.cfg.PlayerID, events)
	})
	if err != nil {
		s.recordFailure(err)
		s.keepBacklog(events)
		return fmt.Errorf("persist mine session: %w", err)
	}
	s.backlog = nil
	if !state.Equal(s.saved) {
		s.version++
		s.saved = state
	}
	return nil
}

func (s *Service) deliver(batch []ports.Notification) {
	for _, n := range batch {
		if s.deps.Metrics != nil {
			s.deps.Metrics.RecordNotification(n)
		}
		s.deps.Notifier.Notify(n)
	}
}

func (s *Service) keepBacklog(events []ports.MineEvent) {
	if over := len(events) - maxEventBacklog; over > 0 {
		s.log.Warn("mine event backlog full, dropping oldest", zap.Int("dropped", over))
		events = events[over:]
	}
	s.backlog = events
}

func (s *Service) recordFailure(err error) {
	if errors.Is(err, ports.ErrConflict) {
		s.log.Warn("mine session version conflict", zap.Int64("version", s.version), zap.Error(err))
		if s.deps.Metrics != nil {
			s.deps.Metrics.RecordConflict()
		}
		// Adopt the stored version so the next save overwrites it.
		if rec, getErr := s.deps.Sessions.GetByPlayerID(context.Background(), s.cfg.PlayerID); getErr == nil {
			s.version = rec.Version
		}
		return
	}
	s.log.Error("persist mine session failed", zap.Error(err))
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordFailure()
	}
}

func (s *Service) viewLocked() View {
	tool, tier := s.sim.Loadout()
	player := s.sim.Player()
	v := View{
		PlayerID: s.cfg.PlayerID,
		Phase:    s.sim.Phase(),
		Session:  s.sim.Session(),
		Active:   s.sim.Active(),
		Player: PlayerView{
			Health:     player.Health,
			MaxHealth:  player.MaxHealth,
			Gold:       s.gold,
			Invincible: player.Invincible(),
			Tool:       tool,
			Tier:       tier.String(),
			Facing:     s.sim.Facing(),
		},
		Clock:   s.clockView(s.deps.Now()),
		Version: s.version,
	}
	if v.Phase == sim.PhaseElevatorChoice {
		v.ElevatorOptions = s.sim.ElevatorOptions()
	}

	f := s.sim.Floor()
	if f == nil {
		return v
	}
	v.FloorLabel = fmt.Sprintf("Floor %d", f.Number)
	if f.Ladder.Revealed {
		ladder := f.Ladder.Pos
		v.Ladder = &ladder
	}
	exit := f.Exit.Pos
	v.Exit = &exit
	v.Rocks = make([]RockView, 0, len(f.Rocks))
	for _, r := range f.Rocks {
		v.Rocks = append(v.Rocks, RockView{Pos: r.Pos, Health: r.Health, MaxHealth: r.MaxHealth})
	}
	slices.SortFunc(v.Rocks, func(a, b RockView) int { return comparePos(a.Pos, b.Pos) })
	v.Enemies = make([]EnemyView, 0, len(f.Enemies))
	for _, e := range f.Enemies {
		v.Enemies = append(v.Enemies, EnemyView{ID: e.ID, Kind: e.Kind, Pos: e.Pos, Health: e.Health, MaxHealth: e.MaxHealth})
	}
	return v
}

func (s *Service) clockView(now time.Time) ClockView {
	phase, remaining := s.cfg.Clock.PhaseAt(now)
	return ClockView{
		Day:              s.cfg.Clock.DayAt(now),
		Phase:            phase,
		PhaseRemainingMS: remaining.Milliseconds(),
		NextDayEnd:       s.cfg.Clock.NextDayEnd(now),
	}
}

func comparePos(a, b mine.GridPos) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
