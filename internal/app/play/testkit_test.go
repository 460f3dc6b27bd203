package play

import (
	"context"
	"maps"
	"time"

	"deepmine/internal/app/ports"
)

// stubTxManager rolls the session repo back when fn fails.
type stubTxManager struct {
	sessions *stubSessionRepo
}

func (m stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := maps.Clone(m.sessions.byPlayer)
	saves := m.sessions.saves
	if err := fn(ctx); err != nil {
		m.sessions.byPlayer = snapshot
		m.sessions.saves = saves
		return err
	}
	return nil
}

type stubSessionRepo struct {
	byPlayer map[string]ports.SessionRecord
	saves    int
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byPlayer: map[string]ports.SessionRecord{}}
}

func (r *stubSessionRepo) GetByPlayerID(_ context.Context, playerID string) (ports.SessionRecord, error) {
	rec, ok := r.byPlayer[playerID]
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r *stubSessionRepo) SaveWithVersion(_ context.Context, rec ports.SessionRecord, expectedVersion int64) error {
	current, ok := r.byPlayer[rec.PlayerID]
	if !ok && expectedVersion != 0 {
		return ports.ErrConflict
	}
	if ok && current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byPlayer[rec.PlayerID] = rec
	r.saves++
	return nil
}

type stubEventRepo struct {
	events []ports.MineEvent
	err    error
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []ports.MineEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListByPlayerID(_ context.Context, _ string, limit int) ([]ports.MineEvent, error) {
	if limit > 0 && len(r.events) > limit {
		return r.events[len(r.events)-limit:], nil
	}
	return r.events, nil
}

type stubMetrics struct {
	byKind    map[string]int
	conflicts int
	failures  int
}

func (m *stubMetrics) RecordNotification(n ports.Notification) {
	if m.byKind == nil {
		m.byKind = map[string]int{}
	}
	m.byKind[n.Kind()]++
}

func (m *stubMetrics) RecordConflict() { m.conflicts++ }
func (m *stubMetrics) RecordFailure()  { m.failures++ }

type recordingNotifier struct {
	got []ports.Notification
}

func (r *recordingNotifier) Notify(n ports.Notification) {
	r.got = append(r.got, n)
}

type fixture struct {
	svc      *Service
	sessions *stubSessionRepo
	events   *stubEventRepo
	metrics  *stubMetrics
	notifier *recordingNotifier
	now      time.Time
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		sessions: newStubSessionRepo(),
		events:   &stubEventRepo{},
		metrics:  &stubMetrics{},
		notifier: &recordingNotifier{},
		now:      time.Date(2026, 1, 1, 6, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(Deps{
		Sessions:  f.sessions,
		Events:    f.events,
		TxManager: stubTxManager{sessions: f.sessions},
		Metrics:   f.metrics,
		Notifier:  f.notifier,
		Now:       func() time.Time { return f.now },
	}, cfg)
	return f
}
