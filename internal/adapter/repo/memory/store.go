package memory

import (
	"context"
	"sync"

	"deepmine/internal/app/ports"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]ports.SessionRecord
	events   map[string][]ports.MineEvent
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]ports.SessionRecord),
		events:   make(map[string][]ports.MineEvent),
	}
}

type txKey struct{}

// lock takes the store lock unless ctx already runs inside RunInTx, which
// holds it for the whole transaction.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func (s *Store) SeedSession(rec ports.SessionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.State = rec.State.Clone()
	s.sessions[rec.PlayerID] = rec
}
