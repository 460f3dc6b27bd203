package memory

import (
	"context"
	"slices"

	"deepmine/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, playerID string, events []ports.MineEvent) error {
	defer r.store.lock(ctx)()
	r.store.events[playerID] = append(r.store.events[playerID], events...)
	return nil
}

// ListByPlayerID returns the most recent events, newest first.
func (r EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]ports.MineEvent, error) {
	defer r.store.rlock(ctx)()
	all := r.store.events[playerID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := slices.Clone(all[len(all)-limit:])
	slices.Reverse(out)
	return out, nil
}
