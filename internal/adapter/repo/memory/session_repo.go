package memory

import (
	"context"

	"deepmine/internal/app/ports"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) GetByPlayerID(ctx context.Context, playerID string) (ports.SessionRecord, error) {
	defer r.store.rlock(ctx)()
	rec, ok := r.store.sessions[playerID]
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	rec.State = rec.State.Clone()
	return rec, nil
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, rec ports.SessionRecord, expectedVersion int64) error {
	defer r.store.lock(ctx)()
	current, ok := r.store.sessions[rec.PlayerID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
	} else if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	rec.State = rec.State.Clone()
	r.store.sessions[rec.PlayerID] = rec
	return nil
}
