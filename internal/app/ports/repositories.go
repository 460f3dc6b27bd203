package ports

import (
	"context"
	"errors"
	"time"

	"deepmine/internal/domain/mine"
)

var (
	// ErrNotFound is returned when no mine session exists for a player yet.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers stale session versions and mine transitions that do
	// not apply in the current phase.
	ErrConflict = errors.New("conflict")
)

// TxManager groups a session save and its event append so neither lands
// without the other.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type SessionRecord struct {
	PlayerID  string
	State     mine.SessionState
	Version   int64
	UpdatedAt time.Time
}

// SessionRepository stores mine progress per player. SaveWithVersion must
// fail with ErrConflict when the stored version differs from expectedVersion;
// expectedVersion 0 creates the record.
type SessionRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (SessionRecord, error)
	SaveWithVersion(ctx context.Context, record SessionRecord, expectedVersion int64) error
}

type MineEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Floor      int            `json:"floor"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type EventRepository interface {
	Append(ctx context.Context, playerID string, events []MineEvent) error
	ListByPlayerID(ctx context.Context, playerID string, limit int) ([]MineEvent, error)
}
