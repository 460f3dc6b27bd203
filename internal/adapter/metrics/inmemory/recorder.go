package inmemory

import (
	"maps"
	"sync"

	"deepmine/internal/app/ports"
)

type Snapshot struct {
	NotificationTotal uint64            `json:"notification_total"`
	ByKind            map[string]uint64 `json:"by_kind"`
	BySound           map[string]uint64 `json:"by_sound"`
	GoldLost          uint64            `json:"gold_lost"`
	ItemsPicked       map[string]uint64 `json:"items_picked"`
	PersistConflict   uint64            `json:"persist_conflict"`
	PersistFailure    uint64            `json:"persist_failure"`
}

type Recorder struct {
	mu       sync.Mutex
	total    uint64
	byKind   map[string]uint64
	bySound  map[string]uint64
	items    map[string]uint64
	goldLost uint64
	conflict uint64
	failure  uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind:  map[string]uint64{},
		bySound: map[string]uint64{},
		items:   map[string]uint64{},
	}
}

func (r *Recorder) RecordNotification(n ports.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.byKind[n.Kind()]++
	switch v := n.(type) {
	case ports.SoundCue:
		r.bySound[v.ID]++
	case ports.ItemPickup:
		if v.Quantity > 0 {
			r.items[v.ItemID] += uint64(v.Quantity)
		}
	case ports.GoldChange:
		if v.Amount < 0 {
			r.goldLost += uint64(-v.Amount)
		}
	}
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		NotificationTotal: r.total,
		ByKind:            maps.Clone(r.byKind),
		BySound:           maps.Clone(r.bySound),
		GoldLost:          r.goldLost,
		ItemsPicked:       maps.Clone(r.items),
		PersistConflict:   r.conflict,
		PersistFailure:    r.failure,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
