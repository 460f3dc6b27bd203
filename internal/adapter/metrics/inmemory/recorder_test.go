package inmemory

import (
	"testing"

	"deepmine/internal/app/ports"
	"deepmine/internal/domain/mine"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordNotification(ports.SoundCue{ID: mine.SfxRockHit})
	r.RecordNotification(ports.SoundCue{ID: mine.SfxRockHit})
	r.RecordNotification(ports.SoundCue{ID: mine.SfxRockBreak})
	r.RecordNotification(ports.ItemPickup{ItemID: mine.ItemCopperOre, Quantity: 2})
	r.RecordNotification(ports.GoldChange{Amount: -100, Reason: mine.ReasonKnockout})
	r.RecordConflict()
	r.RecordFailure()

	s := r.Snapshot()
	if s.NotificationTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.NotificationTotal)
	}
	if s.ByKind[ports.KindSoundCue] != 3 {
		t.Fatalf("expected 3 sound cues, got %d", s.ByKind[ports.KindSoundCue])
	}
	if s.BySound[mine.SfxRockHit] != 2 || s.BySound[mine.SfxRockBreak] != 1 {
		t.Fatalf("unexpected sound counts: %+v", s.BySound)
	}
	if s.ItemsPicked[mine.ItemCopperOre] != 2 {
		t.Fatalf("expected 2 copper ore, got %d", s.ItemsPicked[mine.ItemCopperOre])
	}
	if s.GoldLost != 100 {
		t.Fatalf("expected 100 gold lost, got %d", s.GoldLost)
	}
	if s.PersistConflict != 1 || s.PersistFailure != 1 {
		t.Fatalf("expected one conflict and one failure, got %d/%d", s.PersistConflict, s.PersistFailure)
	}

	s.ByKind[ports.KindSoundCue] = 0
	if r.Snapshot().ByKind[ports.KindSoundCue] != 3 {
		t.Fatalf("snapshot must not alias recorder state")
	}
}
