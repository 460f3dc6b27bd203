package ports

import (
	"testing"
	"time"

	"deepmine/internal/domain/mine"
)

func TestEventFromNotification(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := EventFromNotification(MapTransition{Map: mine.MapMineEntrance, X: 7, Y: 4}, 3, at)
	if ev.Type != KindMapTransition || ev.Floor != 3 || !ev.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event header: %+v", ev)
	}
	if ev.Payload["map"] != "mine_entrance" || ev.Payload["x"] != 7 || ev.Payload["y"] != 4 {
		t.Fatalf("unexpected payload: %+v", ev.Payload)
	}

	ev = EventFromNotification(GoldChange{Amount: -100, Reason: mine.ReasonKnockout}, 0, at)
	if ev.Payload["amount"] != -100 || ev.Payload["reason"] != mine.ReasonKnockout {
		t.Fatalf("unexpected gold payload: %+v", ev.Payload)
	}
}
