package ports

import "time"

// EventFromNotification turns a notification into its persisted form.
func EventFromNotification(n Notification, floor int, at time.Time) MineEvent {
	ev := MineEvent{Type: n.Kind(), OccurredAt: at, Floor: floor}
	switch v := n.(type) {
	case ItemPickup:
		ev.Payload = map[string]any{"item_id": v.ItemID, "quantity": v.Quantity}
	case GoldChange:
		ev.Payload = map[string]any{"amount": v.Amount, "reason": v.Reason}
	case StaminaDrain:
		ev.Payload = map[string]any{"amount": v.Amount}
	case MapTransition:
		ev.Payload = map[string]any{"map": string(v.Map), "x": v.X, "y": v.Y}
	case SoundCue:
		ev.Payload = map[string]any{"id": v.ID}
	case MusicCue:
		ev.Payload = map[string]any{"track": v.Track, "fade_in": v.FadeIn}
	}
	return ev
}
