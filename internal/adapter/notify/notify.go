// Package notify delivers mine notifications to the collaborators outside the
// mine: logs, spectators and anything else registered at startup.
package notify

import (
	"go.uber.org/zap"

	"deepmine/internal/app/ports"
)

// Fanout forwards each notification to every target in order.
type Fanout []ports.Notifier

func (f Fanout) Notify(n ports.Notification) {
	for _, target := range f {
		if target != nil {
			target.Notify(n)
		}
	}
}

// Log writes notifications as structured log lines. Sound cues are frequent,
// so they go to debug.
type Log struct {
	Logger *zap.Logger
}

func (l Log) Notify(n ports.Notification) {
	if l.Logger == nil {
		return
	}
	switch v := n.(type) {
	case ports.SoundCue:
		l.Logger.Debug("sound cue", zap.String("id", v.ID))
	case ports.MusicCue:
		l.Logger.Debug("music cue", zap.String("track", v.Track), zap.Bool("fade_in", v.FadeIn))
	case ports.ItemPickup:
		l.Logger.Info("item pickup", zap.String("item_id", v.ItemID), zap.Int("quantity", v.Quantity))
	case ports.GoldChange:
		l.Logger.Info("gold change", zap.Int("amount", v.Amount), zap.String("reason", v.Reason))
	case ports.StaminaDrain:
		l.Logger.Debug("stamina drain", zap.Float64("amount", v.Amount))
	case ports.MapTransition:
		l.Logger.Info("map transition", zap.String("map", string(v.Map)), zap.Int("x", v.X), zap.Int("y", v.Y))
	default:
		l.Logger.Warn("unknown notification", zap.String("kind", n.Kind()))
	}
}
