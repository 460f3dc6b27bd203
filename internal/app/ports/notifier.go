package ports

import "deepmine/internal/domain/mine"

// Notification is an outbound, fire-and-forget message from the mine to the
// rest of the game.
type Notification interface {
	Kind() string
}

const (
	KindItemPickup    = "item_pickup"
	KindGoldChange    = "gold_change"
	KindStaminaDrain  = "stamina_drain"
	KindMapTransition = "map_transition"
	KindSoundCue      = "sound_cue"
	KindMusicCue      = "music_cue"
)

type ItemPickup struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (ItemPickup) Kind() string { return KindItemPickup }

// GoldChange carries a signed delta; the mine only ever sends losses.
type GoldChange struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

func (GoldChange) Kind() string { return KindGoldChange }

type StaminaDrain struct {
	Amount float64 `json:"amount"`
}

func (StaminaDrain) Kind() string { return KindStaminaDrain }

type MapTransition struct {
	Map mine.MapID `json:"map"`
	X   int        `json:"x"`
	Y   int        `json:"y"`
}

func (MapTransition) Kind() string { return KindMapTransition }

type SoundCue struct {
	ID string `json:"id"`
}

func (SoundCue) Kind() string { return KindSoundCue }

type MusicCue struct {
	Track  string `json:"track"`
	FadeIn bool   `json:"fade_in"`
}

func (MusicCue) Kind() string { return KindMusicCue }

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
