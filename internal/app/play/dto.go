package play

import (
	"time"

	"deepmine/internal/app/ports"
	"deepmine/internal/app/sim"
	"deepmine/internal/domain/calendar"
	"deepmine/internal/domain/mine"
)

type PlayerView struct {
	Health     float64        `json:"health"`
	MaxHealth  float64        `json:"max_health"`
	Gold       int            `json:"gold"`
	Invincible bool           `json:"invincible"`
	Tool       mine.ToolKind  `json:"tool"`
	Tier       string         `json:"tier"`
	Facing     mine.Direction `json:"facing"`
}

type RockView struct {
	Pos       mine.GridPos `json:"pos"`
	Health    int          `json:"health"`
	MaxHealth int          `json:"max_health"`
}

type EnemyView struct {
	ID        int            `json:"id"`
	Kind      mine.EnemyKind `json:"kind"`
	Pos       mine.GridPos   `json:"pos"`
	Health    float64        `json:"health"`
	MaxHealth float64        `json:"max_health"`
}

// ClockView tells a HUD how long the player has before passing out.
type ClockView struct {
	Day              int            `json:"day"`
	Phase            calendar.Phase `json:"phase"`
	PhaseRemainingMS int64          `json:"phase_remaining_ms"`
	NextDayEnd       time.Time      `json:"next_day_end"`
}

// View is the read model served to HUDs and spectators.
type View struct {
	PlayerID        string                `json:"player_id"`
	Phase           sim.Phase             `json:"phase"`
	FloorLabel      string                `json:"floor_label,omitempty"`
	Session         mine.SessionState     `json:"session"`
	Active          mine.ActiveFloorState `json:"active"`
	Player          PlayerView            `json:"player"`
	Clock           ClockView             `json:"clock"`
	ElevatorOptions []sim.ElevatorOption  `json:"elevator_options,omitempty"`
	Ladder          *mine.GridPos         `json:"ladder,omitempty"`
	Exit            *mine.GridPos         `json:"exit,omitempty"`
	Rocks           []RockView            `json:"rocks,omitempty"`
	Enemies         []EnemyView           `json:"enemies,omitempty"`
	Version         int64                 `json:"version"`
}

type EventsResponse struct {
	Events []ports.MineEvent `json:"events"`
}
