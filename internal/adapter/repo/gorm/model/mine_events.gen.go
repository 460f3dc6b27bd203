package model

import "time"

const TableNameMineEvent = "mine_events"

// MineEvent mapped from table <mine_events>
type MineEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	PlayerID   string    `gorm:"column:player_id;not null" json:"player_id"`
	Type       string    `gorm:"column:type;not null" json:"type"`
	Floor      int32     `gorm:"column:floor;not null" json:"floor"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Payload    string    `gorm:"column:payload;not null;default:'{}'" json:"payload"`
}

// TableName MineEvent's table name
func (*MineEvent) TableName() string {
	return TableNameMineEvent
}
