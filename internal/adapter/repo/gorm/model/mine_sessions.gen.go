package model

import "time"

const TableNameMineSession = "mine_sessions"

// MineSession mapped from table <mine_sessions>
type MineSession struct {
	PlayerID       string    `gorm:"column:player_id;primaryKey" json:"player_id"`
	CurrentFloor   int32     `gorm:"column:current_floor;not null" json:"current_floor"`
	DeepestFloor   int32     `gorm:"column:deepest_floor;not null" json:"deepest_floor"`
	ElevatorFloors string    `gorm:"column:elevator_floors;not null;default:'[]'" json:"elevator_floors"`
	InMine         bool      `gorm:"column:in_mine;not null" json:"in_mine"`
	Version        int64     `gorm:"column:version;not null" json:"version"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName MineSession's table name
func (*MineSession) TableName() string {
	return TableNameMineSession
}
