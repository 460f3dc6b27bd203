package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"deepmine/internal/adapter/repo/gorm/model"
	"deepmine/internal/app/ports"
	"deepmine/internal/domain/mine"

	"gorm.io/gorm"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) GetByPlayerID(ctx context.Context, playerID string) (ports.SessionRecord, error) {
	var m model.MineSession
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SessionRecord{}, ports.ErrNotFound
		}
		return ports.SessionRecord{}, err
	}
	var floors []int
	if m.ElevatorFloors != "" {
		if err := json.Unmarshal([]byte(m.ElevatorFloors), &floors); err != nil {
			return ports.SessionRecord{}, fmt.Errorf("decode elevator floors for %s: %w", playerID, err)
		}
	}
	return ports.SessionRecord{
		PlayerID: m.PlayerID,
		State: mine.SessionState{
			CurrentFloor:   int(m.CurrentFloor),
			DeepestFloor:   int(m.DeepestFloor),
			ElevatorFloors: floors,
			InMine:         m.InMine,
		},
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, rec ports.SessionRecord, expectedVersion int64) error {
	floors := rec.State.ElevatorFloors
	if floors == nil {
		floors = []int{}
	}
	b, err := json.Marshal(floors)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.MineSession{
			PlayerID:       rec.PlayerID,
			CurrentFloor:   int32(rec.State.CurrentFloor),
			DeepestFloor:   int32(rec.State.DeepestFloor),
			ElevatorFloors: string(b),
			InMine:         rec.State.InMine,
			Version:        rec.Version,
			UpdatedAt:      rec.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.MineSession{}).
		Where("player_id = ? AND version = ?", rec.PlayerID, expectedVersion).
		Updates(map[string]any{
			"current_floor":   int32(rec.State.CurrentFloor),
			"deepest_floor":   int32(rec.State.DeepestFloor),
			"elevator_floors": string(b),
			"in_mine":         rec.State.InMine,
			"version":         rec.Version,
			"updated_at":      rec.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
