package gormrepo

import (
	"context"
	"encoding/json"

	"deepmine/internal/adapter/repo/gorm/model"
	"deepmine/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, playerID string, events []ports.MineEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.MineEvent, 0, len(events))
	for _, e := range events {
		payload := e.Payload
		if payload == nil {
			payload = map[string]any{}
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		rows = append(rows, model.MineEvent{
			PlayerID:   playerID,
			Type:       e.Type,
			Floor:      int32(e.Floor),
			OccurredAt: e.OccurredAt,
			Payload:    string(b),
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListByPlayerID returns the most recent events, newest first.
func (r EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]ports.MineEvent, error) {
	rows := []model.MineEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.MineEvent{PlayerID: playerID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.MineEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if row.Payload != "" {
			_ = json.Unmarshal([]byte(row.Payload), &payload)
		}
		out = append(out, ports.MineEvent{
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Floor:      int(row.Floor),
			Payload:    payload,
		})
	}
	return out, nil
}
