package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// RoomOverrideRepository persists per-occurrence room assignments. The apply
// step writes them grouped by owning class inside one transaction.
type RoomOverrideRepository struct {
	db *sqlx.DB
}

// NewRoomOverrideRepository creates a new room override repository.
func NewRoomOverrideRepository(db *sqlx.DB) *RoomOverrideRepository {
	return &RoomOverrideRepository{db: db}
}

func (r *RoomOverrideRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListByDate returns all overrides for one date.
func (r *RoomOverrideRepository) ListByDate(ctx context.Context, date string) ([]models.RoomOverride, error) {
	const query = `SELECT id, class_id, date, period_id, room, source, created_at, updated_at
FROM room_overrides WHERE date = $1 ORDER BY class_id ASC, period_id ASC`
	var overrides []models.RoomOverride
	if err := r.db.SelectContext(ctx, &overrides, query, date); err != nil {
		return nil, fmt.Errorf("list room overrides: %w", err)
	}
	return overrides, nil
}

// UpsertBatch inserts or updates overrides for class occurrences.
func (r *RoomOverrideRepository) UpsertBatch(ctx context.Context, exec sqlx.ExtContext, overrides []models.RoomOverride) error {
	if len(overrides) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO room_overrides (id, class_id, date, period_id, room, source, created_at, updated_at)
VALUES (:id, :class_id, :date, :period_id, :room, :source, :created_at, :updated_at)
ON CONFLICT (class_id, date, period_id) DO UPDATE
SET room = EXCLUDED.room,
    source = EXCLUDED.source,
    updated_at = EXCLUDED.updated_at`

	for i := range overrides {
		override := &overrides[i]
		if override.ID == "" {
			override.ID = uuid.NewString()
		}
		if override.CreatedAt.IsZero() {
			override.CreatedAt = now
		}
		override.UpdatedAt = now
		if _, err := sqlx.NamedExecContext(ctx, target, query, override); err != nil {
			return fmt.Errorf("upsert room override: %w", err)
		}
	}
	return nil
}
