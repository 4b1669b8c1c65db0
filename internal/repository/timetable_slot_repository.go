package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// TimetableSlotRepository reads the recurring weekly timetable the slot
// supplier flattens into sessions.
type TimetableSlotRepository struct {
	db *sqlx.DB
}

// NewTimetableSlotRepository creates a new timetable slot repository.
func NewTimetableSlotRepository(db *sqlx.DB) *TimetableSlotRepository {
	return &TimetableSlotRepository{db: db}
}

const slotColumns = "id, class_id, class_name, subject, teacher_name, day_of_week, period_id, start_min, end_min, default_room, student_count, level_tag, level_order, created_at, updated_at"

// ListByDay returns all weekly entries for one weekday, ordered by start
// time then class for stable downstream processing.
func (r *TimetableSlotRepository) ListByDay(ctx context.Context, dayOfWeek string) ([]models.TimetableSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM timetable_slots WHERE day_of_week = $1 ORDER BY start_min ASC, class_id ASC, period_id ASC", slotColumns)
	var slots []models.TimetableSlot
	if err := r.db.SelectContext(ctx, &slots, query, dayOfWeek); err != nil {
		return nil, fmt.Errorf("list timetable slots: %w", err)
	}
	return slots, nil
}
