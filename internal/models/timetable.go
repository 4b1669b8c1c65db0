package models

import "time"

// TimetableSlot is one recurring weekly timetable entry for a class. The
// slot repository flattens the entries of a weekday, combined with any
// per-occurrence overrides, into the Session list for one target date.
type TimetableSlot struct {
	ID           string    `db:"id" json:"id"`
	ClassID      string    `db:"class_id" json:"class_id"`
	ClassName    string    `db:"class_name" json:"class_name"`
	Subject      string    `db:"subject" json:"subject"`
	TeacherName  string    `db:"teacher_name" json:"teacher_name"`
	DayOfWeek    string    `db:"day_of_week" json:"day_of_week"`
	PeriodID     string    `db:"period_id" json:"period_id"`
	StartMin     int       `db:"start_min" json:"start_min"`
	EndMin       int       `db:"end_min" json:"end_min"`
	DefaultRoom  string    `db:"default_room" json:"default_room"`
	StudentCount int       `db:"student_count" json:"student_count"`
	LevelTag     string    `db:"level_tag" json:"level_tag"`
	LevelOrder   int       `db:"level_order" json:"level_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RoomOverride pins a room to one class occurrence on a specific date.
// Overrides are what the apply step persists, grouped by owning class.
type RoomOverride struct {
	ID        string           `db:"id" json:"id"`
	ClassID   string           `db:"class_id" json:"class_id"`
	Date      string           `db:"date" json:"date"`
	PeriodID  string           `db:"period_id" json:"period_id"`
	Room      string           `db:"room" json:"room"`
	Source    AssignmentSource `db:"source" json:"source"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// Pagination mirrors list metadata in API envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
