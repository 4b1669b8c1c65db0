package models

import "fmt"

// AssignmentSource tracks how a session obtained its room.
type AssignmentSource string

const (
	// SourcePreexisting marks a room that was already set before this run.
	SourcePreexisting AssignmentSource = "PREEXISTING"
	// SourceAuto marks a room computed by the assignment engine.
	SourceAuto AssignmentSource = "AUTO"
	// SourceManual marks a room dragged in by a human after the run.
	SourceManual AssignmentSource = "MANUAL"
)

// Session is one concrete occurrence of a class on a target date, the unit
// the engine assigns a room to. Sessions are produced by flattening the
// weekly timetable plus per-occurrence overrides for one day.
type Session struct {
	ClassID      string           `json:"classId"`
	ClassName    string           `json:"className"`
	Subject      string           `json:"subject"`
	TeacherName  string           `json:"teacherName"`
	Date         string           `json:"date"`
	PeriodID     string           `json:"periodId"`
	StudentCount int              `json:"studentCount"`
	StartMin     int              `json:"startMin"`
	EndMin       int              `json:"endMin"`
	CurrentRoom  string           `json:"currentRoom,omitempty"`
	AssignedRoom string           `json:"assignedRoom,omitempty"`
	Source       AssignmentSource `json:"source"`

	// Leveled-subject metadata, consumed only by merge suggestions.
	// A session carries it when LevelTag is non-empty.
	LevelTag   string `json:"levelTag,omitempty"`
	LevelOrder int    `json:"levelOrder,omitempty"`
}

// ID returns the composite identity of the session occurrence.
func (s Session) ID() string {
	return fmt.Sprintf("%s:%s:%s", s.ClassID, s.Date, s.PeriodID)
}
