package models

import (
	"time"

	"github.com/lib/pq"
)

// Room represents a physical room in the academy. Capacity 0 means
// unbounded/unknown and is exempt from capacity enforcement.
type Room struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	Floor             string         `db:"floor" json:"floor"`
	Capacity          int            `db:"capacity" json:"capacity"`
	PreferredSubjects pq.StringArray `db:"preferred_subjects" json:"preferred_subjects"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// RoomFilter defines filter criteria for listing rooms.
type RoomFilter struct {
	Floor     string
	Subject   string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
