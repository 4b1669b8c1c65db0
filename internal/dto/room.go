package dto

// CreateRoomRequest registers a room in the catalog.
type CreateRoomRequest struct {
	Name              string   `json:"name" validate:"required"`
	Floor             string   `json:"floor"`
	Capacity          int      `json:"capacity" validate:"min=0"`
	PreferredSubjects []string `json:"preferredSubjects"`
}

// UpdateRoomRequest changes catalog attributes of a room. Nil fields are
// left untouched.
type UpdateRoomRequest struct {
	Name              *string   `json:"name"`
	Floor             *string   `json:"floor"`
	Capacity          *int      `json:"capacity" validate:"omitempty,min=0"`
	PreferredSubjects *[]string `json:"preferredSubjects"`
}

// RoomQuery filters the room catalog listing.
type RoomQuery struct {
	Floor     string `form:"floor"`
	Subject   string `form:"subject"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}
