package engine

// placement records one interval already claimed in a room during a run.
type placement struct {
	Interval
	SessionID string
}

// Occupancy tracks the intervals placed per room within a single scheduling
// run. It is populated incrementally and never shared across runs.
type Occupancy struct {
	rooms map[string][]placement
}

// NewOccupancy initialises an empty tracker entry for every room name.
func NewOccupancy(roomNames []string) *Occupancy {
	rooms := make(map[string][]placement, len(roomNames))
	for _, name := range roomNames {
		rooms[name] = nil
	}
	return &Occupancy{rooms: rooms}
}

// WouldConflict reports whether the interval strictly overlaps any interval
// already placed in the room.
func (o *Occupancy) WouldConflict(room string, iv Interval) bool {
	for _, p := range o.rooms[room] {
		if p.Overlaps(iv) {
			return true
		}
	}
	return false
}

// Insert appends the interval to the room's list. No dedup, no removal.
func (o *Occupancy) Insert(room string, iv Interval, sessionID string) {
	o.rooms[room] = append(o.rooms[room], placement{Interval: iv, SessionID: sessionID})
}

// Load returns how many intervals are currently placed in the room.
func (o *Occupancy) Load(room string) int {
	return len(o.rooms[room])
}
