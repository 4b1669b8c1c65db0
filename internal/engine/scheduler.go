package engine

import (
	"sort"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// Engine assigns rooms to the sessions of one target day. A run is a pure,
// deterministic batch computation: it copies its inputs, mutates only the
// copy, and returns a complete result even when sessions stay unassigned or
// conflicts remain.
type Engine struct {
	opts Options
}

// New builds an engine with defaults applied for unset options.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Assign runs the greedy scheduler over the sessions and rooms, then the
// conflict detector and merge suggester over the finalized assignment.
func (e *Engine) Assign(sessions []models.Session, rooms []models.Room, weights models.Weights, constraints models.Constraints) models.AssignmentResult {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)

	// A run never reads stale assignments from a previous one.
	for i := range out {
		out[i].AssignedRoom = ""
		out[i].Source = models.SourceAuto
	}

	roomNames := make([]string, len(rooms))
	roomsByName := make(map[string]models.Room, len(rooms))
	for i, room := range rooms {
		roomNames[i] = room.Name
		roomsByName[room.Name] = room
	}
	occ := NewOccupancy(roomNames)

	affinity := e.opts.FloorAffinity
	if affinity == nil {
		affinity = deriveFloorAffinity(rooms)
	}
	ctx := &scoreContext{
		occ:         occ,
		placed:      out,
		roomsByName: roomsByName,
		affinity:    affinity,
		weights:     weights,
		constraints: constraints,
	}

	for _, idx := range e.orderSessions(out, rooms, occ) {
		s := out[idx]
		best := ScoreRejected
		chosen := ""
		for _, room := range e.candidateRooms(s, rooms, occ) {
			score := e.scoreRoom(room, s, ctx)
			if score <= ScoreRejected {
				continue
			}
			// Strictly-highest wins; ties keep the first room in list order.
			if score > best {
				best = score
				chosen = room.Name
			}
		}
		if chosen == "" {
			// No valid room is a normal outcome, not an error.
			continue
		}
		out[idx].AssignedRoom = chosen
		occ.Insert(chosen, Interval{Start: s.StartMin, End: s.EndMin}, s.ID())
	}

	conflicts := e.DetectConflicts(out)
	suggestions := e.SuggestMerges(out, rooms)

	stats := models.AssignmentStats{
		Total:            len(out),
		Conflicts:        len(conflicts),
		MergeSuggestions: len(suggestions),
	}
	for _, s := range out {
		if s.AssignedRoom != "" {
			stats.Assigned++
		} else {
			stats.Unassigned++
		}
	}

	return models.AssignmentResult{
		Sessions:    out,
		Conflicts:   conflicts,
		Suggestions: suggestions,
		Stats:       stats,
	}
}

// orderSessions computes the most-constrained-first placement order once,
// against the still-empty tracker: ascending by conflict-free room count,
// tie-broken descending by student count. The counts are deliberately not
// re-evaluated as rooms fill up during the run.
func (e *Engine) orderSessions(sessions []models.Session, rooms []models.Room, occ *Occupancy) []int {
	type ranked struct {
		idx       int
		freeRooms int
		students  int
	}
	order := make([]ranked, len(sessions))
	for i, s := range sessions {
		iv := Interval{Start: s.StartMin, End: s.EndMin}
		free := 0
		for _, room := range rooms {
			if !occ.WouldConflict(room.Name, iv) {
				free++
			}
		}
		order[i] = ranked{idx: i, freeRooms: free, students: s.StudentCount}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].freeRooms != order[j].freeRooms {
			return order[i].freeRooms < order[j].freeRooms
		}
		return order[i].students > order[j].students
	})
	result := make([]int, len(order))
	for i, r := range order {
		result[i] = r.idx
	}
	return result
}

// candidateRooms narrows the room list for one session. Lab sessions only
// ever see lab rooms, and skip the time-conflict filter entirely: two lab
// sessions may legitimately share the one lab and surface as a detected
// conflict afterwards.
func (e *Engine) candidateRooms(s models.Session, rooms []models.Room, occ *Occupancy) []models.Room {
	iv := Interval{Start: s.StartMin, End: s.EndMin}
	candidates := make([]models.Room, 0, len(rooms))
	if e.opts.LabClassPattern.MatchString(s.ClassName) {
		for _, room := range rooms {
			if e.opts.LabRoomPattern.MatchString(room.Name) {
				candidates = append(candidates, room)
			}
		}
		return candidates
	}
	for _, room := range rooms {
		if !occ.WouldConflict(room.Name, iv) {
			candidates = append(candidates, room)
		}
	}
	return candidates
}
