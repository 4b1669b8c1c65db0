package engine

import (
	"regexp"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// Options tunes the patterns and tables the engine evaluates against.
// Zero values fall back to sensible defaults so callers only set what the
// deployment actually customises.
type Options struct {
	// LabClassPattern marks a session as a lab session by its class name.
	LabClassPattern *regexp.Regexp
	// LabRoomPattern marks a room as a lab room by its name.
	LabRoomPattern *regexp.Regexp
	// FloorAffinity maps floor label -> subject -> preference score. When
	// nil, the table is derived from each room's preferred subjects.
	FloorAffinity map[string]map[string]float64
	// ConsecutiveGapMin is the grace window for the consecutive-session
	// rule: a same-class session ending within this many minutes before
	// the candidate session counts as consecutive.
	ConsecutiveGapMin int
}

var (
	defaultLabClassPattern = regexp.MustCompile(`(?i)\blab`)
	defaultLabRoomPattern  = regexp.MustCompile(`(?i)lab`)
)

const defaultConsecutiveGapMin = 5

func (o Options) withDefaults() Options {
	if o.LabClassPattern == nil {
		o.LabClassPattern = defaultLabClassPattern
	}
	if o.LabRoomPattern == nil {
		o.LabRoomPattern = defaultLabRoomPattern
	}
	if o.ConsecutiveGapMin <= 0 {
		o.ConsecutiveGapMin = defaultConsecutiveGapMin
	}
	return o
}

// deriveFloorAffinity builds the (floor, subject) preference table from the
// room catalog: a floor prefers every subject one of its rooms prefers.
func deriveFloorAffinity(rooms []models.Room) map[string]map[string]float64 {
	table := make(map[string]map[string]float64)
	for _, room := range rooms {
		for _, subject := range room.PreferredSubjects {
			if table[room.Floor] == nil {
				table[room.Floor] = make(map[string]float64)
			}
			table[room.Floor][subject] = affinityPresent
		}
	}
	return table
}
