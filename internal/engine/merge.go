package engine

import (
	"fmt"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// SuggestMerges scans sessions carrying leveled-subject metadata for pairs
// that could share one room: same time window, same level tag, numeric order
// suffixes that differ but sit within two levels, and some room big enough
// for both. Suggestions never mutate session state; acceptance is an
// external, caller-driven overlay.
func (e *Engine) SuggestMerges(sessions []models.Session, rooms []models.Room) []models.MergeSuggestion {
	type window struct {
		start int
		end   int
	}
	groups := make(map[window][]models.Session)
	var order []window
	for _, s := range sessions {
		if s.LevelTag == "" {
			continue
		}
		key := window{start: s.StartMin, end: s.EndMin}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	suggestions := make([]models.MergeSuggestion, 0)
	for _, key := range order {
		group := groups[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.AssignedRoom != "" && a.AssignedRoom == b.AssignedRoom {
					continue
				}
				if a.LevelTag != b.LevelTag {
					continue
				}
				diff := a.LevelOrder - b.LevelOrder
				if diff < 0 {
					diff = -diff
				}
				// Equal suffixes are two sections of the same class.
				if diff == 0 || diff > 2 {
					continue
				}
				combined := a.StudentCount + b.StudentCount
				room := firstFittingRoom(rooms, combined)
				if room == "" {
					continue
				}
				suggestions = append(suggestions, models.MergeSuggestion{
					SessionIDs:       []string{a.ID(), b.ID()},
					ClassNames:       []string{a.ClassName, b.ClassName},
					StartMin:         key.start,
					EndMin:           key.end,
					CombinedStudents: combined,
					LevelDiff:        diff,
					SuggestedRoom:    room,
					Reason: fmt.Sprintf("%s and %s share the same time window, %d level(s) apart; %d students fit in %s",
						a.ClassName, b.ClassName, diff, combined, room),
				})
			}
		}
	}
	return suggestions
}

// firstFittingRoom returns the first room in catalog order whose capacity
// holds the combined count. Capacity 0 is unbounded and always fits.
func firstFittingRoom(rooms []models.Room, combined int) string {
	for _, room := range rooms {
		if room.Capacity <= 0 || room.Capacity >= combined {
			return room.Name
		}
	}
	return ""
}
