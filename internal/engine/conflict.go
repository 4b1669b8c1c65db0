package engine

import (
	"fmt"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// DetectConflicts scans a finalized assignment for overlapping sessions left
// in the same room. Pairs sharing a period id are an intentional co-location
// and exempt. The detector does not care how a session got its room, so
// callers re-run it after any manual edit.
func (e *Engine) DetectConflicts(sessions []models.Session) []models.RoomConflict {
	conflicts := make([]models.RoomConflict, 0)
	for i := 0; i < len(sessions); i++ {
		a := sessions[i]
		if a.AssignedRoom == "" {
			continue
		}
		for j := i + 1; j < len(sessions); j++ {
			b := sessions[j]
			if b.AssignedRoom != a.AssignedRoom {
				continue
			}
			if a.ClassID == b.ClassID || a.PeriodID == b.PeriodID {
				continue
			}
			ivA := Interval{Start: a.StartMin, End: a.EndMin}
			ivB := Interval{Start: b.StartMin, End: b.EndMin}
			if !ivA.Overlaps(ivB) {
				continue
			}
			conflicts = append(conflicts, models.RoomConflict{
				Room:       a.AssignedRoom,
				SessionIDs: []string{a.ID(), b.ID()},
				ClassNames: []string{a.ClassName, b.ClassName},
				Type:       models.ConflictTypeTimeOverlap,
				Message:    fmt.Sprintf("%s and %s overlap in room %s", a.ClassName, b.ClassName, a.AssignedRoom),
			})
		}
	}
	return conflicts
}
