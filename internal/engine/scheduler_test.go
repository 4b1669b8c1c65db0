package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

func defaultWeights() models.Weights {
	return models.Weights{
		SubjectAffinity:  50,
		CapacityFit:      50,
		TeacherProximity: 50,
		Distribution:     50,
		GradeGrouping:    50,
	}
}

func allConstraints() models.Constraints {
	return models.Constraints{EnforceCapacity: true, EnforceLab: true, PreferConsecutive: true}
}

func session(classID, className string, students, start, end int) models.Session {
	return models.Session{
		ClassID:      classID,
		ClassName:    className,
		Subject:      "Math",
		TeacherName:  "Kim",
		Date:         "2026-03-02",
		PeriodID:     "p-" + classID,
		StudentCount: students,
		StartMin:     start,
		EndMin:       end,
	}
}

func room(name, floor string, capacity int) models.Room {
	return models.Room{Name: name, Floor: floor, Capacity: capacity}
}

func TestAssignPlacesOverlappingSessionsInDifferentRooms(t *testing.T) {
	sessions := []models.Session{
		session("c1", "MathA-1", 10, 540, 600),
		session("c2", "MathA-2", 12, 540, 600),
	}
	rooms := make([]models.Room, 0, 10)
	for i := 1; i <= 10; i++ {
		rooms = append(rooms, room(fmt.Sprintf("%d01", i), fmt.Sprintf("%dF", i%4+1), 25))
	}

	result := New(Options{}).Assign(sessions, rooms, defaultWeights(), allConstraints())

	require.Equal(t, 2, result.Stats.Assigned)
	assert.Zero(t, result.Stats.Unassigned)
	assert.NotEmpty(t, result.Sessions[0].AssignedRoom)
	assert.NotEmpty(t, result.Sessions[1].AssignedRoom)
	assert.NotEqual(t, result.Sessions[0].AssignedRoom, result.Sessions[1].AssignedRoom)
	assert.Empty(t, result.Conflicts)
}

func TestAssignPrefersHighUtilizationRoom(t *testing.T) {
	sessions := []models.Session{session("c1", "MathA-1", 10, 540, 600)}
	rooms := []models.Room{
		room("101", "1F", 40),
		room("102", "1F", 14), // 10/14 lands in the >= 70% bucket
		room("103", "1F", 25),
	}
	weights := models.Weights{CapacityFit: 100}

	result := New(Options{}).Assign(sessions, rooms, weights, allConstraints())

	require.Equal(t, 1, result.Stats.Assigned)
	assert.Equal(t, "102", result.Sessions[0].AssignedRoom)
}

func TestAssignLeavesOversizedSessionUnassigned(t *testing.T) {
	sessions := []models.Session{session("c1", "MathA-1", 30, 540, 600)}
	rooms := []models.Room{
		room("101", "1F", 25),
		room("102", "1F", 20),
	}

	result := New(Options{}).Assign(sessions, rooms, defaultWeights(), allConstraints())

	assert.Equal(t, 1, result.Stats.Unassigned)
	assert.Zero(t, result.Stats.Assigned)
	assert.Empty(t, result.Sessions[0].AssignedRoom)
}

func TestAssignLabSessionsShareTheLabAndReportConflict(t *testing.T) {
	a := session("c1", "LAB-Chem", 8, 540, 600)
	b := session("c2", "LAB-Bio", 9, 570, 630)
	rooms := []models.Room{
		room("101", "1F", 25),
		room("Lab 1", "2F", 16),
	}

	result := New(Options{}).Assign([]models.Session{a, b}, rooms, defaultWeights(), allConstraints())

	require.Equal(t, 2, result.Stats.Assigned)
	assert.Equal(t, "Lab 1", result.Sessions[0].AssignedRoom)
	assert.Equal(t, "Lab 1", result.Sessions[1].AssignedRoom)

	// The lab bypass produced an overlapping pair on purpose; the detector
	// still reports it.
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, models.ConflictTypeTimeOverlap, result.Conflicts[0].Type)
	assert.Equal(t, "Lab 1", result.Conflicts[0].Room)
}

func TestAssignLabSessionNeverLandsInRegularRoom(t *testing.T) {
	sessions := []models.Session{session("c1", "LAB-Chem", 8, 540, 600)}
	rooms := []models.Room{room("101", "1F", 25)}

	result := New(Options{}).Assign(sessions, rooms, defaultWeights(), allConstraints())

	assert.Empty(t, result.Sessions[0].AssignedRoom)
	assert.Equal(t, 1, result.Stats.Unassigned)
}

func TestAssignResetsStaleAssignments(t *testing.T) {
	stale := session("c1", "MathA-1", 10, 540, 600)
	stale.AssignedRoom = "ghost"
	stale.Source = models.SourceManual

	result := New(Options{}).Assign([]models.Session{stale}, []models.Room{room("101", "1F", 25)}, defaultWeights(), allConstraints())

	assert.Equal(t, "101", result.Sessions[0].AssignedRoom)
	assert.Equal(t, models.SourceAuto, result.Sessions[0].Source)
}

func TestAssignDoesNotMutateInputs(t *testing.T) {
	sessions := []models.Session{session("c1", "MathA-1", 10, 540, 600)}
	rooms := []models.Room{room("101", "1F", 25)}

	_ = New(Options{}).Assign(sessions, rooms, defaultWeights(), allConstraints())

	assert.Empty(t, sessions[0].AssignedRoom)
	assert.Empty(t, string(sessions[0].Source))
}

func TestAssignIsDeterministic(t *testing.T) {
	sessions := []models.Session{
		session("c1", "MathA-1", 10, 540, 600),
		session("c2", "MathA-2", 12, 540, 600),
		session("c3", "Sci-3", 18, 560, 620),
		session("c4", "EiE-3", 8, 600, 660),
		session("c5", "EiE-5", 9, 600, 660),
	}
	for i := range sessions {
		if i >= 3 {
			sessions[i].LevelTag = "EiE"
			sessions[i].LevelOrder = 3 + 2*(i-3)
		}
	}
	rooms := []models.Room{
		room("101", "1F", 25),
		room("102", "1F", 14),
		room("201", "2F", 30),
		room("Lab 1", "2F", 16),
	}

	eng := New(Options{})
	first := eng.Assign(sessions, rooms, defaultWeights(), allConstraints())
	second := eng.Assign(sessions, rooms, defaultWeights(), allConstraints())

	assert.Equal(t, first, second)
}

// The placement order is computed once against the still-empty tracker, so
// it degenerates to descending student count; it is deliberately not a true
// online most-constrained heuristic. Changing that semantic should make
// this test fail visibly.
func TestAssignOrderComputedUpfrontFavorsLargerSessions(t *testing.T) {
	small := session("c1", "MathA-1", 10, 540, 600)
	large := session("c2", "MathA-2", 12, 540, 600)
	rooms := []models.Room{room("101", "1F", 25)}

	result := New(Options{}).Assign([]models.Session{small, large}, rooms, defaultWeights(), allConstraints())

	assert.Empty(t, result.Sessions[0].AssignedRoom, "smaller session loses the only room")
	assert.Equal(t, "101", result.Sessions[1].AssignedRoom)
	assert.Equal(t, 1, result.Stats.Unassigned)
}

func TestAssignAutoPlacementsNeverOverlapOutsideTheLab(t *testing.T) {
	sessions := []models.Session{
		session("c1", "MathA-1", 10, 540, 600),
		session("c2", "MathA-2", 12, 550, 610),
		session("c3", "Sci-2", 14, 560, 620),
		session("c4", "Eng-1", 9, 540, 620),
	}
	rooms := []models.Room{
		room("101", "1F", 25),
		room("102", "1F", 25),
		room("201", "2F", 25),
		room("202", "2F", 25),
	}

	result := New(Options{}).Assign(sessions, rooms, defaultWeights(), allConstraints())

	assert.Empty(t, result.Conflicts)
	for i, a := range result.Sessions {
		for _, b := range result.Sessions[i+1:] {
			if a.AssignedRoom == "" || a.AssignedRoom != b.AssignedRoom {
				continue
			}
			ivA := Interval{Start: a.StartMin, End: a.EndMin}
			ivB := Interval{Start: b.StartMin, End: b.EndMin}
			assert.False(t, ivA.Overlaps(ivB), "%s and %s overlap in %s", a.ClassName, b.ClassName, a.AssignedRoom)
		}
	}
}

func TestAssignKeepsConsecutiveSessionsTogether(t *testing.T) {
	first := session("c1", "MathA-1", 10, 540, 600)
	first.PeriodID = "p1"
	next := session("c1", "MathA-1", 10, 605, 665)
	next.PeriodID = "p2"
	filler := session("c2", "Sci-2", 12, 540, 600)
	rooms := []models.Room{
		room("101", "1F", 25),
		room("102", "1F", 25),
	}

	result := New(Options{}).Assign([]models.Session{first, next, filler}, rooms, defaultWeights(), allConstraints())

	var firstRoom, nextRoom string
	for _, s := range result.Sessions {
		switch s.PeriodID {
		case "p1":
			firstRoom = s.AssignedRoom
		case "p2":
			nextRoom = s.AssignedRoom
		}
	}
	require.NotEmpty(t, firstRoom)
	assert.Equal(t, firstRoom, nextRoom, "back-to-back sessions of one class stay in one room")
}
