package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

func assigned(classID, className, periodID, roomName string, start, end int) models.Session {
	s := session(classID, className, 10, start, end)
	s.PeriodID = periodID
	s.AssignedRoom = roomName
	return s
}

func TestDetectConflictsReportsOverlapInSameRoom(t *testing.T) {
	sessions := []models.Session{
		assigned("c1", "MathA-1", "p1", "101", 540, 600),
		assigned("c2", "Sci-2", "p2", "101", 570, 630),
	}

	conflicts := New(Options{}).DetectConflicts(sessions)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "101", conflicts[0].Room)
	assert.Equal(t, models.ConflictTypeTimeOverlap, conflicts[0].Type)
	assert.ElementsMatch(t, []string{sessions[0].ID(), sessions[1].ID()}, conflicts[0].SessionIDs)
}

func TestDetectConflictsExemptions(t *testing.T) {
	cases := []struct {
		name string
		a, b models.Session
	}{
		{
			"same period is intentional co-location",
			assigned("c1", "MathA-1", "p1", "101", 540, 600),
			assigned("c2", "MathA-2", "p1", "101", 540, 600),
		},
		{
			"same class is not a conflict",
			assigned("c1", "MathA-1", "p1", "101", 540, 600),
			assigned("c1", "MathA-1", "p2", "101", 570, 630),
		},
		{
			"different rooms never conflict",
			assigned("c1", "MathA-1", "p1", "101", 540, 600),
			assigned("c2", "Sci-2", "p2", "102", 540, 600),
		},
		{
			"touching endpoints are fine",
			assigned("c1", "MathA-1", "p1", "101", 540, 600),
			assigned("c2", "Sci-2", "p2", "101", 600, 660),
		},
		{
			"unassigned sessions are skipped",
			assigned("c1", "MathA-1", "p1", "", 540, 600),
			assigned("c2", "Sci-2", "p2", "", 540, 600),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, New(Options{}).DetectConflicts([]models.Session{tc.a, tc.b}))
		})
	}
}

// The detector must behave identically for manual overlays: callers re-run
// it after drag-and-drop edits without going through the scheduler.
func TestDetectConflictsIsSourceAgnostic(t *testing.T) {
	a := assigned("c1", "MathA-1", "p1", "101", 540, 600)
	a.Source = models.SourceManual
	b := assigned("c2", "Sci-2", "p2", "101", 570, 630)
	b.Source = models.SourcePreexisting

	conflicts := New(Options{}).DetectConflicts([]models.Session{a, b})
	assert.Len(t, conflicts, 1)
}
