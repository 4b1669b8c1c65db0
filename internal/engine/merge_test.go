package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

func leveled(classID, className, tag string, order, students, start, end int) models.Session {
	s := session(classID, className, students, start, end)
	s.LevelTag = tag
	s.LevelOrder = order
	return s
}

func TestSuggestMergesPairsCompatibleLevels(t *testing.T) {
	sessions := []models.Session{
		leveled("c1", "EiE-3", "EiE", 3, 8, 540, 600),
		leveled("c2", "EiE-5", "EiE", 5, 9, 540, 600),
	}
	rooms := []models.Room{
		room("101", "1F", 12), // too small for 17
		room("102", "1F", 20),
	}

	suggestions := New(Options{}).SuggestMerges(sessions, rooms)

	require.Len(t, suggestions, 1)
	s := suggestions[0]
	assert.Equal(t, 17, s.CombinedStudents)
	assert.Equal(t, 2, s.LevelDiff)
	assert.Equal(t, "102", s.SuggestedRoom)
	assert.ElementsMatch(t, []string{sessions[0].ID(), sessions[1].ID()}, s.SessionIDs)
	assert.NotEmpty(t, s.Reason)
}

func TestSuggestMergesSkipRules(t *testing.T) {
	base := func() (models.Session, models.Session) {
		return leveled("c1", "EiE-3", "EiE", 3, 8, 540, 600),
			leveled("c2", "EiE-5", "EiE", 5, 9, 540, 600)
	}
	bigRoom := []models.Room{room("102", "1F", 30)}

	t.Run("equal suffix is two sections of one class", func(t *testing.T) {
		a, b := base()
		b.ClassName = "EiE-3"
		b.LevelOrder = 3
		assert.Empty(t, New(Options{}).SuggestMerges([]models.Session{a, b}, bigRoom))
	})

	t.Run("suffix distance above two", func(t *testing.T) {
		a, b := base()
		b.ClassName = "EiE-6"
		b.LevelOrder = 6
		assert.Empty(t, New(Options{}).SuggestMerges([]models.Session{a, b}, bigRoom))
	})

	t.Run("different level tags", func(t *testing.T) {
		a, b := base()
		b.LevelTag = "GiG"
		assert.Empty(t, New(Options{}).SuggestMerges([]models.Session{a, b}, bigRoom))
	})

	t.Run("different time windows never group", func(t *testing.T) {
		a, b := base()
		b.StartMin, b.EndMin = 600, 660
		assert.Empty(t, New(Options{}).SuggestMerges([]models.Session{a, b}, bigRoom))
	})

	t.Run("already sharing a room", func(t *testing.T) {
		a, b := base()
		a.AssignedRoom = "102"
		b.AssignedRoom = "102"
		assert.Empty(t, New(Options{}).SuggestMerges([]models.Session{a, b}, bigRoom))
	})

	t.Run("no room fits the combined count", func(t *testing.T) {
		a, b := base()
		assert.Empty(t, New(Options{}).SuggestMerges([]models.Session{a, b}, []models.Room{room("101", "1F", 12)}))
	})

	t.Run("sessions without level metadata are ignored", func(t *testing.T) {
		a := session("c1", "MathA-1", 8, 540, 600)
		b := session("c2", "MathA-2", 9, 540, 600)
		assert.Empty(t, New(Options{}).SuggestMerges([]models.Session{a, b}, bigRoom))
	})
}

func TestSuggestMergesUnboundedRoomAlwaysFits(t *testing.T) {
	sessions := []models.Session{
		leveled("c1", "EiE-3", "EiE", 3, 40, 540, 600),
		leveled("c2", "EiE-4", "EiE", 4, 45, 540, 600),
	}
	rooms := []models.Room{room("Hall", "1F", 0)}

	suggestions := New(Options{}).SuggestMerges(sessions, rooms)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "Hall", suggestions[0].SuggestedRoom)
}
