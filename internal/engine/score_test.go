package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

func newScoreContext(rooms []models.Room, placed []models.Session, w models.Weights, c models.Constraints) *scoreContext {
	names := make([]string, len(rooms))
	byName := make(map[string]models.Room, len(rooms))
	for i, r := range rooms {
		names[i] = r.Name
		byName[r.Name] = r
	}
	occ := NewOccupancy(names)
	for _, s := range placed {
		if s.AssignedRoom != "" {
			occ.Insert(s.AssignedRoom, Interval{Start: s.StartMin, End: s.EndMin}, s.ID())
		}
	}
	return &scoreContext{
		occ:         occ,
		placed:      placed,
		roomsByName: byName,
		affinity:    deriveFloorAffinity(rooms),
		weights:     w,
		constraints: c,
	}
}

func TestScoreRoomRejectsOverCapacity(t *testing.T) {
	eng := New(Options{})
	r := room("101", "1F", 20)
	s := session("c1", "MathA-1", 25, 540, 600)

	ctx := newScoreContext([]models.Room{r}, nil, defaultWeights(), allConstraints())
	assert.Equal(t, float64(ScoreRejected), eng.scoreRoom(r, s, ctx))

	// Capacity zero means unbounded, never a rejection.
	unbounded := room("102", "1F", 0)
	ctx = newScoreContext([]models.Room{unbounded}, nil, defaultWeights(), allConstraints())
	assert.Greater(t, eng.scoreRoom(unbounded, s, ctx), float64(ScoreRejected))
}

func TestScoreRoomCapacityOffScoresExceededNegative(t *testing.T) {
	eng := New(Options{})
	r := room("101", "1F", 20)
	s := session("c1", "MathA-1", 25, 540, 600)
	w := models.Weights{CapacityFit: 100}
	c := models.Constraints{}

	ctx := newScoreContext([]models.Room{r}, nil, w, c)
	score := eng.scoreRoom(r, s, ctx)
	assert.Greater(t, score, float64(ScoreRejected))
	assert.Negative(t, score)
}

func TestScoreRoomZeroWeightRemovesFactor(t *testing.T) {
	eng := New(Options{})
	r := room("101", "1F", 20)
	s := session("c1", "MathA-1", 25, 540, 600)

	ctx := newScoreContext([]models.Room{r}, nil, models.Weights{}, models.Constraints{})
	assert.Zero(t, eng.scoreRoom(r, s, ctx), "all weights zero leaves no contribution")
}

func TestScoreRoomLabRejectionAndPenalty(t *testing.T) {
	eng := New(Options{})
	regular := room("101", "1F", 20)
	lab := room("Lab 1", "1F", 20)
	c := allConstraints()

	labSession := session("c1", "LAB-Chem", 10, 540, 600)
	ctx := newScoreContext([]models.Room{regular, lab}, nil, models.Weights{}, c)
	assert.Equal(t, float64(ScoreRejected), eng.scoreRoom(regular, labSession, ctx))
	assert.Greater(t, eng.scoreRoom(lab, labSession, ctx), float64(ScoreRejected))

	// A regular session in a lab room is allowed but penalized, not rejected.
	mathSession := session("c2", "MathA-1", 10, 540, 600)
	assert.Equal(t, labRoomMisusePenalty, eng.scoreRoom(lab, mathSession, ctx))
	assert.Zero(t, eng.scoreRoom(regular, mathSession, ctx))

	// Disabling the lab rule removes both the rejection and the misuse penalty.
	relaxed := newScoreContext([]models.Room{regular, lab}, nil, models.Weights{}, models.Constraints{})
	assert.Zero(t, eng.scoreRoom(regular, labSession, relaxed))
	assert.Zero(t, eng.scoreRoom(lab, mathSession, relaxed))
}

func TestScoreRoomTeacherProximity(t *testing.T) {
	eng := New(Options{})
	rooms := []models.Room{
		room("101", "1F", 20),
		room("102", "1F", 20),
		room("301", "3F", 20),
	}
	placed := session("c1", "MathA-1", 10, 540, 600)
	placed.AssignedRoom = "101"
	s := session("c2", "MathB-1", 10, 600, 660)
	w := models.Weights{TeacherProximity: 100}

	ctx := newScoreContext(rooms, []models.Session{placed}, w, models.Constraints{})
	assert.Equal(t, teacherSameRoom, eng.scoreRoom(rooms[0], s, ctx))
	assert.Equal(t, teacherSameFloor, eng.scoreRoom(rooms[1], s, ctx))
	assert.Equal(t, -teacherFloorStep*2, eng.scoreRoom(rooms[2], s, ctx))
}

func TestScoreRoomDistributionDecays(t *testing.T) {
	eng := New(Options{})
	r := room("101", "1F", 40)
	w := models.Weights{Distribution: 100}
	s := session("c9", "Eng-1", 5, 700, 760)

	busy := []models.Session{}
	for i, win := range [][2]int{{480, 520}, {520, 540}, {540, 560}} {
		b := session(string(rune('a'+i)), "Busy", 5, win[0], win[1])
		b.AssignedRoom = "101"
		busy = append(busy, b)
	}

	empty := newScoreContext([]models.Room{r}, nil, w, models.Constraints{})
	loaded := newScoreContext([]models.Room{r}, busy, w, models.Constraints{})
	assert.Equal(t, distributionBase, eng.scoreRoom(r, s, empty))
	assert.Negative(t, eng.scoreRoom(r, s, loaded), "heavily loaded room scores negative")
}

func TestScoreRoomGradeGrouping(t *testing.T) {
	eng := New(Options{})
	r := room("101", "1F", 40)
	w := models.Weights{GradeGrouping: 100}

	placed := session("c1", "Math-3", 10, 540, 600)
	placed.AssignedRoom = "101"
	ctx := newScoreContext([]models.Room{r}, []models.Session{placed}, w, models.Constraints{})

	near := session("c2", "Eng-4", 10, 600, 660)
	far := session("c3", "Eng-7", 10, 600, 660)
	unknown := session("c4", "Eng", 10, 600, 660)

	assert.Equal(t, gradeClose, eng.scoreRoom(r, near, ctx))
	assert.Negative(t, eng.scoreRoom(r, far, ctx))
	assert.Zero(t, eng.scoreRoom(r, unknown, ctx), "unparseable grade contributes nothing")
}

func TestScoreRoomSubjectFloorAffinity(t *testing.T) {
	eng := New(Options{})
	rooms := []models.Room{
		{Name: "101", Floor: "1F", Capacity: 40, PreferredSubjects: []string{"Math"}},
		{Name: "201", Floor: "2F", Capacity: 40},
	}
	w := models.Weights{SubjectAffinity: 100}
	s := session("c1", "MathA-1", 10, 540, 600)

	ctx := newScoreContext(rooms, nil, w, models.Constraints{})
	assert.Equal(t, affinityPresent, eng.scoreRoom(rooms[0], s, ctx))
	assert.Zero(t, eng.scoreRoom(rooms[1], s, ctx), "absent table entry scores zero")
}

func TestParseLevelMeta(t *testing.T) {
	tag, order, ok := ParseLevelMeta("EiE-3")
	assert.True(t, ok)
	assert.Equal(t, "EiE", tag)
	assert.Equal(t, 3, order)

	_, _, ok = ParseLevelMeta("Homeroom")
	assert.False(t, ok)
}
