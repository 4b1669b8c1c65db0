package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{"disjoint", Interval{540, 600}, Interval{660, 720}, false},
		{"touching endpoints", Interval{540, 600}, Interval{600, 660}, false},
		{"partial overlap", Interval{540, 600}, Interval{570, 630}, true},
		{"contained", Interval{540, 660}, Interval{570, 600}, true},
		{"identical", Interval{540, 600}, Interval{540, 600}, true},
		{"reversed partial", Interval{570, 630}, Interval{540, 600}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
		})
	}
}

func TestOccupancyTracksPerRoom(t *testing.T) {
	occ := NewOccupancy([]string{"201", "202"})

	assert.False(t, occ.WouldConflict("201", Interval{540, 600}))
	occ.Insert("201", Interval{540, 600}, "s1")

	assert.True(t, occ.WouldConflict("201", Interval{570, 630}))
	assert.False(t, occ.WouldConflict("201", Interval{600, 660}), "touching endpoint is not a conflict")
	assert.False(t, occ.WouldConflict("202", Interval{540, 600}), "other rooms are unaffected")

	assert.Equal(t, 1, occ.Load("201"))
	assert.Equal(t, 0, occ.Load("202"))
}
