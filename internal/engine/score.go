package engine

import (
	"math"
	"regexp"
	"strconv"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// ScoreRejected is the hard-rejection sentinel. Any candidate scored at or
// below it is wholly ineligible for the session.
const ScoreRejected = -1e9

// Raw factor scores before weighting.
const (
	affinityPresent = 10.0

	capacityFitHigh  = 10.0 // utilization >= 70%
	capacityFitGood  = 7.0  // 50-70%
	capacityFitFair  = 4.0  // 30-50%
	capacityFitLow   = 1.0  // < 30%
	capacityExceeded = -20.0

	teacherSameRoom  = 15.0
	teacherSameFloor = 8.0
	teacherFloorStep = 2.0 // penalty per floor of distance

	distributionBase = 10.0
	distributionStep = 4.0 // bonus lost per placed interval

	gradeClose        = 10.0 // within 1 level
	gradeNear         = 5.0  // within 2 levels
	gradeDistanceStep = 2.0  // penalty per level beyond 2

	consecutiveSameRoomBonus = 25.0
	consecutiveElsewhere     = -10.0
	labRoomMisusePenalty     = -8.0
)

// scoreContext is a read-only view over the partially built run that the
// scorer consults for teacher-proximity and grade-grouping factors.
type scoreContext struct {
	occ         *Occupancy
	placed      []models.Session
	roomsByName map[string]models.Room
	affinity    map[string]map[string]float64
	weights     models.Weights
	constraints models.Constraints
}

// scoreRoom returns the weighted desirability of placing the session in the
// room, or ScoreRejected when a hard rule is violated.
func (e *Engine) scoreRoom(room models.Room, s models.Session, ctx *scoreContext) float64 {
	w := ctx.weights
	c := ctx.constraints

	// Hard rules short-circuit before any weighting.
	if c.EnforceCapacity && room.Capacity > 0 && s.StudentCount > room.Capacity {
		return ScoreRejected
	}
	isLabSession := e.opts.LabClassPattern.MatchString(s.ClassName)
	isLabRoom := e.opts.LabRoomPattern.MatchString(room.Name)
	if c.EnforceLab && isLabSession && !isLabRoom {
		return ScoreRejected
	}

	var score float64
	if c.EnforceLab && !isLabSession && isLabRoom {
		score += labRoomMisusePenalty
	}

	if w.SubjectAffinity > 0 {
		score += ctx.affinity[room.Floor][s.Subject] * weight(w.SubjectAffinity)
	}
	if w.CapacityFit > 0 {
		score += capacityFitScore(s.StudentCount, room.Capacity) * weight(w.CapacityFit)
	}
	if w.TeacherProximity > 0 {
		score += teacherProximityScore(s, room, ctx) * weight(w.TeacherProximity)
	}
	if w.Distribution > 0 {
		load := float64(ctx.occ.Load(room.Name))
		score += (distributionBase - distributionStep*load) * weight(w.Distribution)
	}
	if w.GradeGrouping > 0 {
		score += gradeGroupingScore(s, room, ctx) * weight(w.GradeGrouping)
	}

	if c.PreferConsecutive {
		score += e.consecutiveScore(s, room, ctx)
	}

	return score
}

func weight(value int) float64 {
	return float64(value) / 100
}

func capacityFitScore(students, capacity int) float64 {
	if capacity <= 0 {
		return capacityFitLow
	}
	if students > capacity {
		// Only reachable when capacity enforcement is disabled.
		return capacityExceeded
	}
	utilization := float64(students) / float64(capacity)
	switch {
	case utilization >= 0.7:
		return capacityFitHigh
	case utilization >= 0.5:
		return capacityFitGood
	case utilization >= 0.3:
		return capacityFitFair
	default:
		return capacityFitLow
	}
}

func teacherProximityScore(s models.Session, room models.Room, ctx *scoreContext) float64 {
	sameFloor := false
	minDistance := -1
	for _, other := range ctx.placed {
		if other.AssignedRoom == "" || other.TeacherName != s.TeacherName || other.ID() == s.ID() {
			continue
		}
		if other.AssignedRoom == room.Name {
			return teacherSameRoom
		}
		otherRoom, ok := ctx.roomsByName[other.AssignedRoom]
		if !ok {
			continue
		}
		if otherRoom.Floor == room.Floor {
			sameFloor = true
			continue
		}
		distance := floorDistance(room.Floor, otherRoom.Floor)
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
		}
	}
	if sameFloor {
		return teacherSameFloor
	}
	if minDistance > 0 {
		return -teacherFloorStep * float64(minDistance)
	}
	return 0
}

func gradeGroupingScore(s models.Session, room models.Room, ctx *scoreContext) float64 {
	grade, ok := parseGrade(s.ClassName)
	if !ok {
		return 0
	}
	var sum, count float64
	for _, other := range ctx.placed {
		if other.AssignedRoom != room.Name || other.ID() == s.ID() {
			continue
		}
		if otherGrade, parsed := parseGrade(other.ClassName); parsed {
			sum += float64(otherGrade)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	distance := math.Abs(float64(grade) - sum/count)
	switch {
	case distance <= 1:
		return gradeClose
	case distance <= 2:
		return gradeNear
	default:
		return -gradeDistanceStep * distance
	}
}

// consecutiveScore rewards keeping back-to-back sessions of the same class
// in one room. It sits outside the five weighted factors.
func (e *Engine) consecutiveScore(s models.Session, room models.Room, ctx *scoreContext) float64 {
	for _, other := range ctx.placed {
		if other.AssignedRoom == "" || other.ClassID != s.ClassID || other.ID() == s.ID() {
			continue
		}
		gap := s.StartMin - other.EndMin
		if gap < 0 || gap > e.opts.ConsecutiveGapMin {
			continue
		}
		if other.AssignedRoom == room.Name {
			return consecutiveSameRoomBonus
		}
		return consecutiveElsewhere
	}
	return 0
}

var (
	gradePattern = regexp.MustCompile(`\d+`)
	levelPattern = regexp.MustCompile(`^(.*\D)-(\d+)$`)
)

// parseGrade extracts a best-effort numeric grade level from a class name.
func parseGrade(className string) (int, bool) {
	match := gradePattern.FindString(className)
	if match == "" {
		return 0, false
	}
	grade, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return grade, true
}

// floorDistance measures the ordinal distance between two floor labels by
// their embedded numbers. Unparseable labels count as floor zero.
func floorDistance(a, b string) int {
	fa, _ := parseGrade(a)
	fb, _ := parseGrade(b)
	if fa > fb {
		return fa - fb
	}
	return fb - fa
}

// ParseLevelMeta splits a leveled class name such as "EiE-3" into its level
// tag and numeric order suffix. Ingestion uses it to backfill leveled
// metadata when the timetable row carries none.
func ParseLevelMeta(className string) (string, int, bool) {
	match := levelPattern.FindStringSubmatch(className)
	if match == nil {
		return "", 0, false
	}
	order, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return match[1], order, true
}
