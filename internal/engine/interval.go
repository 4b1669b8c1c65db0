package engine

// Interval is a half-open [Start, End) time window in minutes of day.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two intervals strictly overlap. Touching
// endpoints (a.End == b.Start) are not an overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}
