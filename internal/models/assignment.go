package models

// Weights holds the five soft scoring dials, each in [0,100]. A weight of
// zero removes that factor's contribution entirely.
type Weights struct {
	SubjectAffinity  int `json:"subjectAffinity" validate:"min=0,max=100"`
	CapacityFit      int `json:"capacityFit" validate:"min=0,max=100"`
	TeacherProximity int `json:"teacherProximity" validate:"min=0,max=100"`
	Distribution     int `json:"distribution" validate:"min=0,max=100"`
	GradeGrouping    int `json:"gradeGrouping" validate:"min=0,max=100"`
}

// Constraints toggles the hard rules and the consecutive-session preference.
type Constraints struct {
	EnforceCapacity   bool `json:"enforceCapacity"`
	EnforceLab        bool `json:"enforceLab"`
	PreferConsecutive bool `json:"preferConsecutive"`
}

// ConflictTypeTimeOverlap is the only conflict kind the detector emits.
const ConflictTypeTimeOverlap = "time_overlap"

// RoomConflict reports two sessions of different classes and periods that
// overlap in the same room after assignment.
type RoomConflict struct {
	Room       string   `json:"room"`
	SessionIDs []string `json:"sessionIds"`
	ClassNames []string `json:"classNames"`
	Type       string   `json:"type"`
	Message    string   `json:"message"`
}

// MergeSuggestion recommends two compatible leveled sessions share a room.
// Suggestions are advisory and never applied automatically.
type MergeSuggestion struct {
	SessionIDs       []string `json:"sessionIds"`
	ClassNames       []string `json:"classNames"`
	StartMin         int      `json:"startMin"`
	EndMin           int      `json:"endMin"`
	CombinedStudents int      `json:"combinedStudents"`
	LevelDiff        int      `json:"levelDiff"`
	SuggestedRoom    string   `json:"suggestedRoom"`
	Reason           string   `json:"reason"`
}

// AssignmentStats summarises one scheduling run.
type AssignmentStats struct {
	Total            int `json:"total"`
	Assigned         int `json:"assigned"`
	Unassigned       int `json:"unassigned"`
	Conflicts        int `json:"conflicts"`
	MergeSuggestions int `json:"mergeSuggestions"`
}

// AssignmentResult is the complete output of one scheduling run.
type AssignmentResult struct {
	Sessions    []Session         `json:"sessions"`
	Conflicts   []RoomConflict    `json:"conflicts"`
	Suggestions []MergeSuggestion `json:"suggestions"`
	Stats       AssignmentStats   `json:"stats"`
}
