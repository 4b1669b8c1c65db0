package dto

import "github.com/BIGSHOL/ijw-Calander-sub010/internal/models"

// AssignPreviewRequest asks the engine to build a room plan proposal for one
// target date. Weights and constraints fall back to configured defaults when
// omitted.
type AssignPreviewRequest struct {
	Date        string              `json:"date" validate:"required,datetime=2006-01-02"`
	Weights     *models.Weights     `json:"weights" validate:"omitempty"`
	Constraints *models.Constraints `json:"constraints" validate:"omitempty"`
}

// AssignPreviewResponse returns the proposal produced by one engine run.
type AssignPreviewResponse struct {
	ProposalID  string                   `json:"proposalId"`
	Date        string                   `json:"date"`
	Sessions    []models.Session         `json:"sessions"`
	Conflicts   []models.RoomConflict    `json:"conflicts"`
	Suggestions []models.MergeSuggestion `json:"suggestions"`
	Stats       models.AssignmentStats   `json:"stats"`
}

// ApplyAssignmentRequest persists a previously previewed proposal.
type ApplyAssignmentRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
}

// ApplyAssignmentResponse summarises the persisted diff.
type ApplyAssignmentResponse struct {
	Date             string `json:"date"`
	OverridesWritten int    `json:"overridesWritten"`
	ClassesTouched   int    `json:"classesTouched"`
}

// ManualOverride pins one session of a proposal to a room chosen by a human.
type ManualOverride struct {
	SessionID string `json:"sessionId" validate:"required"`
	Room      string `json:"room" validate:"required"`
}

// RevalidateRequest overlays manual room edits onto a proposal and re-runs
// conflict detection and merge suggestions without re-scoring.
type RevalidateRequest struct {
	ProposalID string           `json:"proposalId" validate:"required"`
	Overrides  []ManualOverride `json:"overrides" validate:"required,min=1,dive"`
}

// RevalidateResponse carries the re-checked proposal state.
type RevalidateResponse struct {
	ProposalID  string                   `json:"proposalId"`
	Sessions    []models.Session         `json:"sessions"`
	Conflicts   []models.RoomConflict    `json:"conflicts"`
	Suggestions []models.MergeSuggestion `json:"suggestions"`
	Stats       models.AssignmentStats   `json:"stats"`
}
