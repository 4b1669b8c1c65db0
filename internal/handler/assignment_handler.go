package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/dto"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/service"
	appErrors "github.com/BIGSHOL/ijw-Calander-sub010/pkg/errors"
	"github.com/BIGSHOL/ijw-Calander-sub010/pkg/response"
)

const maxManualOverrides = 512

type roomPlanner interface {
	Preview(ctx context.Context, req dto.AssignPreviewRequest) (*dto.AssignPreviewResponse, error)
	Apply(ctx context.Context, req dto.ApplyAssignmentRequest) (*dto.ApplyAssignmentResponse, error)
	Revalidate(ctx context.Context, req dto.RevalidateRequest) (*dto.RevalidateResponse, error)
	GetProposal(ctx context.Context, proposalID string) (*dto.AssignPreviewResponse, error)
}

type planExporter interface {
	Render(ctx context.Context, proposalID string, format service.ExportFormat) (*service.ExportResult, error)
}

// AssignmentHandler exposes the room plan endpoints.
type AssignmentHandler struct {
	service  roomPlanner
	exporter planExporter
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(svc *service.AssignmentService, exporter *service.ExportService) *AssignmentHandler {
	return &AssignmentHandler{service: svc, exporter: exporter}
}

// Preview godoc
// @Summary Compute a room plan proposal for one date
// @Description Runs the assignment engine over the day's sessions and returns a TTL-bound proposal. Nothing is persisted until apply.
// @Tags RoomPlan
// @Accept json
// @Produce json
// @Param payload body dto.AssignPreviewRequest true "Preview payload"
// @Success 200 {object} response.Envelope
// @Router /assignments/preview [post]
func (h *AssignmentHandler) Preview(c *gin.Context) {
	var req dto.AssignPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preview payload"))
		return
	}
	result, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Apply godoc
// @Summary Persist a previewed room plan
// @Description Writes the proposal diff as per-occurrence room overrides in one transaction, then discards the proposal.
// @Tags RoomPlan
// @Accept json
// @Produce json
// @Param payload body dto.ApplyAssignmentRequest true "Apply payload"
// @Success 200 {object} response.Envelope
// @Router /assignments/apply [post]
func (h *AssignmentHandler) Apply(c *gin.Context) {
	var req dto.ApplyAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid apply payload"))
		return
	}
	result, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Revalidate godoc
// @Summary Re-check a proposal after manual room edits
// @Description Overlays manual overrides onto the stored proposal and re-runs conflict detection and merge suggestions without re-scoring.
// @Tags RoomPlan
// @Accept json
// @Produce json
// @Param payload body dto.RevalidateRequest true "Revalidate payload"
// @Success 200 {object} response.Envelope
// @Router /assignments/revalidate [post]
func (h *AssignmentHandler) Revalidate(c *gin.Context) {
	var req dto.RevalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid revalidate payload"))
		return
	}
	if len(req.Overrides) > maxManualOverrides {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "overrides exceeds supported limit"))
		return
	}
	result, err := h.service.Revalidate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetProposal godoc
// @Summary Fetch a stored room plan proposal
// @Tags RoomPlan
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/proposals/{id} [get]
func (h *AssignmentHandler) GetProposal(c *gin.Context) {
	result, err := h.service.GetProposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Download a room plan proposal as CSV or PDF
// @Tags RoomPlan
// @Produce octet-stream
// @Param id path string true "Proposal ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Router /assignments/proposals/{id}/export [get]
func (h *AssignmentHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.Render(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
