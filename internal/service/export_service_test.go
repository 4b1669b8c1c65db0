package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/dto"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
	appErrors "github.com/BIGSHOL/ijw-Calander-sub010/pkg/errors"
)

func TestExportServiceRendersCSV(t *testing.T) {
	service := NewExportService(proposalReaderStub{response: exportProposalFixture()}, nil, nil, zap.NewNop())

	result, err := service.Render(context.Background(), "prop-1", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "room-plan-2026-03-02.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	body := string(result.Payload)
	assert.True(t, strings.HasPrefix(body, "Class,Subject,Teacher,Start,End,Students,Current Room,Assigned Room,Source"))
	assert.Contains(t, body, "Algebra 1,Math,Kim,10:00,11:00,15,,101,AUTO")
}

func TestExportServiceRendersPDF(t *testing.T) {
	service := NewExportService(proposalReaderStub{response: exportProposalFixture()}, nil, nil, zap.NewNop())

	result, err := service.Render(context.Background(), "prop-1", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	service := NewExportService(proposalReaderStub{response: exportProposalFixture()}, nil, nil, zap.NewNop())

	_, err := service.Render(context.Background(), "prop-1", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServicePropagatesExpiredProposal(t *testing.T) {
	service := NewExportService(proposalReaderStub{err: appErrors.Clone(appErrors.ErrProposalExpired, "")}, nil, nil, zap.NewNop())

	_, err := service.Render(context.Background(), "gone", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrProposalExpired.Code, appErrors.FromError(err).Code)
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, format)

	format, err = ParseExportFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, format)

	_, err = ParseExportFormat("docx")
	require.Error(t, err)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", formatMinutes(0))
	assert.Equal(t, "09:05", formatMinutes(545))
	assert.Equal(t, "23:59", formatMinutes(1439))
}

// --- Fixtures ---

type proposalReaderStub struct {
	response *dto.AssignPreviewResponse
	err      error
}

func (s proposalReaderStub) GetProposal(ctx context.Context, proposalID string) (*dto.AssignPreviewResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func exportProposalFixture() *dto.AssignPreviewResponse {
	return &dto.AssignPreviewResponse{
		ProposalID: "prop-1",
		Date:       "2026-03-02",
		Sessions: []models.Session{
			{
				ClassID:      "c1",
				ClassName:    "Algebra 1",
				Subject:      "Math",
				TeacherName:  "Kim",
				Date:         "2026-03-02",
				PeriodID:     "p-1",
				StudentCount: 15,
				StartMin:     600,
				EndMin:       660,
				AssignedRoom: "101",
				Source:       models.SourceAuto,
			},
		},
		Stats: models.AssignmentStats{Total: 1, Assigned: 1},
	}
}
