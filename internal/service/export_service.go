package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/dto"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
	appErrors "github.com/BIGSHOL/ijw-Calander-sub010/pkg/errors"
	"github.com/BIGSHOL/ijw-Calander-sub010/pkg/export"
)

// ExportFormat names a supported room plan export rendering.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type proposalReader interface {
	GetProposal(ctx context.Context, proposalID string) (*dto.AssignPreviewResponse, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered room plan document.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders stored room plan proposals as downloadable documents.
type ExportService struct {
	proposals proposalReader
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(proposals proposalReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{proposals: proposals, csv: csv, pdf: pdf, logger: logger}
}

// Render looks up a proposal and renders it in the requested format.
func (s *ExportService) Render(ctx context.Context, proposalID string, format ExportFormat) (*ExportResult, error) {
	proposal, err := s.proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	dataset := buildRoomPlanDataset(proposal.Sessions)
	title := fmt.Sprintf("Room plan %s", proposal.Date)

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render room plan")
	}

	s.logger.Info("room plan exported",
		zap.String("proposalId", proposalID),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)),
	)

	return &ExportResult{
		Filename:    fmt.Sprintf("room-plan-%s.%s", proposal.Date, format),
		ContentType: contentTypeFor(format),
		Payload:     payload,
	}, nil
}

func contentTypeFor(format ExportFormat) string {
	if format == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

func buildRoomPlanDataset(sessions []models.Session) export.Dataset {
	headers := []string{"Class", "Subject", "Teacher", "Start", "End", "Students", "Current Room", "Assigned Room", "Source"}
	rows := make([]map[string]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, map[string]string{
			"Class":         session.ClassName,
			"Subject":       session.Subject,
			"Teacher":       session.TeacherName,
			"Start":         formatMinutes(session.StartMin),
			"End":           formatMinutes(session.EndMin),
			"Students":      fmt.Sprintf("%d", session.StudentCount),
			"Current Room":  session.CurrentRoom,
			"Assigned Room": session.AssignedRoom,
			"Source":        string(session.Source),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

// formatMinutes renders minutes since midnight as HH:MM.
func formatMinutes(min int) string {
	if min < 0 {
		min = 0
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseExportFormat normalises a user supplied format string.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return ExportFormatCSV, nil
	case "pdf":
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw))
	}
}
