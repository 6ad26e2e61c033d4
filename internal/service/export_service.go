package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
	"github.com/noah-isme/roster-availability-api/pkg/export"
)

type dailyReporter interface {
	Report(ctx context.Context, date time.Time, location string) ([]models.DailyResourceRow, error)
}

// ExportResult is a rendered report ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the daily resources report into downloadable files.
type ExportService struct {
	reports dailyReporter
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(reports dailyReporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reports: reports, logger: logger}
}

// ExportDaily renders the report for date in the requested format (csv, xlsx or pdf).
func (s *ExportService) ExportDaily(ctx context.Context, date time.Time, location, format string) (*ExportResult, error) {
	f, ok := export.ParseFormat(format)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	renderer, _ := export.RendererFor(f)

	rows, err := s.reports.Report(ctx, date, location)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(DailyResourceDataset(date, rows))
	if err != nil {
		s.logger.Error("daily export render failed", zap.String("format", string(f)), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render export")
	}

	return &ExportResult{
		Filename:    dailyExportFilename(date, location, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
	}, nil
}

// DailyResourceDataset lays report rows out as an export table.
func DailyResourceDataset(date time.Time, rows []models.DailyResourceRow) export.Dataset {
	data := export.Dataset{
		Title: "Daily Resources " + models.DateOf(date).Format(models.DateLayout),
		Columns: []export.Column{
			{Header: "Location", Width: 1},
			{Header: "Name", Width: 1.6},
			{Header: "Alias", Width: 0.8},
			{Header: "Status", Width: 1},
			{Header: "Reason", Width: 2},
		},
		Rows: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		alias := ""
		if r.Alias != nil {
			alias = *r.Alias
		}
		data.Rows = append(data.Rows, []string{r.Location, r.Name, alias, string(r.Status), r.Reason})
	}
	return data
}

func dailyExportFilename(date time.Time, location, ext string) string {
	name := "daily_resources_" + models.DateOf(date).Format(models.DateLayout)
	if loc := sanitizeFilename(location); loc != "" {
		name += "_" + loc
	}
	return name + "." + ext
}

func sanitizeFilename(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 50 {
		return result[:50]
	}
	return result
}
