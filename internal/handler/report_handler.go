package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/internal/service"
	"github.com/noah-isme/roster-availability-api/pkg/response"
)

type dailyReportService interface {
	Report(ctx context.Context, date time.Time, location string) ([]models.DailyResourceRow, error)
}

type dailyExportService interface {
	ExportDaily(ctx context.Context, date time.Time, location, format string) (*service.ExportResult, error)
}

// ReportHandler exposes the daily resources report and its exports.
type ReportHandler struct {
	reports dailyReportService
	exports dailyExportService
	loc     *time.Location
}

// NewReportHandler constructs handler. exports may be nil when exports are disabled.
func NewReportHandler(reports dailyReportService, exports dailyExportService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{reports: reports, exports: exports, loc: loc}
}

// DailyResources godoc
// @Summary Daily resources report
// @Description Classifies every active trader on the FULL shift of the date.
// @Tags Reports
// @Produce json
// @Param date query string false "Target date (YYYY-MM-DD), defaults to today"
// @Param location query string false "Location filter"
// @Success 200 {object} response.Envelope
// @Router /reports/daily-resources [get]
func (h *ReportHandler) DailyResources(c *gin.Context) {
	date, ok := dateQuery(c, "date", h.loc, true)
	if !ok {
		return
	}
	location := strings.TrimSpace(c.Query("location"))
	rows, err := h.reports.Report(c.Request.Context(), date, location)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{
		"date":     date.Format(models.DateLayout),
		"location": location,
		"total":    len(rows),
	})
}

// ExportDailyResources godoc
// @Summary Download the daily resources report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "Target date (YYYY-MM-DD), defaults to today"
// @Param location query string false "Location filter"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /reports/daily-resources/export [get]
func (h *ReportHandler) ExportDailyResources(c *gin.Context) {
	date, ok := dateQuery(c, "date", h.loc, true)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	result, err := h.exports.ExportDaily(c.Request.Context(), date, strings.TrimSpace(c.Query("location")), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, result.ContentType, result.Filename, result.Payload)
}
