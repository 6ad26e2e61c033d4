package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/pkg/response"
)

type weeklyPatternService interface {
	GetOrInit(ctx context.Context, traderID int64) (*models.WeeklyPattern, error)
	Save(ctx context.Context, traderID int64, req dto.SaveWeeklyPatternRequest) (*models.WeeklyPattern, error)
}

// WeeklyPatternHandler exposes the recurring weekly grid of a trader.
type WeeklyPatternHandler struct {
	service weeklyPatternService
}

// NewWeeklyPatternHandler constructs the handler.
func NewWeeklyPatternHandler(service weeklyPatternService) *WeeklyPatternHandler {
	return &WeeklyPatternHandler{service: service}
}

// Get godoc
// @Summary Get a trader's weekly pattern
// @Description Returns the complete 7x4 grid, creating neutral cells on first access.
// @Tags Weekly Patterns
// @Produce json
// @Param id path int true "Trader ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /traders/{id}/weekly-pattern [get]
func (h *WeeklyPatternHandler) Get(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	pattern, err := h.service.GetOrInit(c.Request.Context(), traderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}

// Save godoc
// @Summary Save weekly pattern cells
// @Description Upserts the addressed cells; other cells are left untouched.
// @Tags Weekly Patterns
// @Accept json
// @Produce json
// @Param id path int true "Trader ID"
// @Param payload body dto.SaveWeeklyPatternRequest true "Cells to save"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /traders/{id}/weekly-pattern [put]
func (h *WeeklyPatternHandler) Save(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.SaveWeeklyPatternRequest
	if !bindJSON(c, &req, "invalid weekly pattern payload") {
		return
	}
	pattern, err := h.service.Save(c.Request.Context(), traderID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}
