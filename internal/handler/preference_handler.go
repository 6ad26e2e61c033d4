package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/pkg/response"
)

type preferenceService interface {
	GetDaysOffGrouping(ctx context.Context, traderID int64) (int, error)
	SetDaysOffGrouping(ctx context.Context, traderID int64, req dto.SetDaysOffPreferenceRequest) (int, error)
	DaysOffSummary(ctx context.Context) ([]models.DaysOffSummaryRow, error)
}

// PreferenceHandler exposes the days-off grouping preference.
type PreferenceHandler struct {
	service preferenceService
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(service preferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// GetDaysOff godoc
// @Summary Get a trader's days-off grouping preference
// @Tags Preferences
// @Produce json
// @Param id path int true "Trader ID"
// @Success 200 {object} response.Envelope{data=dto.DaysOffPreferenceResponse}
// @Router /traders/{id}/preferences/days-off [get]
func (h *PreferenceHandler) GetDaysOff(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	weight, err := h.service.GetDaysOffGrouping(c.Request.Context(), traderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, daysOffResponse(traderID, weight), nil)
}

// SetDaysOff godoc
// @Summary Set a trader's days-off grouping preference
// @Description Positive prefers back-to-back days off, negative prefers split days, zero means no preference.
// @Tags Preferences
// @Accept json
// @Produce json
// @Param id path int true "Trader ID"
// @Param payload body dto.SetDaysOffPreferenceRequest true "Weight"
// @Success 200 {object} response.Envelope{data=dto.DaysOffPreferenceResponse}
// @Router /traders/{id}/preferences/days-off [put]
func (h *PreferenceHandler) SetDaysOff(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetDaysOffPreferenceRequest
	if !bindJSON(c, &req, "invalid preference payload") {
		return
	}
	weight, err := h.service.SetDaysOffGrouping(c.Request.Context(), traderID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, daysOffResponse(traderID, weight), nil)
}

// Summary godoc
// @Summary Days-off preferences of all active traders
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /preferences/days-off [get]
func (h *PreferenceHandler) Summary(c *gin.Context) {
	rows, err := h.service.DaysOffSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{"total": len(rows)})
}

func daysOffResponse(traderID int64, weight int) dto.DaysOffPreferenceResponse {
	return dto.DaysOffPreferenceResponse{TraderID: traderID, Weight: weight, Label: models.DaysOffLabel(weight)}
}
