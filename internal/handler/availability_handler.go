package handler

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/pkg/response"
)

type availabilityService interface {
	ResolveWeek(ctx context.Context, traderID int64, weekStart time.Time, shiftTypes []models.ShiftType) (*models.WeekAvailability, error)
	ResolveCohortWeek(ctx context.Context, weekStart time.Time, shiftTypes []models.ShiftType) (map[int64]*models.WeekAvailability, error)
}

// AvailabilityHandler exposes the weekly resolver.
type AvailabilityHandler struct {
	service availabilityService
	loc     *time.Location
}

// NewAvailabilityHandler constructs the handler. loc decides "today" when no
// week_start is given.
func NewAvailabilityHandler(service availabilityService, loc *time.Location) *AvailabilityHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AvailabilityHandler{service: service, loc: loc}
}

// Week godoc
// @Summary Resolve a trader's week
// @Description Returns one verdict per (date, shift) for the Monday-based week containing week_start.
// @Tags Availability
// @Produce json
// @Param id path int true "Trader ID"
// @Param week_start query string false "Any date in the week (YYYY-MM-DD), defaults to today"
// @Param shift_types query string false "Comma separated shift types, defaults to all"
// @Success 200 {object} response.Envelope{data=dto.WeekAvailabilityResponse}
// @Failure 400 {object} response.Envelope
// @Router /traders/{id}/availability [get]
func (h *AvailabilityHandler) Week(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	weekStart, ok := dateQuery(c, "week_start", h.loc, true)
	if !ok {
		return
	}
	week, err := h.service.ResolveWeek(c.Request.Context(), traderID, weekStart, shiftTypesQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, WeekAvailabilityResponse(week), nil)
}

// Cohort godoc
// @Summary Resolve the week of every active trader
// @Tags Availability
// @Produce json
// @Param week_start query string false "Any date in the week (YYYY-MM-DD), defaults to today"
// @Param shift_types query string false "Comma separated shift types, defaults to all"
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) Cohort(c *gin.Context) {
	weekStart, ok := dateQuery(c, "week_start", h.loc, true)
	if !ok {
		return
	}
	cohort, err := h.service.ResolveCohortWeek(c.Request.Context(), weekStart, shiftTypesQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	ids := make([]int64, 0, len(cohort))
	for id := range cohort {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make(map[string]dto.WeekAvailabilityResponse, len(cohort))
	for _, id := range ids {
		out[strconv.FormatInt(id, 10)] = WeekAvailabilityResponse(cohort[id])
	}
	response.JSON(c, http.StatusOK, out, map[string]interface{}{"traders": len(ids)})
}

// WeekAvailabilityResponse lays a resolved week out day by day in shift order.
func WeekAvailabilityResponse(week *models.WeekAvailability) dto.WeekAvailabilityResponse {
	shifts := make([]string, len(week.ShiftTypes))
	for i, s := range week.ShiftTypes {
		shifts[i] = string(s)
	}

	days := make([]dto.AvailabilityDay, 0, len(week.Dates))
	for _, date := range week.Dates {
		day := dto.AvailabilityDay{
			Date:      date.Format(models.DateLayout),
			DayOfWeek: models.DayOfWeek(date),
			Slots:     make([]dto.AvailabilityCell, 0, len(week.ShiftTypes)),
		}
		for _, shift := range week.ShiftTypes {
			slot, _ := week.Slot(date, shift)
			day.Slots = append(day.Slots, dto.AvailabilityCell{
				ShiftType: string(shift),
				Status:    string(slot.Status),
				Weight:    slot.Weight,
			})
		}
		days = append(days, day)
	}

	return dto.WeekAvailabilityResponse{
		TraderID:   week.TraderID,
		WeekStart:  week.WeekStart.Format(models.DateLayout),
		ShiftTypes: shifts,
		Days:       days,
	}
}
