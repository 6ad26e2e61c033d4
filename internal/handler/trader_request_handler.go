package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/pkg/logger"
	"github.com/noah-isme/roster-availability-api/pkg/response"
)

type traderRequestService interface {
	Create(ctx context.Context, traderID int64, req dto.CreateTraderRequest, createdBy string) (*models.TraderRequest, error)
	Get(ctx context.Context, id int64) (*models.TraderRequest, error)
	Update(ctx context.Context, id int64, req dto.UpdateTraderRequest) (*models.TraderRequest, error)
	Approve(ctx context.Context, id int64, actor string) (*models.TraderRequest, error)
	Reject(ctx context.Context, id int64, actor string) (*models.TraderRequest, error)
	Delete(ctx context.Context, id int64) error
	ListForTrader(ctx context.Context, traderID int64) ([]models.TraderRequest, error)
	ListApprovedInWindow(ctx context.Context, traderID int64, start, end time.Time) ([]models.TraderRequest, error)
	ListAll(ctx context.Context) ([]models.TraderRequestWithTrader, error)
}

// TraderRequestHandler exposes the request ledger.
type TraderRequestHandler struct {
	service traderRequestService
}

// NewTraderRequestHandler constructs the handler.
func NewTraderRequestHandler(service traderRequestService) *TraderRequestHandler {
	return &TraderRequestHandler{service: service}
}

// ListForTrader godoc
// @Summary List a trader's requests
// @Tags Requests
// @Produce json
// @Param id path int true "Trader ID"
// @Success 200 {object} response.Envelope
// @Router /traders/{id}/requests [get]
func (h *TraderRequestHandler) ListForTrader(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListForTrader(c.Request.Context(), traderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// Create godoc
// @Summary File a request
// @Description The effect is derived from the kind. Single-day kinds ignore date_to.
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Trader ID"
// @Param X-Actor header string false "Creator"
// @Param payload body dto.CreateTraderRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /traders/{id}/requests [post]
func (h *TraderRequestHandler) Create(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateTraderRequest
	if !bindJSON(c, &req, "invalid request payload") {
		return
	}
	created, err := h.service.Create(c.Request.Context(), traderID, req, c.GetHeader(logger.ActorHeader))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// ListApproved godoc
// @Summary List approved requests overlapping a window
// @Tags Requests
// @Produce json
// @Param id path int true "Trader ID"
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /traders/{id}/requests/approved [get]
func (h *TraderRequestHandler) ListApproved(c *gin.Context) {
	traderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from", time.UTC, false)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", time.UTC, false)
	if !ok {
		return
	}
	items, err := h.service.ListApprovedInWindow(c.Request.Context(), traderID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// ListAll godoc
// @Summary List all requests with trader details
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *TraderRequestHandler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// Get godoc
// @Summary Get a request
// @Tags Requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *TraderRequestHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Patch a request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.UpdateTraderRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [patch]
func (h *TraderRequestHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTraderRequest
	if !bindJSON(c, &req, "invalid request payload") {
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Approve godoc
// @Summary Approve a request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.ReviewTraderRequest true "Reviewer"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/approve [post]
func (h *TraderRequestHandler) Approve(c *gin.Context) {
	h.review(c, h.service.Approve)
}

// Reject godoc
// @Summary Reject a request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.ReviewTraderRequest true "Reviewer"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/reject [post]
func (h *TraderRequestHandler) Reject(c *gin.Context) {
	h.review(c, h.service.Reject)
}

func (h *TraderRequestHandler) review(c *gin.Context, action func(context.Context, int64, string) (*models.TraderRequest, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewTraderRequest
	if !bindJSON(c, &req, "invalid review payload") {
		return
	}
	item, err := action(c.Request.Context(), id, req.Actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete a request
// @Tags Requests
// @Param id path int true "Request ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /requests/{id} [delete]
func (h *TraderRequestHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
