package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type traderRequestRepository interface {
	Create(ctx context.Context, req *models.TraderRequest) error
	GetByID(ctx context.Context, id int64) (*models.TraderRequest, error)
	Update(ctx context.Context, req *models.TraderRequest) error
	UpdateStatus(ctx context.Context, req *models.TraderRequest) error
	Delete(ctx context.Context, id int64) (bool, error)
	ListByTrader(ctx context.Context, traderID int64) ([]models.TraderRequest, error)
	ListApprovedInWindow(ctx context.Context, traderID int64, start, end time.Time) ([]models.TraderRequest, error)
	ListAllWithTrader(ctx context.Context) ([]models.TraderRequestWithTrader, error)
}

// TraderRequestServiceOption configures the service.
type TraderRequestServiceOption func(*TraderRequestService)

// WithRequestClock overrides the clock used for audit timestamps.
func WithRequestClock(now func() time.Time) TraderRequestServiceOption {
	return func(s *TraderRequestService) {
		if now != nil {
			s.now = now
		}
	}
}

// TraderRequestService manages the request ledger and its approval workflow.
type TraderRequestService struct {
	traders   traderRepository
	repo      traderRequestRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTraderRequestService constructs the service.
func NewTraderRequestService(traders traderRepository, repo traderRequestRepository, validate *validator.Validate, logger *zap.Logger, opts ...TraderRequestServiceOption) *TraderRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &TraderRequestService{
		traders:   traders,
		repo:      repo,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create files a new PENDING request for the trader. The effect is always
// derived from the kind.
func (s *TraderRequestService) Create(ctx context.Context, traderID int64, req dto.CreateTraderRequest, createdBy string) (*models.TraderRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}

	kind, effect, err := parseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	shift, err := optionalShift(req.ShiftType)
	if err != nil {
		return nil, err
	}
	dateFrom, err := parseDateField("date_from", req.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo := dateFrom
	if strings.TrimSpace(req.DateTo) != "" {
		if dateTo, err = parseDateField("date_to", req.DateTo); err != nil {
			return nil, err
		}
	}

	if _, err := loadTrader(ctx, s.traders, traderID); err != nil {
		return nil, err
	}

	record := &models.TraderRequest{
		TraderID:    traderID,
		Kind:        kind,
		Effect:      effect,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		ShiftType:   shift,
		SportCode:   trimmed(req.SportCode),
		Destination: trimmed(req.Destination),
		LeaveType:   leaveType(req.LeaveType),
		Reason:      trimmed(req.Reason),
		Status:      models.RequestStatusPending,
		CreatedAt:   s.now(),
		CreatedBy:   trimmed(&createdBy),
	}
	if err := normalizeDates(record); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("trader request create failed", zap.Int64("trader_id", traderID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to create request")
	}
	s.logger.Info("trader request created",
		zap.Int64("request_id", record.ID),
		zap.Int64("trader_id", traderID),
		zap.String("kind", string(kind)),
	)
	return record, nil
}

// Get returns a single request.
func (s *TraderRequestService) Get(ctx context.Context, id int64) (*models.TraderRequest, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Internal(err, "failed to load request")
	}
	return record, nil
}

// Update patches the editable fields of a request. Status and audit fields are
// left alone.
func (s *TraderRequestService) Update(ctx context.Context, id int64, req dto.UpdateTraderRequest) (*models.TraderRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Kind != nil {
		kind, effect, err := parseKind(*req.Kind)
		if err != nil {
			return nil, err
		}
		record.Kind = kind
		record.Effect = effect
	}
	if req.ShiftType != nil {
		shift, err := optionalShift(req.ShiftType)
		if err != nil {
			return nil, err
		}
		record.ShiftType = shift
	}
	if req.DateFrom != nil {
		if record.DateFrom, err = parseDateField("date_from", *req.DateFrom); err != nil {
			return nil, err
		}
	}
	if req.DateTo != nil {
		if record.DateTo, err = parseDateField("date_to", *req.DateTo); err != nil {
			return nil, err
		}
	}
	if req.SportCode != nil {
		record.SportCode = trimmed(req.SportCode)
	}
	if req.Destination != nil {
		record.Destination = trimmed(req.Destination)
	}
	if req.LeaveType != nil {
		record.LeaveType = leaveType(req.LeaveType)
	}
	if req.Reason != nil {
		record.Reason = trimmed(req.Reason)
	}
	if err := normalizeDates(record); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		s.logger.Error("trader request update failed", zap.Int64("request_id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to update request")
	}
	s.logger.Info("trader request updated", zap.Int64("request_id", id))
	return record, nil
}

// Approve marks the request APPROVED. Approving twice refreshes the audit fields.
func (s *TraderRequestService) Approve(ctx context.Context, id int64, actor string) (*models.TraderRequest, error) {
	return s.review(ctx, id, actor, models.RequestStatusApproved)
}

// Reject marks the request REJECTED.
func (s *TraderRequestService) Reject(ctx context.Context, id int64, actor string) (*models.TraderRequest, error) {
	return s.review(ctx, id, actor, models.RequestStatusRejected)
}

func (s *TraderRequestService) review(ctx context.Context, id int64, actor string, status models.RequestStatus) (*models.TraderRequest, error) {
	actor = strings.TrimSpace(actor)
	if err := s.validator.Struct(dto.ReviewTraderRequest{Actor: actor}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "actor is required")
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	effect, ok := record.Kind.Effect()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidKind, fmt.Sprintf("unsupported request kind %q", record.Kind))
	}
	now := s.now()
	record.Effect = effect
	record.Status = status
	record.ApprovedAt = &now
	record.ApprovedBy = &actor

	if err := s.repo.UpdateStatus(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		s.logger.Error("trader request review failed", zap.Int64("request_id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to update request status")
	}
	s.logger.Info("trader request reviewed",
		zap.Int64("request_id", id),
		zap.String("status", string(status)),
		zap.String("actor", actor),
	)
	return record, nil
}

// Delete removes a request regardless of status.
func (s *TraderRequestService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("trader request delete failed", zap.Int64("request_id", id), zap.Error(err))
		return appErrors.Internal(err, "failed to delete request")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "request not found")
	}
	s.logger.Info("trader request deleted", zap.Int64("request_id", id))
	return nil
}

// ListForTrader returns every request of the trader, newest first.
func (s *TraderRequestService) ListForTrader(ctx context.Context, traderID int64) ([]models.TraderRequest, error) {
	if _, err := loadTrader(ctx, s.traders, traderID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByTrader(ctx, traderID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list requests")
	}
	return items, nil
}

// ListApprovedInWindow returns approved requests overlapping [start, end].
func (s *TraderRequestService) ListApprovedInWindow(ctx context.Context, traderID int64, start, end time.Time) ([]models.TraderRequest, error) {
	start, end = models.DateOf(start), models.DateOf(end)
	if start.After(end) {
		return nil, appErrors.Clone(appErrors.ErrInvalidRange, "window start must not be after its end")
	}
	items, err := s.repo.ListApprovedInWindow(ctx, traderID, start, end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list approved requests")
	}
	return items, nil
}

// ListAll returns every request joined with its trader for the management view.
func (s *TraderRequestService) ListAll(ctx context.Context) ([]models.TraderRequestWithTrader, error) {
	items, err := s.repo.ListAllWithTrader(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list requests")
	}
	return items, nil
}

func parseKind(raw string) (models.RequestKind, models.RequestEffect, error) {
	kind, ok := models.ParseRequestKind(raw)
	if !ok {
		return "", "", appErrors.Clone(appErrors.ErrInvalidKind, fmt.Sprintf("unsupported request kind %q", raw))
	}
	effect, _ := kind.Effect()
	return kind, effect, nil
}

func optionalShift(raw *string) (*models.ShiftType, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	shift, err := parseShiftField(*raw)
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// normalizeDates pins single-day kinds to DateFrom and enforces the range invariant.
func normalizeDates(r *models.TraderRequest) error {
	r.DateFrom = models.DateOf(r.DateFrom)
	r.DateTo = models.DateOf(r.DateTo)
	if !r.Kind.IsRange() {
		r.DateTo = r.DateFrom
		return nil
	}
	if r.DateTo.Before(r.DateFrom) {
		return appErrors.Clone(appErrors.ErrInvalidRange, "date_to must not be before date_from")
	}
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func leaveType(v *string) *models.LeaveType {
	s := trimmed(v)
	if s == nil {
		return nil
	}
	lt := models.LeaveType(*s)
	return &lt
}
