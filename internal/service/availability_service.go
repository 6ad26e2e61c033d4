package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type patternSource interface {
	GetOrInit(ctx context.Context, traderID int64) (*models.WeeklyPattern, error)
}

type approvedRequestSource interface {
	ListApprovedInWindow(ctx context.Context, traderID int64, start, end time.Time) ([]models.TraderRequest, error)
}

type activeTraderLister interface {
	ListActive(ctx context.Context, location string) ([]models.Trader, error)
}

// cohortConcurrency bounds the number of traders resolved at once.
const cohortConcurrency = 8

// AvailabilityService resolves weekly slot verdicts from patterns and approved requests.
type AvailabilityService struct {
	patterns patternSource
	requests approvedRequestSource
	traders  activeTraderLister
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewAvailabilityService wires the resolver. metrics may be nil.
func NewAvailabilityService(patterns patternSource, requests approvedRequestSource, traders activeTraderLister, metrics *MetricsService, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		patterns: patterns,
		requests: requests,
		traders:  traders,
		metrics:  metrics,
		logger:   logger,
	}
}

// ResolveWeek computes the verdict of every (date, shift) slot in the week
// containing weekStart. An empty shiftTypes means all standard shifts.
func (s *AvailabilityService) ResolveWeek(ctx context.Context, traderID int64, weekStart time.Time, shiftTypes []models.ShiftType) (*models.WeekAvailability, error) {
	shifts, err := NormalizeShiftTypes(shiftTypes)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	week, err := s.resolveWeek(ctx, traderID, weekStart, shifts)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveResolution("resolve_week", time.Since(started))
	s.countSlots(week)
	return week, nil
}

// ResolveCohortWeek resolves the week for every active trader. The first
// failing trader cancels the remaining work and its error is returned.
func (s *AvailabilityService) ResolveCohortWeek(ctx context.Context, weekStart time.Time, shiftTypes []models.ShiftType) (map[int64]*models.WeekAvailability, error) {
	shifts, err := NormalizeShiftTypes(shiftTypes)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	traders, err := s.traders.ListActive(ctx, "")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list traders")
	}

	weeks := make([]*models.WeekAvailability, len(traders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cohortConcurrency)
	for i, t := range traders {
		i, traderID := i, t.ID
		g.Go(func() error {
			week, err := s.resolveWeek(gctx, traderID, weekStart, shifts)
			if err != nil {
				s.logger.Warn("cohort resolution aborted", zap.Int64("trader_id", traderID), zap.Error(err))
				return err
			}
			weeks[i] = week
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[int64]*models.WeekAvailability, len(weeks))
	for _, week := range weeks {
		out[week.TraderID] = week
		s.countSlots(week)
	}
	s.metrics.ObserveResolution("resolve_cohort_week", time.Since(started))
	return out, nil
}

func (s *AvailabilityService) resolveWeek(ctx context.Context, traderID int64, weekStart time.Time, shifts []models.ShiftType) (*models.WeekAvailability, error) {
	dates := models.WeekDates(weekStart)

	pattern, err := s.patterns.GetOrInit(ctx, traderID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListApprovedInWindow(ctx, traderID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, err
	}

	slots := seedSlots(pattern, dates, shifts)
	applyRequests(slots, requests, dates, shifts)

	return &models.WeekAvailability{
		TraderID:   traderID,
		WeekStart:  dates[0],
		Dates:      dates,
		ShiftTypes: shifts,
		Slots:      slots,
	}, nil
}

func (s *AvailabilityService) countSlots(week *models.WeekAvailability) {
	if s.metrics == nil {
		return
	}
	counts := make(map[models.AvailabilityStatus]int, 3)
	for _, slot := range week.Slots {
		counts[slot.Status]++
	}
	for status, n := range counts {
		s.metrics.CountSlots(string(status), n)
	}
}

// seedSlots fills every slot from the weekly pattern alone.
func seedSlots(pattern *models.WeeklyPattern, dates []time.Time, shifts []models.ShiftType) map[models.SlotKey]models.AvailabilitySlot {
	cells := pattern.Lookup()
	slots := make(map[models.SlotKey]models.AvailabilitySlot, len(dates)*len(shifts))
	for _, date := range dates {
		for _, shift := range shifts {
			slot := models.AvailabilitySlot{Status: models.AvailabilityAvailable}
			if cell, ok := cells[models.PatternCellForDate(date, shift)]; ok {
				if cell.HardBlock {
					slot.Status = models.AvailabilityUnavailable
				} else {
					slot.Weight = cell.Weight
				}
			}
			slots[models.SlotKey{Date: date, ShiftType: shift}] = slot
		}
	}
	return slots
}

// applyRequests overlays approved requests. MANDATORY always wins and
// UNAVAILABLE never replaces MANDATORY, so the order of requests is irrelevant.
func applyRequests(slots map[models.SlotKey]models.AvailabilitySlot, requests []models.TraderRequest, dates []time.Time, shifts []models.ShiftType) {
	for _, req := range requests {
		if req.Status != models.RequestStatusApproved {
			continue
		}
		effect, ok := req.Kind.Effect()
		if !ok {
			continue
		}
		for _, date := range dates {
			if !req.Covers(date) {
				continue
			}
			for _, shift := range shifts {
				if !req.AppliesToShift(shift) {
					continue
				}
				key := models.SlotKey{Date: date, ShiftType: shift}
				switch effect {
				case models.RequestEffectMandatory:
					slots[key] = models.AvailabilitySlot{Status: models.AvailabilityMandatory}
				case models.RequestEffectUnavailable:
					if slots[key].Status != models.AvailabilityMandatory {
						slots[key] = models.AvailabilitySlot{Status: models.AvailabilityUnavailable}
					}
				}
			}
		}
	}
}

// NormalizeShiftTypes validates and de-duplicates shifts, keeping their order.
// Empty input yields the standard set.
func NormalizeShiftTypes(shifts []models.ShiftType) ([]models.ShiftType, error) {
	if len(shifts) == 0 {
		out := make([]models.ShiftType, len(models.StandardShiftTypes))
		copy(out, models.StandardShiftTypes)
		return out, nil
	}
	seen := make(map[models.ShiftType]struct{}, len(shifts))
	out := make([]models.ShiftType, 0, len(shifts))
	for _, raw := range shifts {
		shift, ok := models.ParseShiftType(string(raw))
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidShift, fmt.Sprintf("unsupported shift type %q", raw))
		}
		if _, dup := seen[shift]; dup {
			continue
		}
		seen[shift] = struct{}{}
		out = append(out, shift)
	}
	return out, nil
}
