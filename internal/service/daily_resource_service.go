package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type coveringRequestSource interface {
	ListApprovedCovering(ctx context.Context, traderIDs []int64, date time.Time) ([]models.TraderRequest, error)
}

type dayPatternSource interface {
	ListForDay(ctx context.Context, traderIDs []int64, dayOfWeek int, shift models.ShiftType) ([]models.WeeklyPatternCell, error)
}

// Reasons attached to daily report rows.
const (
	reasonUnavailableRequest = "Approved UNAVAILABLE request"
	reasonMandatoryRequest   = "Approved MANDATORY request"
	reasonHardBlock          = "Weekly pattern: Hard block"
	reasonPreferredIn        = "Weekly pattern: Preferred In"
	reasonPreferredOff       = "Weekly pattern: Preferred Off"
	reasonNoPreference       = "No specific preference"
)

// DailyResourceService builds the per-day cohort report on the FULL shift.
type DailyResourceService struct {
	traders  activeTraderLister
	requests coveringRequestSource
	patterns dayPatternSource
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewDailyResourceService constructs the reporter.
func NewDailyResourceService(traders activeTraderLister, requests coveringRequestSource, patterns dayPatternSource, metrics *MetricsService, logger *zap.Logger) *DailyResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyResourceService{
		traders:  traders,
		requests: requests,
		patterns: patterns,
		metrics:  metrics,
		logger:   logger,
	}
}

// Report classifies every active trader (optionally at one location) for date.
// Rows are sorted by location, status priority and name.
func (s *DailyResourceService) Report(ctx context.Context, date time.Time, location string) ([]models.DailyResourceRow, error) {
	started := time.Now()
	date = models.DateOf(date)

	traders, err := s.traders.ListActive(ctx, location)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list traders")
	}
	if len(traders) == 0 {
		return []models.DailyResourceRow{}, nil
	}

	ids := make([]int64, 0, len(traders))
	for _, t := range traders {
		ids = append(ids, t.ID)
	}

	var (
		requests []models.TraderRequest
		cells    []models.WeeklyPatternCell
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if requests, err = s.requests.ListApprovedCovering(gctx, ids, date); err != nil {
			return appErrors.Internal(err, "failed to load approved requests")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cells, err = s.patterns.ListForDay(gctx, ids, models.DayOfWeek(date), models.ShiftFull); err != nil {
			return appErrors.Internal(err, "failed to load weekly patterns")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byTrader := make(map[int64][]models.TraderRequest, len(traders))
	for _, r := range requests {
		byTrader[r.TraderID] = append(byTrader[r.TraderID], r)
	}
	cellByTrader := make(map[int64]models.WeeklyPatternCell, len(cells))
	for _, c := range cells {
		cellByTrader[c.TraderID] = c
	}

	rows := make([]models.DailyResourceRow, 0, len(traders))
	for _, t := range traders {
		var cell *models.WeeklyPatternCell
		if c, ok := cellByTrader[t.ID]; ok {
			cell = &c
		}
		status, reason := classifyDay(byTrader[t.ID], cell)
		rows = append(rows, models.DailyResourceRow{
			TraderID: t.ID,
			Name:     t.Name,
			Alias:    t.Alias,
			Location: t.Location,
			Status:   status,
			Reason:   reason,
		})
		s.metrics.CountReportRow(string(status))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Location != rows[j].Location {
			return rows[i].Location < rows[j].Location
		}
		pi, pj := rows[i].Status.Priority(), rows[j].Status.Priority()
		if pi != pj {
			return pi < pj
		}
		return rows[i].Name < rows[j].Name
	})

	s.metrics.ObserveResolution("daily_report", time.Since(started))
	s.logger.Debug("daily resources report built",
		zap.String("date", date.Format(models.DateLayout)),
		zap.String("location", location),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

// classifyDay picks the first matching label. Unlike the weekly resolver,
// UNAVAILABLE requests are checked before MANDATORY ones.
func classifyDay(requests []models.TraderRequest, cell *models.WeeklyPatternCell) (models.DailyStatus, string) {
	var mandatory bool
	for _, r := range requests {
		effect, ok := r.Kind.Effect()
		if !ok {
			continue
		}
		switch effect {
		case models.RequestEffectUnavailable:
			return models.DailyStatusAbsoluteNo, reasonUnavailableRequest
		case models.RequestEffectMandatory:
			mandatory = true
		}
	}
	if mandatory {
		return models.DailyStatusMandatory, reasonMandatoryRequest
	}

	switch {
	case cell == nil:
		return models.DailyStatusNeutral, reasonNoPreference
	case cell.HardBlock:
		return models.DailyStatusAbsoluteNo, reasonHardBlock
	case cell.Weight > 0:
		return models.DailyStatusPreferredIn, reasonPreferredIn
	case cell.Weight < 0:
		return models.DailyStatusPreferredOff, reasonPreferredOff
	default:
		return models.DailyStatusNeutral, reasonNoPreference
	}
}
