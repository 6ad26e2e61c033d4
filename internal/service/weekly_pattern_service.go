package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type weeklyPatternRepository interface {
	ListByTrader(ctx context.Context, traderID int64) ([]models.WeeklyPatternCell, error)
	InsertDefaults(ctx context.Context, traderID int64, keys []models.PatternKey) error
	Upsert(ctx context.Context, traderID int64, cells []models.WeeklyPatternCell) error
}

// WeeklyPatternService owns the recurring weekday × shift grid of each trader.
type WeeklyPatternService struct {
	traders   traderRepository
	repo      weeklyPatternRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWeeklyPatternService builds the service.
func NewWeeklyPatternService(traders traderRepository, repo weeklyPatternRepository, validate *validator.Validate, logger *zap.Logger) *WeeklyPatternService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeeklyPatternService{
		traders:   traders,
		repo:      repo,
		validator: validate,
		logger:    logger,
	}
}

// GetOrInit returns the trader's complete grid, persisting neutral defaults for
// any coordinate that has no stored cell yet.
func (s *WeeklyPatternService) GetOrInit(ctx context.Context, traderID int64) (*models.WeeklyPattern, error) {
	if _, err := loadTrader(ctx, s.traders, traderID); err != nil {
		return nil, err
	}

	stored, err := s.repo.ListByTrader(ctx, traderID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load weekly pattern")
	}

	cells, missing := completeGrid(traderID, stored)
	if len(missing) == 0 {
		return &models.WeeklyPattern{TraderID: traderID, Cells: cells}, nil
	}

	if err := s.repo.InsertDefaults(ctx, traderID, missing); err != nil {
		s.logger.Error("weekly pattern init failed", zap.Int64("trader_id", traderID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to initialise weekly pattern")
	}
	s.logger.Info("weekly pattern initialised", zap.Int64("trader_id", traderID), zap.Int("cells", len(missing)))

	stored, err = s.repo.ListByTrader(ctx, traderID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load weekly pattern")
	}
	cells, _ = completeGrid(traderID, stored)
	return &models.WeeklyPattern{TraderID: traderID, Cells: cells}, nil
}

// Save upserts the addressed cells and leaves every other cell untouched.
func (s *WeeklyPatternService) Save(ctx context.Context, traderID int64, req dto.SaveWeeklyPatternRequest) (*models.WeeklyPattern, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid weekly pattern payload")
	}
	if _, err := loadTrader(ctx, s.traders, traderID); err != nil {
		return nil, err
	}

	cells := make([]models.WeeklyPatternCell, 0, len(req.Cells))
	for _, in := range req.Cells {
		shift, err := parseShiftField(in.ShiftType)
		if err != nil {
			return nil, err
		}
		cells = append(cells, models.WeeklyPatternCell{
			TraderID:  traderID,
			DayOfWeek: *in.DayOfWeek,
			ShiftType: shift,
			HardBlock: in.HardBlock,
			Weight:    in.Weight,
		})
	}

	if err := s.repo.Upsert(ctx, traderID, cells); err != nil {
		s.logger.Error("weekly pattern save failed", zap.Int64("trader_id", traderID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to save weekly pattern")
	}
	s.logger.Info("weekly pattern saved", zap.Int64("trader_id", traderID), zap.Int("cells", len(cells)))

	return s.GetOrInit(ctx, traderID)
}

// completeGrid lays stored cells onto the full grid. Coordinates without a
// stored cell get a neutral default and are reported as missing. Cells outside
// the standard shift set are dropped.
func completeGrid(traderID int64, stored []models.WeeklyPatternCell) ([]models.WeeklyPatternCell, []models.PatternKey) {
	byKey := make(map[models.PatternKey]models.WeeklyPatternCell, len(stored))
	for _, c := range stored {
		byKey[c.Key()] = c
	}

	keys := models.PatternKeys()
	cells := make([]models.WeeklyPatternCell, 0, len(keys))
	var missing []models.PatternKey
	for _, key := range keys {
		cell, ok := byKey[key]
		if !ok {
			cell = models.WeeklyPatternCell{
				TraderID:  traderID,
				DayOfWeek: key.DayOfWeek,
				ShiftType: key.ShiftType,
				Weight:    models.WeightNeutral,
			}
			missing = append(missing, key)
		}
		cells = append(cells, cell)
	}

	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].DayOfWeek != cells[j].DayOfWeek {
			return cells[i].DayOfWeek < cells[j].DayOfWeek
		}
		return cells[i].ShiftType.Order() < cells[j].ShiftType.Order()
	})
	return cells, missing
}
