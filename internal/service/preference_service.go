package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type preferenceRepository interface {
	Get(ctx context.Context, traderID int64, category, key string) (*models.TraderPreference, error)
	Upsert(ctx context.Context, pref *models.TraderPreference) error
	ListByCategory(ctx context.Context, category, key string) ([]models.TraderPreference, error)
}

// PreferenceService stores the days-off grouping preference. The value is
// informational and is not consulted when resolving availability.
type PreferenceService struct {
	traders   traderRepository
	repo      preferenceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPreferenceService constructs the service.
func NewPreferenceService(traders traderRepository, repo preferenceRepository, validate *validator.Validate, logger *zap.Logger) *PreferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{traders: traders, repo: repo, validator: validate, logger: logger}
}

// GetDaysOffGrouping returns the trader's grouping weight, 0 when unset.
func (s *PreferenceService) GetDaysOffGrouping(ctx context.Context, traderID int64) (int, error) {
	if _, err := loadTrader(ctx, s.traders, traderID); err != nil {
		return 0, err
	}
	pref, err := s.repo.Get(ctx, traderID, models.PreferenceCategoryDaysOffGrouping, models.PreferenceKeyDefault)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DaysOffNoPreference, nil
		}
		return 0, appErrors.Internal(err, "failed to load preference")
	}
	return pref.Weight, nil
}

// SetDaysOffGrouping stores the trader's grouping weight.
func (s *PreferenceService) SetDaysOffGrouping(ctx context.Context, traderID int64, req dto.SetDaysOffPreferenceRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "weight is required")
	}
	if _, err := loadTrader(ctx, s.traders, traderID); err != nil {
		return 0, err
	}
	pref := &models.TraderPreference{
		TraderID: traderID,
		Category: models.PreferenceCategoryDaysOffGrouping,
		Key:      models.PreferenceKeyDefault,
		Weight:   *req.Weight,
	}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		s.logger.Error("preference save failed", zap.Int64("trader_id", traderID), zap.Error(err))
		return 0, appErrors.Internal(err, "failed to save preference")
	}
	s.logger.Info("days-off preference set", zap.Int64("trader_id", traderID), zap.Int("weight", pref.Weight))
	return pref.Weight, nil
}

// DaysOffSummary lists every active trader with their grouping preference.
func (s *PreferenceService) DaysOffSummary(ctx context.Context) ([]models.DaysOffSummaryRow, error) {
	traders, err := s.traders.ListActive(ctx, "")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list traders")
	}
	prefs, err := s.repo.ListByCategory(ctx, models.PreferenceCategoryDaysOffGrouping, models.PreferenceKeyDefault)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list preferences")
	}
	weights := make(map[int64]int, len(prefs))
	for _, p := range prefs {
		weights[p.TraderID] = p.Weight
	}

	rows := make([]models.DaysOffSummaryRow, 0, len(traders))
	for _, t := range traders {
		w := weights[t.ID]
		rows = append(rows, models.DaysOffSummaryRow{
			TraderID: t.ID,
			Name:     t.Name,
			Location: t.Location,
			Weight:   w,
			Label:    models.DaysOffLabel(w),
		})
	}
	return rows, nil
}
