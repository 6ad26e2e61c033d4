// Package app wires repositories and services over one database pool. Both
// the API gateway and rosterctl build their dependencies through it.
package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/repository"
	"github.com/noah-isme/roster-availability-api/internal/service"
)

// Services holds the fully wired service layer.
type Services struct {
	Metrics      *service.MetricsService
	Patterns     *service.WeeklyPatternService
	Requests     *service.TraderRequestService
	Preferences  *service.PreferenceService
	Availability *service.AvailabilityService
	Reports      *service.DailyResourceService
	Exports      *service.ExportService
}

// NewServices builds every service on db. metrics may be nil to disable instrumentation.
func NewServices(db *sqlx.DB, logger *zap.Logger, metrics *service.MetricsService) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := validator.New()

	traders := repository.NewTraderRepository(db)
	patternRepo := repository.NewWeeklyPatternRepository(db)
	requestRepo := repository.NewTraderRequestRepository(db)
	preferenceRepo := repository.NewTraderPreferenceRepository(db)

	patterns := service.NewWeeklyPatternService(traders, patternRepo, validate, logger.Named("weekly_pattern"))
	requests := service.NewTraderRequestService(traders, requestRepo, validate, logger.Named("trader_request"))
	reports := service.NewDailyResourceService(traders, requestRepo, patternRepo, metrics, logger.Named("daily_resources"))

	return &Services{
		Metrics:      metrics,
		Patterns:     patterns,
		Requests:     requests,
		Preferences:  service.NewPreferenceService(traders, preferenceRepo, validate, logger.Named("preference")),
		Availability: service.NewAvailabilityService(patterns, requests, traders, metrics, logger.Named("availability")),
		Reports:      reports,
		Exports:      service.NewExportService(reports, logger.Named("export")),
	}
}
