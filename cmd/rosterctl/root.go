package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/app"
	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/internal/service"
	"github.com/noah-isme/roster-availability-api/pkg/config"
	"github.com/noah-isme/roster-availability-api/pkg/database"
	"github.com/noah-isme/roster-availability-api/pkg/logger"
)

type dailyReporter interface {
	Report(ctx context.Context, date time.Time, location string) ([]models.DailyResourceRow, error)
}

type dailyExporter interface {
	ExportDaily(ctx context.Context, date time.Time, location, format string) (*service.ExportResult, error)
}

type weekResolver interface {
	ResolveWeek(ctx context.Context, traderID int64, weekStart time.Time, shiftTypes []models.ShiftType) (*models.WeekAvailability, error)
}

// runtime is what the database-backed commands operate on.
type runtime struct {
	Reports      dailyReporter
	Exports      dailyExporter
	Availability weekResolver
	Location     *time.Location
	Logger       *zap.Logger
	Close        func() error
}

type bootstrapFunc func(ctx context.Context) (*runtime, error)

func defaultBootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.NewCLI(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	svc := app.NewServices(db, logr, nil)
	return &runtime{
		Reports:      svc.Reports,
		Exports:      svc.Exports,
		Availability: svc.Availability,
		Location:     cfg.Roster.Location(),
		Logger:       logr,
		Close: func() error {
			_ = logr.Sync()
			return db.Close()
		},
	}, nil
}

func newRootCmd(bootstrap bootstrapFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Roster availability tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newReportCmd(bootstrap),
		newWeekCmd(bootstrap),
		newShadowCmd(),
	)
	return root
}

// withRuntime boots the runtime, runs fn and always releases it.
func withRuntime(cmd *cobra.Command, bootstrap bootstrapFunc, fn func(rt *runtime) error) (err error) {
	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	if rt.Location == nil {
		rt.Location = time.UTC
	}
	if rt.Logger == nil {
		rt.Logger = zap.NewNop()
	}
	if rt.Close != nil {
		defer func() {
			if cerr := rt.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}
	return fn(rt)
}

// parseDateFlag reads a YYYY-MM-DD flag value, defaulting to today in loc.
func parseDateFlag(name, raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.DateOf(time.Now().In(loc)), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a YYYY-MM-DD date", name)
	}
	return d, nil
}
