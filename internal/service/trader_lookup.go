package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type traderRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Trader, error)
	ListActive(ctx context.Context, location string) ([]models.Trader, error)
}

func loadTrader(ctx context.Context, traders traderRepository, traderID int64) (*models.Trader, error) {
	trader, err := traders.FindByID(ctx, traderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "trader not found")
		}
		return nil, appErrors.Internal(err, "failed to load trader")
	}
	return trader, nil
}

func parseDateField(field, raw string) (time.Time, error) {
	d, err := models.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
	}
	return d, nil
}

func parseShiftField(raw string) (models.ShiftType, error) {
	shift, ok := models.ParseShiftType(raw)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrInvalidShift, fmt.Sprintf("unsupported shift type %q", raw))
	}
	return shift, nil
}
