package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/pkg/database"
)

const patternColumns = "id, trader_id, day_of_week, shift_type, hard_block, weight"

// WeeklyPatternRepository persists trader weekly pattern cells.
type WeeklyPatternRepository struct {
	db *sqlx.DB
}

// NewWeeklyPatternRepository constructs the repository.
func NewWeeklyPatternRepository(db *sqlx.DB) *WeeklyPatternRepository {
	return &WeeklyPatternRepository{db: db}
}

// ListByTrader returns every stored cell for the trader.
func (r *WeeklyPatternRepository) ListByTrader(ctx context.Context, traderID int64) ([]models.WeeklyPatternCell, error) {
	const query = `SELECT ` + patternColumns + ` FROM trader_weekly_patterns WHERE trader_id = $1 ORDER BY day_of_week ASC, id ASC`
	var cells []models.WeeklyPatternCell
	if err := r.db.SelectContext(ctx, &cells, query, traderID); err != nil {
		return nil, fmt.Errorf("list weekly pattern: %w", err)
	}
	return cells, nil
}

// InsertDefaults creates neutral cells for the given coordinates in one
// transaction. Coordinates that already exist are left as they are.
func (r *WeeklyPatternRepository) InsertDefaults(ctx context.Context, traderID int64, keys []models.PatternKey) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `INSERT INTO trader_weekly_patterns (trader_id, day_of_week, shift_type, hard_block, weight)
		VALUES ($1, $2, $3, FALSE, 0)
		ON CONFLICT (trader_id, day_of_week, shift_type) DO NOTHING`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, query, traderID, key.DayOfWeek, key.ShiftType); err != nil {
				return fmt.Errorf("insert default pattern cell: %w", err)
			}
		}
		return nil
	})
}

// Upsert writes the addressed cells in one transaction, keyed by
// (trader, weekday, shift).
func (r *WeeklyPatternRepository) Upsert(ctx context.Context, traderID int64, cells []models.WeeklyPatternCell) error {
	if len(cells) == 0 {
		return nil
	}
	const query = `INSERT INTO trader_weekly_patterns (trader_id, day_of_week, shift_type, hard_block, weight)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (trader_id, day_of_week, shift_type) DO UPDATE
		SET hard_block = EXCLUDED.hard_block,
		    weight = EXCLUDED.weight`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, cell := range cells {
			if _, err := tx.ExecContext(ctx, query, traderID, cell.DayOfWeek, cell.ShiftType, cell.HardBlock, cell.Weight); err != nil {
				return fmt.Errorf("upsert pattern cell: %w", err)
			}
		}
		return nil
	})
}

// ListForDay returns the stored cell at (dayOfWeek, shift) for each of the traders.
func (r *WeeklyPatternRepository) ListForDay(ctx context.Context, traderIDs []int64, dayOfWeek int, shift models.ShiftType) ([]models.WeeklyPatternCell, error) {
	if len(traderIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + patternColumns + ` FROM trader_weekly_patterns
		WHERE trader_id = ANY($1) AND day_of_week = $2 AND shift_type = $3`
	var cells []models.WeeklyPatternCell
	if err := r.db.SelectContext(ctx, &cells, query, pq.Array(traderIDs), dayOfWeek, shift); err != nil {
		return nil, fmt.Errorf("list pattern cells for day: %w", err)
	}
	return cells, nil
}
