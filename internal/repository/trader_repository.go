package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/roster-availability-api/internal/models"
)

const traderColumns = "id, name, alias, location, is_active"

// TraderRepository reads the trader directory.
type TraderRepository struct {
	db *sqlx.DB
}

// NewTraderRepository constructs a TraderRepository.
func NewTraderRepository(db *sqlx.DB) *TraderRepository {
	return &TraderRepository{db: db}
}

// FindByID fetches a trader by ID.
func (r *TraderRepository) FindByID(ctx context.Context, id int64) (*models.Trader, error) {
	const query = `SELECT ` + traderColumns + ` FROM traders WHERE id = $1`
	var trader models.Trader
	if err := r.db.GetContext(ctx, &trader, query, id); err != nil {
		return nil, err
	}
	return &trader, nil
}

// ListActive returns active traders, optionally restricted to one location.
func (r *TraderRepository) ListActive(ctx context.Context, location string) ([]models.Trader, error) {
	query := `SELECT ` + traderColumns + ` FROM traders WHERE is_active = TRUE`
	var args []interface{}
	if loc := strings.TrimSpace(location); loc != "" {
		query += " AND location = $1"
		args = append(args, loc)
	}
	query += " ORDER BY location ASC, name ASC, id ASC"

	var traders []models.Trader
	if err := r.db.SelectContext(ctx, &traders, query, args...); err != nil {
		return nil, fmt.Errorf("list active traders: %w", err)
	}
	return traders, nil
}
