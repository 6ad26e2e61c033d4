package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/roster-availability-api/internal/models"
)

// TraderPreferenceRepository persists weighted trader preferences.
type TraderPreferenceRepository struct {
	db *sqlx.DB
}

// NewTraderPreferenceRepository constructs the repository.
func NewTraderPreferenceRepository(db *sqlx.DB) *TraderPreferenceRepository {
	return &TraderPreferenceRepository{db: db}
}

// Get returns the preference stored under (trader, category, key).
func (r *TraderPreferenceRepository) Get(ctx context.Context, traderID int64, category, key string) (*models.TraderPreference, error) {
	const query = `SELECT id, trader_id, category, key, weight FROM trader_preferences
		WHERE trader_id = $1 AND category = $2 AND key = $3`
	var pref models.TraderPreference
	if err := r.db.GetContext(ctx, &pref, query, traderID, category, key); err != nil {
		return nil, err
	}
	return &pref, nil
}

// Upsert creates or updates a preference row.
func (r *TraderPreferenceRepository) Upsert(ctx context.Context, pref *models.TraderPreference) error {
	const query = `INSERT INTO trader_preferences (trader_id, category, key, weight)
		VALUES (:trader_id, :category, :key, :weight)
		ON CONFLICT (trader_id, category, key) DO UPDATE
		SET weight = EXCLUDED.weight`
	if _, err := r.db.NamedExecContext(ctx, query, pref); err != nil {
		return fmt.Errorf("upsert trader preference: %w", err)
	}
	return nil
}

// ListByCategory returns every stored preference of one category and key.
func (r *TraderPreferenceRepository) ListByCategory(ctx context.Context, category, key string) ([]models.TraderPreference, error) {
	const query = `SELECT id, trader_id, category, key, weight FROM trader_preferences WHERE category = $1 AND key = $2`
	var prefs []models.TraderPreference
	if err := r.db.SelectContext(ctx, &prefs, query, category, key); err != nil {
		return nil, fmt.Errorf("list trader preferences: %w", err)
	}
	return prefs, nil
}
