package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/roster-availability-api/internal/models"
)

const requestColumns = `id, trader_id, request_kind, effect_type, date_from, date_to, shift_type, sport_code,
	destination, leave_type, reason, status, created_at, created_by, approved_at, approved_by`

// TraderRequestRepository persists trader requests.
type TraderRequestRepository struct {
	db *sqlx.DB
}

// NewTraderRequestRepository constructs the repository.
func NewTraderRequestRepository(db *sqlx.DB) *TraderRequestRepository {
	return &TraderRequestRepository{db: db}
}

// Create inserts a request and fills its generated ID and creation time.
func (r *TraderRequestRepository) Create(ctx context.Context, req *models.TraderRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO trader_requests (trader_id, request_kind, effect_type, date_from, date_to, shift_type,
		sport_code, destination, leave_type, reason, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	row := r.db.QueryRowxContext(ctx, query,
		req.TraderID, req.Kind, req.Effect, req.DateFrom, req.DateTo, req.ShiftType,
		req.SportCode, req.Destination, req.LeaveType, req.Reason, req.Status, req.CreatedAt, req.CreatedBy,
	)
	if err := row.Scan(&req.ID); err != nil {
		return fmt.Errorf("create trader request: %w", err)
	}
	return nil
}

// GetByID fetches a single request.
func (r *TraderRequestRepository) GetByID(ctx context.Context, id int64) (*models.TraderRequest, error) {
	const query = `SELECT ` + requestColumns + ` FROM trader_requests WHERE id = $1`
	var req models.TraderRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// Update rewrites the editable fields of a request.
func (r *TraderRequestRepository) Update(ctx context.Context, req *models.TraderRequest) error {
	const query = `UPDATE trader_requests SET request_kind = :request_kind, effect_type = :effect_type,
		date_from = :date_from, date_to = :date_to, shift_type = :shift_type, sport_code = :sport_code,
		destination = :destination, leave_type = :leave_type, reason = :reason
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("update trader request: %w", err)
	}
	return nil
}

// UpdateStatus records a review decision.
func (r *TraderRequestRepository) UpdateStatus(ctx context.Context, req *models.TraderRequest) error {
	const query = `UPDATE trader_requests SET status = :status, effect_type = :effect_type,
		approved_at = :approved_at, approved_by = :approved_by
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("update trader request status: %w", err)
	}
	return nil
}

// Delete removes a request and reports whether a row was deleted.
func (r *TraderRequestRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trader_requests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete trader request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete trader request: %w", err)
	}
	return affected > 0, nil
}

// ListByTrader returns the trader's requests, most recent first.
func (r *TraderRequestRepository) ListByTrader(ctx context.Context, traderID int64) ([]models.TraderRequest, error) {
	const query = `SELECT ` + requestColumns + ` FROM trader_requests WHERE trader_id = $1 ORDER BY date_from DESC, id DESC`
	var reqs []models.TraderRequest
	if err := r.db.SelectContext(ctx, &reqs, query, traderID); err != nil {
		return nil, fmt.Errorf("list trader requests: %w", err)
	}
	return reqs, nil
}

// ListApprovedInWindow returns approved requests intersecting [start, end].
func (r *TraderRequestRepository) ListApprovedInWindow(ctx context.Context, traderID int64, start, end time.Time) ([]models.TraderRequest, error) {
	const query = `SELECT ` + requestColumns + ` FROM trader_requests
		WHERE trader_id = $1 AND status = $2 AND date_to >= $3 AND date_from <= $4
		ORDER BY date_from ASC, id ASC`
	var reqs []models.TraderRequest
	if err := r.db.SelectContext(ctx, &reqs, query, traderID, models.RequestStatusApproved, start, end); err != nil {
		return nil, fmt.Errorf("list approved requests in window: %w", err)
	}
	return reqs, nil
}

// ListApprovedCovering returns approved requests of the given traders whose
// range contains date.
func (r *TraderRequestRepository) ListApprovedCovering(ctx context.Context, traderIDs []int64, date time.Time) ([]models.TraderRequest, error) {
	if len(traderIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + requestColumns + ` FROM trader_requests
		WHERE trader_id = ANY($1) AND status = $2 AND date_from <= $3 AND date_to >= $3
		ORDER BY trader_id ASC, id ASC`
	var reqs []models.TraderRequest
	if err := r.db.SelectContext(ctx, &reqs, query, pq.Array(traderIDs), models.RequestStatusApproved, date); err != nil {
		return nil, fmt.Errorf("list approved requests covering date: %w", err)
	}
	return reqs, nil
}

// ListAllWithTrader returns every request joined with its trader for the
// management view.
func (r *TraderRequestRepository) ListAllWithTrader(ctx context.Context) ([]models.TraderRequestWithTrader, error) {
	const query = `SELECT r.id, r.trader_id, r.request_kind, r.effect_type, r.date_from, r.date_to, r.shift_type,
		r.sport_code, r.destination, r.leave_type, r.reason, r.status, r.created_at, r.created_by,
		r.approved_at, r.approved_by, t.name AS trader_name, t.alias AS trader_alias, t.location AS trader_location
		FROM trader_requests r
		JOIN traders t ON t.id = r.trader_id
		ORDER BY r.date_from ASC, r.date_to ASC, r.id ASC`
	var rows []models.TraderRequestWithTrader
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list trader requests with trader: %w", err)
	}
	return rows, nil
}
