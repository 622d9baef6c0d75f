package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/webboardlab/voc-insight/internal/domain"
)

// ErrNotFound is returned when no access request exists for an email.
var ErrNotFound = errors.New("access request not found")

// AccessRepository handles database operations for access requests.
type AccessRepository struct {
	db *sqlx.DB
}

// NewAccessRepository creates a new access repository.
func NewAccessRepository(db *sqlx.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

// Create inserts a pending request. Re-requesting with an existing email is
// a no-op so users can safely mash the button.
func (r *AccessRepository) Create(ctx context.Context, email, name string) error {
	query := r.db.Rebind(`
		INSERT INTO access_requests (email, name, status, requested_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING
	`)
	if _, err := r.db.ExecContext(ctx, query, email, name, domain.AccessPending, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to create access request: %w", err)
	}
	return nil
}

// GetByEmail retrieves one request.
func (r *AccessRepository) GetByEmail(ctx context.Context, email string) (*domain.AccessRequest, error) {
	var req domain.AccessRequest
	query := r.db.Rebind(`
		SELECT id, email, name, status, requested_at, decided_at, decided_by
		FROM access_requests
		WHERE email = ?
	`)
	if err := r.db.GetContext(ctx, &req, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get access request: %w", err)
	}
	return &req, nil
}

// List retrieves requests, optionally filtered by status.
func (r *AccessRepository) List(ctx context.Context, status *domain.AccessStatus) ([]*domain.AccessRequest, error) {
	query := `
		SELECT id, email, name, status, requested_at, decided_at, decided_by
		FROM access_requests
	`
	var args []any
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY requested_at DESC`

	var requests []*domain.AccessRequest
	if err := r.db.SelectContext(ctx, &requests, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list access requests: %w", err)
	}
	return requests, nil
}

// SetStatus transitions a request and records who decided.
func (r *AccessRepository) SetStatus(ctx context.Context, email string, status domain.AccessStatus, decidedBy string) error {
	query := r.db.Rebind(`
		UPDATE access_requests
		SET status = ?, decided_at = ?, decided_by = ?
		WHERE email = ?
	`)
	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), decidedBy, email)
	if err != nil {
		return fmt.Errorf("failed to update access request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsApproved reports whether the email currently holds approved access.
func (r *AccessRepository) IsApproved(ctx context.Context, email string) (bool, error) {
	req, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return req.Status == domain.AccessApproved, nil
}
