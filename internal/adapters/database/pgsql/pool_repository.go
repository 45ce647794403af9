package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
)

type poolRepository struct {
	pool *pgxpool.Pool
}

// NewPoolRepository creates a new repository for expense pool data.
func NewPoolRepository(pool *pgxpool.Pool) portsrepo.PoolRepositoryFacade {
	return &poolRepository{pool: pool}
}

var _ portsrepo.PoolRepositoryFacade = (*poolRepository)(nil)

const poolColumns = `pool_id, name, description, category, creator_id, member_ids, pending_invites, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPool(row pgx.Row) (*domain.Pool, error) {
	var p domain.Pool
	err := row.Scan(
		&p.PoolID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.CreatorID,
		&p.MemberIDs,
		&p.PendingInvites,
		&p.Status,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	p.Icon = p.Category.Icon()
	return &p, nil
}

// SavePool inserts a new pool.
func (r *poolRepository) SavePool(ctx context.Context, pool domain.Pool) error {
	query := `
		INSERT INTO pools (` + poolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		pool.PoolID,
		pool.Name,
		pool.Description,
		pool.Category,
		pool.CreatorID,
		pool.MemberIDs,
		pool.PendingInvites,
		pool.Status,
		pool.CreatedAt,
		pool.CreatedBy,
		pool.LastUpdatedAt,
		pool.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save pool %s: %w", pool.PoolID, err)
	}
	return nil
}

// FindPoolByID retrieves a pool by its ID.
func (r *poolRepository) FindPoolByID(ctx context.Context, poolID string) (*domain.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE pool_id = $1;`
	p, err := scanPool(r.pool.QueryRow(ctx, query, poolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pool by ID %s: %w", poolID, err)
	}
	return p, nil
}

// ListPoolsByUserID retrieves every pool the user is a member of, newest first.
func (r *poolRepository) ListPoolsByUserID(ctx context.Context, userID string) ([]domain.Pool, error) {
	query := `
		SELECT ` + poolColumns + `
		FROM pools
		WHERE $1 = ANY(member_ids)
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools for user %s: %w", userID, err)
	}
	defer rows.Close()

	var pools []domain.Pool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool row: %w", err)
		}
		pools = append(pools, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading pool rows: %w", err)
	}
	return pools, nil
}

// UpdatePoolMetadata updates display metadata (name, description, category).
func (r *poolRepository) UpdatePoolMetadata(ctx context.Context, pool domain.Pool) error {
	query := `
		UPDATE pools
		SET name = $2, description = $3, category = $4, last_updated_at = $5, last_updated_by = $6
		WHERE pool_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		pool.PoolID, pool.Name, pool.Description, pool.Category,
		pool.LastUpdatedAt, pool.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update pool %s: %w", pool.PoolID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReserveInvites adds invitees to the pending set under a row lock so that
// concurrent invites cannot race past the occupancy cap. The check and the
// write happen in the same transaction; on a capacity failure nothing changes.
func (r *poolRepository) ReserveInvites(ctx context.Context, poolID string, inviteeIDs []string, invitedBy string, at time.Time) (*domain.Pool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `SELECT ` + poolColumns + ` FROM pools WHERE pool_id = $1 FOR UPDATE;`
	p, err := scanPool(tx.QueryRow(ctx, query, poolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock pool %s: %w", poolID, err)
	}

	var newInvites []string
	for _, inviteeID := range inviteeIDs {
		if p.HasMember(inviteeID) || p.HasPendingInvite(inviteeID) {
			continue
		}
		newInvites = append(newInvites, inviteeID)
	}
	if len(newInvites) == 0 {
		return p, tx.Commit(ctx)
	}

	if p.Occupancy()+len(newInvites) > domain.MaxPoolOccupancy {
		return nil, fmt.Errorf("%w: pool %s would exceed %d occupants",
			apperrors.ErrPoolCapacity, poolID, domain.MaxPoolOccupancy)
	}

	p.PendingInvites = append(p.PendingInvites, newInvites...)
	p.LastUpdatedAt = at
	p.LastUpdatedBy = invitedBy

	updateQuery := `
		UPDATE pools
		SET pending_invites = $2, last_updated_at = $3, last_updated_by = $4
		WHERE pool_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, poolID, p.PendingInvites, at, invitedBy); err != nil {
		return nil, fmt.Errorf("failed to reserve invites for pool %s: %w", poolID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit invite reservation for pool %s: %w", poolID, err)
	}
	return p, nil
}

// PromoteInvite moves userID from the pending set into the member set.
// Idempotent: a user already in the member set stays there.
func (r *poolRepository) PromoteInvite(ctx context.Context, poolID, userID string, at time.Time) error {
	query := `
		UPDATE pools
		SET member_ids = CASE WHEN $2 = ANY(member_ids) THEN member_ids ELSE array_append(member_ids, $2) END,
		    pending_invites = array_remove(pending_invites, $2),
		    last_updated_at = $3,
		    last_updated_by = $2
		WHERE pool_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, poolID, userID, at)
	if err != nil {
		return fmt.Errorf("failed to promote invite for pool %s: %w", poolID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RemovePendingInvite drops userID from the pending set. Idempotent.
func (r *poolRepository) RemovePendingInvite(ctx context.Context, poolID, userID string, at time.Time) error {
	query := `
		UPDATE pools
		SET pending_invites = array_remove(pending_invites, $2), last_updated_at = $3, last_updated_by = $2
		WHERE pool_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, poolID, userID, at)
	if err != nil {
		return fmt.Errorf("failed to remove pending invite for pool %s: %w", poolID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RemoveMember drops userID from the member set. Bill split snapshots are
// intentionally left untouched.
func (r *poolRepository) RemoveMember(ctx context.Context, poolID, userID string, at time.Time) error {
	query := `
		UPDATE pools
		SET member_ids = array_remove(member_ids, $2), last_updated_at = $3, last_updated_by = $2
		WHERE pool_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, poolID, userID, at)
	if err != nil {
		return fmt.Errorf("failed to remove member from pool %s: %w", poolID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePoolStatus sets the pool lifecycle status.
func (r *poolRepository) UpdatePoolStatus(ctx context.Context, poolID string, status domain.PoolStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE pools
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE pool_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, poolID, status, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of pool %s: %w", poolID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePoolCascade deletes the pool and every bill in it within a single
// database transaction, so a crash can never orphan bills.
func (r *poolRepository) DeletePoolCascade(ctx context.Context, poolID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM bills WHERE pool_id = $1;`, poolID); err != nil {
		return fmt.Errorf("failed to delete bills of pool %s: %w", poolID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM pools WHERE pool_id = $1;`, poolID)
	if err != nil {
		return fmt.Errorf("failed to delete pool %s: %w", poolID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit deletion of pool %s: %w", poolID, err)
	}
	return nil
}
