package repositories

import (
	"context"
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// PoolReader defines read operations for pool data.
type PoolReader interface {
	// FindPoolByID retrieves a specific pool by its unique identifier.
	FindPoolByID(ctx context.Context, poolID string) (*domain.Pool, error)

	// ListPoolsByUserID retrieves every pool the user is a member of.
	ListPoolsByUserID(ctx context.Context, userID string) ([]domain.Pool, error)
}

// PoolWriter defines write operations for pool data.
type PoolWriter interface {
	// SavePool persists a new pool.
	SavePool(ctx context.Context, pool domain.Pool) error

	// UpdatePoolMetadata updates display metadata (name, description, category).
	UpdatePoolMetadata(ctx context.Context, pool domain.Pool) error

	// ReserveInvites atomically checks the occupancy cap and adds inviteeIDs to
	// the pending invite set, under a row lock so concurrent invites cannot
	// race past the cap. Returns apperrors.ErrPoolCapacity when the cap would
	// be exceeded, leaving the pool untouched. Invitees already members or
	// already pending are skipped. Returns the updated pool.
	ReserveInvites(ctx context.Context, poolID string, inviteeIDs []string, invitedBy string, at time.Time) (*domain.Pool, error)

	// PromoteInvite moves userID from the pending set into the member set.
	// Idempotent: accepting twice, or accepting without a pending invite,
	// results in the user simply being a member.
	PromoteInvite(ctx context.Context, poolID, userID string, at time.Time) error

	// RemovePendingInvite drops userID from the pending set. Idempotent.
	RemovePendingInvite(ctx context.Context, poolID, userID string, at time.Time) error

	// RemoveMember drops userID from the member set. Idempotent. Existing
	// bill split snapshots are left untouched.
	RemoveMember(ctx context.Context, poolID, userID string, at time.Time) error

	// UpdatePoolStatus sets the pool lifecycle status.
	UpdatePoolStatus(ctx context.Context, poolID string, status domain.PoolStatus, updatedBy string, at time.Time) error

	// DeletePoolCascade deletes the pool and every bill in it within a single
	// database transaction, so a crash can never orphan bills.
	DeletePoolCascade(ctx context.Context, poolID string) error
}

// PoolRepositoryFacade combines all pool-related repository interfaces.
type PoolRepositoryFacade interface {
	PoolReader
	PoolWriter
}
