package services

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

// PoolSvcFacade owns pool lifecycle and membership. It enforces the
// occupancy cap and the creator-only delete rule.
type PoolSvcFacade interface {
	// CreatePool creates a pool with the creator as its sole member.
	CreatePool(ctx context.Context, req dto.CreatePoolRequest, creatorID string) (*domain.Pool, error)

	// GetPool retrieves a pool the requester belongs to (member or invitee).
	GetPool(ctx context.Context, poolID, requesterID string) (*domain.Pool, error)

	// ListPoolsForUser retrieves every pool the user is a member of.
	ListPoolsForUser(ctx context.Context, userID string) ([]domain.Pool, error)

	// UpdatePool updates display metadata. Members only.
	UpdatePool(ctx context.Context, poolID string, req dto.UpdatePoolRequest, requesterID string) (*domain.Pool, error)

	// Invite adds invitees to the pending set, enforcing the occupancy cap,
	// and notifies each invitee.
	Invite(ctx context.Context, poolID, inviterID string, inviteeIDs []string) (*domain.Pool, error)

	// AcceptInvite moves the user from pending invitees into the member set.
	// Safe to call twice.
	AcceptInvite(ctx context.Context, poolID, userID string) error

	// RejectInvite drops the user's pending invite. Safe to call twice.
	RejectInvite(ctx context.Context, poolID, userID string) error

	// RemoveMember removes a member. The creator may remove anyone; other
	// members may only remove themselves. Past bill splits are untouched.
	RemoveMember(ctx context.Context, poolID, userID, requesterID string) error

	// ArchivePool marks the pool archived. Creator only.
	ArchivePool(ctx context.Context, poolID, requesterID string) error

	// DeletePool deletes the pool and all of its bills. Creator only.
	DeletePool(ctx context.Context, poolID, requesterID string) error
}
