package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

// poolService implements the PoolSvcFacade interface.
type poolService struct {
	BaseService
	poolRepo portsrepo.PoolRepositoryFacade
	notifier portssvc.Notifier
}

// NewPoolService creates a new pool service with the provided dependencies.
func NewPoolService(poolRepo portsrepo.PoolRepositoryFacade, notifier portssvc.Notifier) portssvc.PoolSvcFacade {
	return &poolService{
		poolRepo: poolRepo,
		notifier: notifier,
	}
}

var _ portssvc.PoolSvcFacade = (*poolService)(nil)

// CreatePool creates a pool with the creator as its sole member.
func (s *poolService) CreatePool(ctx context.Context, req dto.CreatePoolRequest, creatorID string) (*domain.Pool, error) {
	now := time.Now().UTC()
	category := domain.PoolCategory(req.Category)
	if req.Category == "" {
		category = domain.CategoryOther
	}

	pool := domain.Pool{
		PoolID:         uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Category:       category,
		Icon:           category.Icon(),
		CreatorID:      creatorID,
		MemberIDs:      []string{creatorID},
		PendingInvites: []string{},
		Status:         domain.PoolActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.poolRepo.SavePool(ctx, pool); err != nil {
		s.LogError(ctx, err, "Failed to save pool", slog.String("pool_id", pool.PoolID))
		return nil, err
	}

	s.LogInfo(ctx, "Pool created",
		slog.String("pool_id", pool.PoolID),
		slog.String("creator_id", creatorID))
	return &pool, nil
}

// GetPool retrieves a pool for a requester who is a member or invitee.
func (s *poolService) GetPool(ctx context.Context, poolID, requesterID string) (*domain.Pool, error) {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find pool", slog.String("pool_id", poolID))
		}
		return nil, err
	}
	if !pool.HasMember(requesterID) && !pool.HasPendingInvite(requesterID) {
		return nil, fmt.Errorf("%w: user %s does not belong to pool %s", apperrors.ErrForbidden, requesterID, poolID)
	}
	return pool, nil
}

// ListPoolsForUser retrieves every pool the user is a member of.
func (s *poolService) ListPoolsForUser(ctx context.Context, userID string) ([]domain.Pool, error) {
	pools, err := s.poolRepo.ListPoolsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pools for user", slog.String("user_id", userID))
		return nil, err
	}
	if pools == nil {
		return []domain.Pool{}, nil
	}
	return pools, nil
}

// UpdatePool updates display metadata. Members only.
func (s *poolService) UpdatePool(ctx context.Context, poolID string, req dto.UpdatePoolRequest, requesterID string) (*domain.Pool, error) {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !pool.HasMember(requesterID) {
		return nil, fmt.Errorf("%w: user %s is not a member of pool %s", apperrors.ErrForbidden, requesterID, poolID)
	}

	if req.Name != nil {
		pool.Name = *req.Name
	}
	if req.Description != nil {
		pool.Description = *req.Description
	}
	if req.Category != nil {
		pool.Category = domain.PoolCategory(*req.Category)
		pool.Icon = pool.Category.Icon()
	}
	pool.LastUpdatedAt = time.Now().UTC()
	pool.LastUpdatedBy = requesterID

	if err := s.poolRepo.UpdatePoolMetadata(ctx, *pool); err != nil {
		s.LogError(ctx, err, "Failed to update pool metadata", slog.String("pool_id", poolID))
		return nil, err
	}
	return pool, nil
}

// Invite adds invitees to the pending set and notifies each of them. The
// occupancy check and the reservation happen atomically in the repository,
// so two concurrent invites cannot race past the cap.
func (s *poolService) Invite(ctx context.Context, poolID, inviterID string, inviteeIDs []string) (*domain.Pool, error) {
	if len(inviteeIDs) == 0 {
		return nil, fmt.Errorf("%w: no invitees given", apperrors.ErrInvalidInput)
	}

	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !pool.HasMember(inviterID) {
		return nil, fmt.Errorf("%w: user %s is not a member of pool %s", apperrors.ErrForbidden, inviterID, poolID)
	}

	now := time.Now().UTC()
	pool, err = s.poolRepo.ReserveInvites(ctx, poolID, inviteeIDs, inviterID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrPoolCapacity) {
			s.LogDebug(ctx, "Invite rejected, pool at capacity", slog.String("pool_id", poolID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to reserve invites", slog.String("pool_id", poolID))
		return nil, err
	}

	for _, inviteeID := range inviteeIDs {
		s.notifier.Notify(ctx, domain.Notification{
			RecipientID: inviteeID,
			SenderID:    inviterID,
			Type:        domain.NotifyPoolInvite,
			Message:     fmt.Sprintf("You have been invited to join %s", pool.Name),
			Payload:     map[string]string{"poolID": poolID},
		})
	}

	s.LogInfo(ctx, "Users invited to pool",
		slog.String("pool_id", poolID),
		slog.Int("invitee_count", len(inviteeIDs)))
	return pool, nil
}

// AcceptInvite moves the user from pending invitees into the member set.
// Duplicate accepts are harmless.
func (s *poolService) AcceptInvite(ctx context.Context, poolID, userID string) error {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return err
	}

	if err := s.poolRepo.PromoteInvite(ctx, poolID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to accept invite",
			slog.String("pool_id", poolID), slog.String("user_id", userID))
		return err
	}

	s.notifier.Notify(ctx, domain.Notification{
		RecipientID: pool.CreatorID,
		SenderID:    userID,
		Type:        domain.NotifyInviteAccept,
		Message:     fmt.Sprintf("A new member joined %s", pool.Name),
		Payload:     map[string]string{"poolID": poolID},
	})

	s.LogInfo(ctx, "Invite accepted", slog.String("pool_id", poolID), slog.String("user_id", userID))
	return nil
}

// RejectInvite drops the user's pending invite.
func (s *poolService) RejectInvite(ctx context.Context, poolID, userID string) error {
	if _, err := s.poolRepo.FindPoolByID(ctx, poolID); err != nil {
		return err
	}
	if err := s.poolRepo.RemovePendingInvite(ctx, poolID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to reject invite",
			slog.String("pool_id", poolID), slog.String("user_id", userID))
		return err
	}
	return nil
}

// RemoveMember removes a member from the pool. The creator may remove
// anyone but themselves; other members may only leave. Past bill split
// snapshots are intentionally untouched: a historical debt is not erased
// by someone leaving.
func (s *poolService) RemoveMember(ctx context.Context, poolID, userID, requesterID string) error {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return err
	}
	if requesterID != userID && requesterID != pool.CreatorID {
		return fmt.Errorf("%w: only the creator may remove other members", apperrors.ErrForbidden)
	}
	if userID == pool.CreatorID {
		return fmt.Errorf("%w: the creator cannot be removed from the pool", apperrors.ErrValidation)
	}

	if err := s.poolRepo.RemoveMember(ctx, poolID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to remove member",
			slog.String("pool_id", poolID), slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Member removed from pool",
		slog.String("pool_id", poolID), slog.String("user_id", userID))
	return nil
}

// ArchivePool marks the pool archived. Creator only.
func (s *poolService) ArchivePool(ctx context.Context, poolID, requesterID string) error {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return err
	}
	if requesterID != pool.CreatorID {
		return fmt.Errorf("%w: only the creator may archive the pool", apperrors.ErrForbidden)
	}

	if err := s.poolRepo.UpdatePoolStatus(ctx, poolID, domain.PoolArchived, requesterID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to archive pool", slog.String("pool_id", poolID))
		return err
	}

	s.LogInfo(ctx, "Pool archived", slog.String("pool_id", poolID))
	return nil
}

// DeletePool deletes the pool and all of its bills in a single database
// transaction, so a crash mid-delete can never orphan bills. Creator only.
func (s *poolService) DeletePool(ctx context.Context, poolID, requesterID string) error {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return err
	}
	if requesterID != pool.CreatorID {
		return fmt.Errorf("%w: only the creator may delete the pool", apperrors.ErrForbidden)
	}

	if err := s.poolRepo.DeletePoolCascade(ctx, poolID); err != nil {
		s.LogError(ctx, err, "Failed to delete pool", slog.String("pool_id", poolID))
		return err
	}

	s.LogInfo(ctx, "Pool deleted with its bills", slog.String("pool_id", poolID))
	return nil
}
