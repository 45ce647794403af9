package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
	"github.com/trustnest/trustnest_backend/internal/utils/splitmath"
)

// billService implements the BillSvcFacade interface.
type billService struct {
	BaseService
	billRepo portsrepo.BillRepositoryFacade
	poolRepo portsrepo.PoolReader
	notifier portssvc.Notifier
}

// NewBillService creates a new bill service with the provided dependencies.
func NewBillService(billRepo portsrepo.BillRepositoryFacade, poolRepo portsrepo.PoolReader, notifier portssvc.Notifier) portssvc.BillSvcFacade {
	return &billService{
		billRepo: billRepo,
		poolRepo: poolRepo,
		notifier: notifier,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

// AddBill creates a bill with a split snapshot over the pool's current
// member roster. Validation happens before any write; notification failures
// never fail the bill.
func (s *billService) AddBill(ctx context.Context, poolID string, req dto.CreateBillRequest, creatorID string) (*domain.Bill, error) {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find pool for bill", slog.String("pool_id", poolID))
		}
		return nil, err
	}
	if !pool.HasMember(creatorID) {
		return nil, fmt.Errorf("%w: user %s is not a member of pool %s", apperrors.ErrForbidden, creatorID, poolID)
	}
	if !pool.HasMember(req.PaidByID) {
		return nil, fmt.Errorf("%w: payer %s is not a member of pool %s", apperrors.ErrValidation, req.PaidByID, poolID)
	}

	splits, err := splitmath.ComputeSplits(req.TotalAmount, pool.MemberIDs, domain.SplitType(req.SplitType), req.PaidByID, req.CustomSplits)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	billDate := now
	if req.Date != nil {
		billDate = req.Date.UTC()
	}

	bill := domain.Bill{
		BillID:      uuid.NewString(),
		PoolID:      poolID,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		PaidByID:    req.PaidByID,
		SplitType:   domain.SplitType(req.SplitType),
		Splits:      splits,
		Category:    req.Category,
		ReceiptURL:  req.ReceiptURL,
		Date:        billDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill",
			slog.String("bill_id", bill.BillID), slog.String("pool_id", poolID))
		return nil, err
	}

	for _, split := range splits {
		if split.UserID == req.PaidByID {
			continue
		}
		s.notifier.Notify(ctx, domain.Notification{
			RecipientID: split.UserID,
			SenderID:    creatorID,
			Type:        domain.NotifyBillAdded,
			Message:     fmt.Sprintf("New bill in %s: %s, your share is %s", pool.Name, bill.Description, split.Amount.StringFixed(2)),
			Payload:     map[string]string{"poolID": poolID, "billID": bill.BillID},
		})
	}

	s.LogInfo(ctx, "Bill added",
		slog.String("bill_id", bill.BillID),
		slog.String("pool_id", poolID),
		slog.String("total_amount", bill.TotalAmount.String()))
	return &bill, nil
}

// GetBill retrieves one bill for a requester belonging to its pool.
func (s *billService) GetBill(ctx context.Context, billID, requesterID string) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizePoolAccess(ctx, bill.PoolID, requesterID); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills retrieves a pool's bills, most recent date first.
func (s *billService) ListBills(ctx context.Context, poolID, requesterID string) ([]domain.Bill, error) {
	if err := s.authorizePoolAccess(ctx, poolID, requesterID); err != nil {
		return nil, err
	}
	bills, err := s.billRepo.ListBillsByPoolID(ctx, poolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.String("pool_id", poolID))
		return nil, err
	}
	if bills == nil {
		return []domain.Bill{}, nil
	}
	return bills, nil
}

// MarkSplitPaid flips the caller's split on the bill to paid. The
// transition is one-way; repeated calls are no-ops.
func (s *billService) MarkSplitPaid(ctx context.Context, billID, userID string) error {
	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bill", slog.String("bill_id", billID))
		}
		return err
	}

	split := bill.SplitFor(userID)
	if split == nil {
		return fmt.Errorf("%w: user %s has no split on bill %s", apperrors.ErrNotFound, userID, billID)
	}
	if split.Paid {
		s.LogDebug(ctx, "Split already paid, nothing to do",
			slog.String("bill_id", billID), slog.String("user_id", userID))
		return nil
	}

	if err := s.billRepo.UpdateSplitPaid(ctx, billID, userID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to mark split paid",
			slog.String("bill_id", billID), slog.String("user_id", userID))
		return err
	}

	s.notifier.Notify(ctx, domain.Notification{
		RecipientID: bill.PaidByID,
		SenderID:    userID,
		Type:        domain.NotifySplitPaid,
		Message:     fmt.Sprintf("Your share of %s was settled (%s)", bill.Description, split.Amount.StringFixed(2)),
		Payload:     map[string]string{"poolID": bill.PoolID, "billID": billID},
	})

	s.LogInfo(ctx, "Split marked paid",
		slog.String("bill_id", billID), slog.String("user_id", userID))
	return nil
}

// DeleteBill removes a bill; it simply stops contributing to balances.
func (s *billService) DeleteBill(ctx context.Context, billID, requesterID string) error {
	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return err
	}
	if err := s.authorizePoolAccess(ctx, bill.PoolID, requesterID); err != nil {
		return err
	}

	if err := s.billRepo.DeleteBill(ctx, billID); err != nil {
		s.LogError(ctx, err, "Failed to delete bill", slog.String("bill_id", billID))
		return err
	}

	s.LogInfo(ctx, "Bill deleted", slog.String("bill_id", billID))
	return nil
}

func (s *billService) authorizePoolAccess(ctx context.Context, poolID, userID string) error {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return err
	}
	if !pool.HasMember(userID) {
		return fmt.Errorf("%w: user %s is not a member of pool %s", apperrors.ErrForbidden, userID, poolID)
	}
	return nil
}
