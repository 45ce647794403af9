package services

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

// BillSvcFacade owns the bill ledger of each pool.
type BillSvcFacade interface {
	// AddBill creates a bill with a split snapshot over the pool's current
	// members and notifies every member but the payer.
	AddBill(ctx context.Context, poolID string, req dto.CreateBillRequest, creatorID string) (*domain.Bill, error)

	// GetBill retrieves one bill. Requester must belong to the bill's pool.
	GetBill(ctx context.Context, billID, requesterID string) (*domain.Bill, error)

	// ListBills retrieves a pool's bills, most recent date first.
	ListBills(ctx context.Context, poolID, requesterID string) ([]domain.Bill, error)

	// MarkSplitPaid flips the caller's split on the bill to paid and
	// notifies the original payer. Idempotent.
	MarkSplitPaid(ctx context.Context, billID, userID string) error

	// DeleteBill removes a bill from the ledger and from all future balance
	// computations. Requester must belong to the bill's pool.
	DeleteBill(ctx context.Context, billID, requesterID string) error
}
