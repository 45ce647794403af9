package repositories

import (
	"context"
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// BillReader defines read operations for bill data.
type BillReader interface {
	// FindBillByID retrieves a specific bill, including its split snapshot.
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)

	// ListBillsByPoolID retrieves all bills of a pool, most recent date first.
	ListBillsByPoolID(ctx context.Context, poolID string) ([]domain.Bill, error)
}

// BillWriter defines write operations for bill data.
type BillWriter interface {
	// SaveBill persists a bill with its full split snapshot and bumps the
	// owning pool's last-updated timestamp, both within one transaction.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// UpdateSplitPaid flips the paid flag of userID's split on the bill to
	// true. The transition is one-way; marking an already-paid split is a
	// no-op.
	UpdateSplitPaid(ctx context.Context, billID, userID string, updatedBy string, at time.Time) error

	// DeleteBill removes the bill so it no longer contributes to balances.
	DeleteBill(ctx context.Context, billID string) error
}

// BillRepositoryFacade combines all bill-related repository interfaces.
type BillRepositoryFacade interface {
	BillReader
	BillWriter
}
