package services

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// BalanceSvcFacade derives balances from a pool's bill ledger. Balances are
// never stored; every call replays the complete ledger, so a late-arriving
// bill is always included in the next read with no incremental bookkeeping
// to drift.
type BalanceSvcFacade interface {
	// CalculateBalances replays the pool's full bill ledger and returns one
	// balance per participating user, keyed by user ID. Members with no
	// activity get a zero balance; departed members with outstanding splits
	// are still included.
	CalculateBalances(ctx context.Context, poolID string) (map[string]domain.Balance, error)

	// GetUserPoolBalance returns a single user's entry from the full
	// computation. It performs the same complete replay.
	GetUserPoolBalance(ctx context.Context, poolID, userID string) (*domain.Balance, error)
}
