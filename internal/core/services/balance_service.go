package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
)

// balanceService implements the BalanceSvcFacade interface. Balances are
// derived state: every call replays the pool's complete bill ledger rather
// than maintaining running totals, so there is no stored figure that can
// drift out of sync with the bills.
type balanceService struct {
	BaseService
	poolRepo portsrepo.PoolReader
	billRepo portsrepo.BillReader
}

// NewBalanceService creates a new balance service with the provided dependencies.
func NewBalanceService(poolRepo portsrepo.PoolReader, billRepo portsrepo.BillReader) portssvc.BalanceSvcFacade {
	return &balanceService{
		poolRepo: poolRepo,
		billRepo: billRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// CalculateBalances replays the full bill ledger of the pool.
//
// Every current member starts at zero. For each unpaid split whose owner is
// not the bill's payer, the amount moves from the owner's net balance to
// the payer's, and accumulates into a single deduplicated entry per
// counterparty pair. Splits belonging to users who have since left the pool
// still count: the ledger iterates split snapshots, not the live roster.
func (s *balanceService) CalculateBalances(ctx context.Context, poolID string) (map[string]domain.Balance, error) {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return nil, err
	}

	bills, err := s.billRepo.ListBillsByPoolID(ctx, poolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load bill ledger", slog.String("pool_id", poolID))
		return nil, err
	}

	net := make(map[string]decimal.Decimal, len(pool.MemberIDs))
	// owes[debtor][creditor] and owed[creditor][debtor] aggregate pairwise
	// amounts so each counterparty appears at most once per balance.
	owes := make(map[string]map[string]decimal.Decimal)
	owed := make(map[string]map[string]decimal.Decimal)

	for _, memberID := range pool.MemberIDs {
		net[memberID] = decimal.Zero
	}

	for i := range bills {
		bill := &bills[i]
		for _, split := range bill.Splits {
			if split.Paid || split.UserID == bill.PaidByID {
				continue
			}
			debtor, payer := split.UserID, bill.PaidByID

			net[debtor] = balanceOrZero(net, debtor).Sub(split.Amount)
			net[payer] = balanceOrZero(net, payer).Add(split.Amount)

			addPairwise(owes, debtor, payer, split.Amount)
			addPairwise(owed, payer, debtor, split.Amount)
		}
	}

	balances := make(map[string]domain.Balance, len(net))
	for userID, amount := range net {
		balances[userID] = domain.Balance{
			UserID:     userID,
			PoolID:     poolID,
			NetBalance: amount,
			OwesTo:     sortedCounterparties(owes[userID]),
			OwedBy:     sortedCounterparties(owed[userID]),
		}
	}

	s.LogDebug(ctx, "Balances computed",
		slog.String("pool_id", poolID),
		slog.Int("bill_count", len(bills)),
		slog.Int("participant_count", len(balances)))
	return balances, nil
}

// GetUserPoolBalance returns one user's entry from the full replay. It
// deliberately performs the complete computation; there is no cheaper
// correct shortcut.
func (s *balanceService) GetUserPoolBalance(ctx context.Context, poolID, userID string) (*domain.Balance, error) {
	balances, err := s.CalculateBalances(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if balance, ok := balances[userID]; ok {
		return &balance, nil
	}
	// No membership and no ledger history: the user's position is zero.
	return &domain.Balance{
		UserID:     userID,
		PoolID:     poolID,
		NetBalance: decimal.Zero,
		OwesTo:     []domain.CounterpartyAmount{},
		OwedBy:     []domain.CounterpartyAmount{},
	}, nil
}

func balanceOrZero(net map[string]decimal.Decimal, userID string) decimal.Decimal {
	if amount, ok := net[userID]; ok {
		return amount
	}
	return decimal.Zero
}

func addPairwise(pairs map[string]map[string]decimal.Decimal, from, to string, amount decimal.Decimal) {
	counterparties, ok := pairs[from]
	if !ok {
		counterparties = make(map[string]decimal.Decimal)
		pairs[from] = counterparties
	}
	counterparties[to] = counterparties[to].Add(amount)
}

// sortedCounterparties flattens a counterparty map into a slice ordered by
// user ID, so repeated replays of the same ledger produce identical output.
func sortedCounterparties(amounts map[string]decimal.Decimal) []domain.CounterpartyAmount {
	entries := make([]domain.CounterpartyAmount, 0, len(amounts))
	for userID, amount := range amounts {
		entries = append(entries, domain.CounterpartyAmount{UserID: userID, Amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
	return entries
}
