package dto

import (
	"github.com/shopspring/decimal"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// CounterpartyResponse is one aggregated debt entry against a counterparty.
type CounterpartyResponse struct {
	UserID string          `json:"userID"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse defines the derived balance returned for one pool member.
type BalanceResponse struct {
	UserID     string                 `json:"userID"`
	PoolID     string                 `json:"poolID"`
	NetBalance decimal.Decimal        `json:"netBalance"`
	OwesTo     []CounterpartyResponse `json:"owesTo"`
	OwedBy     []CounterpartyResponse `json:"owedBy"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		UserID:     b.UserID,
		PoolID:     b.PoolID,
		NetBalance: b.NetBalance,
		OwesTo:     toCounterpartyResponses(b.OwesTo),
		OwedBy:     toCounterpartyResponses(b.OwedBy),
	}
}

func toCounterpartyResponses(entries []domain.CounterpartyAmount) []CounterpartyResponse {
	responses := make([]CounterpartyResponse, len(entries))
	for i, e := range entries {
		responses[i] = CounterpartyResponse{UserID: e.UserID, Amount: e.Amount}
	}
	return responses
}
