package domain

import "github.com/shopspring/decimal"

// CounterpartyAmount is an aggregated amount against a single counterparty.
// Entries are deduplicated: repeated unpaid splits between the same two
// users accumulate into one entry.
type CounterpartyAmount struct {
	UserID string          `json:"userID"`
	Amount decimal.Decimal `json:"amount"`
}

// Balance is a user's derived position within one pool. It is never
// persisted; it is recomputed from the full bill ledger on every request.
// Positive NetBalance means the user is owed money, negative means the
// user owes money.
type Balance struct {
	UserID     string               `json:"userID"`
	PoolID     string               `json:"poolID"`
	NetBalance decimal.Decimal      `json:"netBalance"`
	OwesTo     []CounterpartyAmount `json:"owesTo"`
	OwedBy     []CounterpartyAmount `json:"owedBy"`
}
