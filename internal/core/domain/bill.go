package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType indicates how a bill's total is divided among pool members.
type SplitType string

const (
	SplitEqual  SplitType = "EQUAL"
	SplitCustom SplitType = "CUSTOM"
)

// BillSplit is one member's share of a bill. It is a value type owned by
// its Bill, snapshotted at bill creation; later membership changes never
// alter it. Paid transitions false to true exactly once.
type BillSplit struct {
	UserID string          `json:"userID"`
	Amount decimal.Decimal `json:"amount"` // Non-negative; precise decimal type
	Paid   bool            `json:"paid"`
}

// Bill represents one shared expense within a pool. Splits always sum to
// TotalAmount and contain exactly one entry per pool member at creation time.
type Bill struct {
	BillID      string          `json:"billID"` // Primary Key (e.g., UUID)
	PoolID      string          `json:"poolID"` // FK -> Pool.poolID, immutable
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"` // Positive
	PaidByID    string          `json:"paidByID"`    // Member who fronted the money
	SplitType   SplitType       `json:"splitType"`
	Splits      []BillSplit     `json:"splits"`
	Category    string          `json:"category"`
	ReceiptURL  *string         `json:"receiptURL,omitempty"`
	Date        time.Time       `json:"date"` // Date the expense occurred
	AuditFields
}

// SplitFor returns the split belonging to userID, or nil if absent.
func (b *Bill) SplitFor(userID string) *BillSplit {
	for i := range b.Splits {
		if b.Splits[i].UserID == userID {
			return &b.Splits[i]
		}
	}
	return nil
}
