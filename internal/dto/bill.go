package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// CreateBillRequest defines the expected JSON body for adding a bill.
// CustomSplits is required when splitType is CUSTOM and ignored otherwise.
type CreateBillRequest struct {
	Description  string                     `json:"description" binding:"required,max=200"`
	TotalAmount  decimal.Decimal            `json:"totalAmount" binding:"required"`
	PaidByID     string                     `json:"paidByID" binding:"required"`
	SplitType    string                     `json:"splitType" binding:"required,oneof=EQUAL CUSTOM"`
	CustomSplits map[string]decimal.Decimal `json:"customSplits,omitempty"`
	Category     string                     `json:"category" binding:"max=50"`
	Date         *time.Time                 `json:"date,omitempty"`
	ReceiptURL   *string                    `json:"receiptURL,omitempty" binding:"omitempty,url"`
}

// SplitResponse defines the data returned for one bill split.
type SplitResponse struct {
	UserID string          `json:"userID"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID      string          `json:"billID"`
	PoolID      string          `json:"poolID"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidByID    string          `json:"paidByID"`
	SplitType   string          `json:"splitType"`
	Splits      []SplitResponse `json:"splits"`
	Category    string          `json:"category,omitempty"`
	ReceiptURL  *string         `json:"receiptURL,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToBillResponse converts a domain.Bill to BillResponse.
func ToBillResponse(b *domain.Bill) BillResponse {
	splits := make([]SplitResponse, len(b.Splits))
	for i, s := range b.Splits {
		splits[i] = SplitResponse{UserID: s.UserID, Amount: s.Amount, Paid: s.Paid}
	}
	return BillResponse{
		BillID:      b.BillID,
		PoolID:      b.PoolID,
		Description: b.Description,
		TotalAmount: b.TotalAmount,
		PaidByID:    b.PaidByID,
		SplitType:   string(b.SplitType),
		Splits:      splits,
		Category:    b.Category,
		ReceiptURL:  b.ReceiptURL,
		Date:        b.Date,
		CreatedAt:   b.CreatedAt,
	}
}

// ToBillResponses converts a slice of domain.Bill to []BillResponse.
func ToBillResponses(bills []domain.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}
