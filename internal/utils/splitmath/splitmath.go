// Package splitmath computes per-member bill splits. It is pure: no I/O,
// no clock, no randomness.
package splitmath

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// splitEpsilon is the tolerance for custom split sums against the bill total.
var splitEpsilon = decimal.NewFromFloat(0.01)

// two decimal places for currency amounts
const currencyScale = 2

// ComputeSplits builds the split snapshot for a new bill.
//
// For an equal split each member's share is total/n rounded to two places;
// the payer absorbs the rounding remainder so the split amounts always sum
// exactly to the total. For a custom split the caller supplies one amount
// per member and the sum must match the total within splitEpsilon.
//
// The payer's split starts Paid, everyone else's starts unpaid. The result
// has exactly one split per member, in memberIDs order.
func ComputeSplits(total decimal.Decimal, memberIDs []string, splitType domain.SplitType, payerID string, customAmounts map[string]decimal.Decimal) ([]domain.BillSplit, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: member list is empty", apperrors.ErrInvalidInput)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive, got %s", apperrors.ErrInvalidInput, total)
	}
	payerIsMember := false
	for _, id := range memberIDs {
		if id == payerID {
			payerIsMember = true
			break
		}
	}
	if !payerIsMember {
		return nil, fmt.Errorf("%w: payer %s is not a pool member", apperrors.ErrInvalidInput, payerID)
	}

	switch splitType {
	case domain.SplitEqual:
		return equalSplits(total, memberIDs, payerID), nil
	case domain.SplitCustom:
		return customSplits(total, memberIDs, payerID, customAmounts)
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", apperrors.ErrInvalidInput, splitType)
	}
}

func equalSplits(total decimal.Decimal, memberIDs []string, payerID string) []domain.BillSplit {
	n := decimal.NewFromInt(int64(len(memberIDs)))
	share := total.DivRound(n, currencyScale)
	// Sub-cent remainder left by the division, assigned to the payer.
	remainder := total.Sub(share.Mul(n))

	splits := make([]domain.BillSplit, len(memberIDs))
	for i, id := range memberIDs {
		amount := share
		if id == payerID {
			amount = share.Add(remainder)
		}
		splits[i] = domain.BillSplit{
			UserID: id,
			Amount: amount,
			Paid:   id == payerID,
		}
	}
	return splits
}

func customSplits(total decimal.Decimal, memberIDs []string, payerID string, customAmounts map[string]decimal.Decimal) ([]domain.BillSplit, error) {
	if len(customAmounts) != len(memberIDs) {
		return nil, fmt.Errorf("%w: expected %d custom amounts, got %d", apperrors.ErrValidation, len(memberIDs), len(customAmounts))
	}

	sum := decimal.Zero
	splits := make([]domain.BillSplit, len(memberIDs))
	for i, id := range memberIDs {
		amount, ok := customAmounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: missing custom amount for member %s", apperrors.ErrValidation, id)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: custom amount for member %s is negative", apperrors.ErrValidation, id)
		}
		sum = sum.Add(amount)
		splits[i] = domain.BillSplit{
			UserID: id,
			Amount: amount,
			Paid:   id == payerID,
		}
	}

	if sum.Sub(total).Abs().GreaterThan(splitEpsilon) {
		return nil, fmt.Errorf("%w: split amounts (%s) don't match total amount (%s)",
			apperrors.ErrValidation, sum.StringFixed(currencyScale), total.StringFixed(currencyScale))
	}
	return splits, nil
}
