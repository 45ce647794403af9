package splitmath

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeSplits_EqualSplit(t *testing.T) {
	members := []string{"alice", "bob", "carol"}

	splits, err := ComputeSplits(d("90.00"), members, domain.SplitEqual, "alice", nil)
	require.NoError(t, err)
	require.Len(t, splits, 3)

	sum := decimal.Zero
	paidCount := 0
	for _, s := range splits {
		sum = sum.Add(s.Amount)
		if s.Paid {
			paidCount++
			assert.Equal(t, "alice", s.UserID, "only the payer's split starts paid")
		}
	}
	assert.True(t, sum.Equal(d("90.00")), "splits must sum to the total, got %s", sum)
	assert.Equal(t, 1, paidCount)
	assert.True(t, splits[1].Amount.Equal(d("30.00")))
	assert.True(t, splits[2].Amount.Equal(d("30.00")))
}

func TestComputeSplits_EqualSplitPayerAbsorbsRemainder(t *testing.T) {
	// 10.00 / 3 = 3.33 with a 0.01 remainder; the payer's share carries it.
	members := []string{"alice", "bob", "carol"}

	splits, err := ComputeSplits(d("10.00"), members, domain.SplitEqual, "bob", nil)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
		switch s.UserID {
		case "bob":
			assert.True(t, s.Amount.Equal(d("3.34")), "payer share = %s", s.Amount)
		default:
			assert.True(t, s.Amount.Equal(d("3.33")), "%s share = %s", s.UserID, s.Amount)
		}
	}
	assert.True(t, sum.Equal(d("10.00")), "no cent may be lost or gained, got %s", sum)
}

func TestComputeSplits_EqualSplitSingleMember(t *testing.T) {
	splits, err := ComputeSplits(d("25.50"), []string{"alice"}, domain.SplitEqual, "alice", nil)
	require.NoError(t, err)
	require.Len(t, splits, 1)
	assert.True(t, splits[0].Amount.Equal(d("25.50")))
	assert.True(t, splits[0].Paid)
}

func TestComputeSplits_CustomSplit(t *testing.T) {
	members := []string{"alice", "bob"}
	amounts := map[string]decimal.Decimal{
		"alice": d("60.00"),
		"bob":   d("40.00"),
	}

	splits, err := ComputeSplits(d("100.00"), members, domain.SplitCustom, "alice", amounts)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.True(t, splits[0].Amount.Equal(d("60.00")))
	assert.True(t, splits[0].Paid)
	assert.True(t, splits[1].Amount.Equal(d("40.00")))
	assert.False(t, splits[1].Paid)
}

func TestComputeSplits_CustomSplitSumMismatch(t *testing.T) {
	members := []string{"alice", "bob"}
	amounts := map[string]decimal.Decimal{
		"alice": d("40.00"),
		"bob":   d("50.00"),
	}

	splits, err := ComputeSplits(d("100.00"), members, domain.SplitCustom, "alice", amounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "90.00")
	assert.Contains(t, err.Error(), "100.00")
	assert.Nil(t, splits, "no splits may be produced on validation failure")
}

func TestComputeSplits_CustomSplitWithinEpsilon(t *testing.T) {
	// Off by exactly one cent is tolerated.
	members := []string{"alice", "bob", "carol"}
	amounts := map[string]decimal.Decimal{
		"alice": d("3.33"),
		"bob":   d("3.33"),
		"carol": d("3.33"),
	}

	splits, err := ComputeSplits(d("10.00"), members, domain.SplitCustom, "carol", amounts)
	require.NoError(t, err)
	assert.Len(t, splits, 3)
}

func TestComputeSplits_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		total   decimal.Decimal
		members []string
		payer   string
		custom  map[string]decimal.Decimal
		split   domain.SplitType
		wantErr error
	}{
		{
			name:    "empty member list",
			total:   d("10.00"),
			members: nil,
			payer:   "alice",
			split:   domain.SplitEqual,
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "zero total",
			total:   decimal.Zero,
			members: []string{"alice"},
			payer:   "alice",
			split:   domain.SplitEqual,
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "negative total",
			total:   d("-5.00"),
			members: []string{"alice"},
			payer:   "alice",
			split:   domain.SplitEqual,
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "payer not a member",
			total:   d("10.00"),
			members: []string{"alice", "bob"},
			payer:   "mallory",
			split:   domain.SplitEqual,
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "unknown split type",
			total:   d("10.00"),
			members: []string{"alice"},
			payer:   "alice",
			split:   domain.SplitType("PROPORTIONAL"),
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "custom split missing a member amount",
			total:   d("10.00"),
			members: []string{"alice", "bob"},
			payer:   "alice",
			split:   domain.SplitCustom,
			custom:  map[string]decimal.Decimal{"alice": d("10.00")},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "custom split negative amount",
			total:   d("10.00"),
			members: []string{"alice", "bob"},
			payer:   "alice",
			split:   domain.SplitCustom,
			custom:  map[string]decimal.Decimal{"alice": d("15.00"), "bob": d("-5.00")},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplits(tt.total, tt.members, tt.split, tt.payer, tt.custom)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, splits)
		})
	}
}
