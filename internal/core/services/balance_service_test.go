package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockPoolRepo *MockPoolRepository
	mockBillRepo *MockBillRepository
	service      portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockPoolRepo = new(MockPoolRepository)
	suite.mockBillRepo = new(MockBillRepository)
	suite.service = services.NewBalanceService(suite.mockPoolRepo, suite.mockBillRepo)
}

func makeBill(poolID, payerID string, total string, splits []domain.BillSplit) domain.Bill {
	now := time.Now().UTC()
	return domain.Bill{
		BillID:      uuid.NewString(),
		PoolID:      poolID,
		Description: "Test bill",
		TotalAmount: decimal.RequireFromString(total),
		PaidByID:    payerID,
		SplitType:   domain.SplitEqual,
		Splits:      splits,
		Date:        now,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

// Two bills, three members: A pays 90 split equally, B pays 30 split
// equally. A ends at +50, B at -10, C at -40.
func (suite *BalanceServiceTestSuite) TestCalculateBalances_TwoBillScenario() {
	ctx := context.Background()
	userA, userB, userC := "user-a", "user-b", "user-c"
	pool := makePool(userA, []string{userA, userB, userC}, nil)

	thirty := decimal.RequireFromString("30")
	ten := decimal.RequireFromString("10")
	bills := []domain.Bill{
		makeBill(pool.PoolID, userA, "90", []domain.BillSplit{
			{UserID: userA, Amount: thirty, Paid: true},
			{UserID: userB, Amount: thirty},
			{UserID: userC, Amount: thirty},
		}),
		makeBill(pool.PoolID, userB, "30", []domain.BillSplit{
			{UserID: userA, Amount: ten},
			{UserID: userB, Amount: ten, Paid: true},
			{UserID: userC, Amount: ten},
		}),
	}

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockBillRepo.On("ListBillsByPoolID", ctx, pool.PoolID).Return(bills, nil).Once()

	balances, err := suite.service.CalculateBalances(ctx, pool.PoolID)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 3)
	suite.True(balances[userA].NetBalance.Equal(decimal.RequireFromString("50")), "A should be owed 50, got %s", balances[userA].NetBalance)
	suite.True(balances[userB].NetBalance.Equal(decimal.RequireFromString("-10")), "B should owe 10, got %s", balances[userB].NetBalance)
	suite.True(balances[userC].NetBalance.Equal(decimal.RequireFromString("-40")), "C should owe 40, got %s", balances[userC].NetBalance)

	// C owes both A and B, each exactly once
	suite.Require().Len(balances[userC].OwesTo, 2)
	suite.Equal(userA, balances[userC].OwesTo[0].UserID)
	suite.True(balances[userC].OwesTo[0].Amount.Equal(thirty))
	suite.Equal(userB, balances[userC].OwesTo[1].UserID)
	suite.True(balances[userC].OwesTo[1].Amount.Equal(ten))

	// A is owed by B and C
	suite.Require().Len(balances[userA].OwedBy, 2)
	suite.Require().Len(balances[userA].OwesTo, 1)
	suite.Equal(userB, balances[userA].OwesTo[0].UserID)
}

// Net balances across all participants always sum to zero.
func (suite *BalanceServiceTestSuite) TestCalculateBalances_Conservation() {
	ctx := context.Background()
	userA, userB, userC := "user-a", "user-b", "user-c"
	pool := makePool(userA, []string{userA, userB, userC}, nil)

	bills := []domain.Bill{
		makeBill(pool.PoolID, userA, "10.00", []domain.BillSplit{
			{UserID: userA, Amount: decimal.RequireFromString("3.34"), Paid: true},
			{UserID: userB, Amount: decimal.RequireFromString("3.33")},
			{UserID: userC, Amount: decimal.RequireFromString("3.33")},
		}),
		makeBill(pool.PoolID, userC, "47.50", []domain.BillSplit{
			{UserID: userA, Amount: decimal.RequireFromString("20.00")},
			{UserID: userB, Amount: decimal.RequireFromString("12.50"), Paid: true},
			{UserID: userC, Amount: decimal.RequireFromString("15.00"), Paid: true},
		}),
	}

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockBillRepo.On("ListBillsByPoolID", ctx, pool.PoolID).Return(bills, nil).Once()

	balances, err := suite.service.CalculateBalances(ctx, pool.PoolID)

	suite.Require().NoError(err)
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.NetBalance)
	}
	suite.True(sum.IsZero(), "net balances must sum to zero, got %s", sum)
}

// Replaying the same ledger twice yields identical output, including the
// ordering of counterparty lists.
func (suite *BalanceServiceTestSuite) TestCalculateBalances_ReplayIsDeterministic() {
	ctx := context.Background()
	userA, userB, userC := "user-a", "user-b", "user-c"
	pool := makePool(userA, []string{userA, userB, userC}, nil)

	thirty := decimal.RequireFromString("30")
	bills := []domain.Bill{
		makeBill(pool.PoolID, userA, "90", []domain.BillSplit{
			{UserID: userA, Amount: thirty, Paid: true},
			{UserID: userB, Amount: thirty},
			{UserID: userC, Amount: thirty},
		}),
	}

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Twice()
	suite.mockBillRepo.On("ListBillsByPoolID", ctx, pool.PoolID).Return(bills, nil).Twice()

	first, err := suite.service.CalculateBalances(ctx, pool.PoolID)
	suite.Require().NoError(err)
	second, err := suite.service.CalculateBalances(ctx, pool.PoolID)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

// Paid splits no longer contribute to anyone's balance.
func (suite *BalanceServiceTestSuite) TestCalculateBalances_PaidSplitsExcluded() {
	ctx := context.Background()
	userA, userB := "user-a", "user-b"
	pool := makePool(userA, []string{userA, userB}, nil)

	twenty := decimal.RequireFromString("20")
	bills := []domain.Bill{
		makeBill(pool.PoolID, userA, "40", []domain.BillSplit{
			{UserID: userA, Amount: twenty, Paid: true},
			{UserID: userB, Amount: twenty, Paid: true},
		}),
	}

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockBillRepo.On("ListBillsByPoolID", ctx, pool.PoolID).Return(bills, nil).Once()

	balances, err := suite.service.CalculateBalances(ctx, pool.PoolID)

	suite.Require().NoError(err)
	suite.True(balances[userA].NetBalance.IsZero())
	suite.True(balances[userB].NetBalance.IsZero())
	suite.Empty(balances[userA].OwedBy)
	suite.Empty(balances[userB].OwesTo)
}

// A user who left the pool still appears in the output while their unpaid
// splits remain on the ledger.
func (suite *BalanceServiceTestSuite) TestCalculateBalances_DepartedMemberStillOwes() {
	ctx := context.Background()
	userA, userB, departed := "user-a", "user-b", "user-gone"
	pool := makePool(userA, []string{userA, userB}, nil)

	fifteen := decimal.RequireFromString("15")
	bills := []domain.Bill{
		makeBill(pool.PoolID, userA, "45", []domain.BillSplit{
			{UserID: userA, Amount: fifteen, Paid: true},
			{UserID: userB, Amount: fifteen},
			{UserID: departed, Amount: fifteen},
		}),
	}

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockBillRepo.On("ListBillsByPoolID", ctx, pool.PoolID).Return(bills, nil).Once()

	balances, err := suite.service.CalculateBalances(ctx, pool.PoolID)

	suite.Require().NoError(err)
	suite.Require().Contains(balances, departed)
	suite.True(balances[departed].NetBalance.Equal(fifteen.Neg()))
	suite.True(balances[userA].NetBalance.Equal(decimal.RequireFromString("30")))
}

// Members with no bill activity get an explicit zero balance.
func (suite *BalanceServiceTestSuite) TestCalculateBalances_EmptyLedger() {
	ctx := context.Background()
	userA, userB := "user-a", "user-b"
	pool := makePool(userA, []string{userA, userB}, nil)

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockBillRepo.On("ListBillsByPoolID", ctx, pool.PoolID).Return([]domain.Bill{}, nil).Once()

	balances, err := suite.service.CalculateBalances(ctx, pool.PoolID)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	suite.True(balances[userA].NetBalance.IsZero())
	suite.True(balances[userB].NetBalance.IsZero())
}

func (suite *BalanceServiceTestSuite) TestGetUserPoolBalance_UnknownUserIsZero() {
	ctx := context.Background()
	userA := "user-a"
	pool := makePool(userA, []string{userA}, nil)

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockBillRepo.On("ListBillsByPoolID", ctx, pool.PoolID).Return([]domain.Bill{}, nil).Once()

	balance, err := suite.service.GetUserPoolBalance(ctx, pool.PoolID, "stranger")

	suite.Require().NoError(err)
	suite.True(balance.NetBalance.IsZero())
	suite.Empty(balance.OwesTo)
	suite.Empty(balance.OwedBy)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
