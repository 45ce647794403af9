package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/core/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

type BillServiceTestSuite struct {
	suite.Suite
	mockBillRepo *MockBillRepository
	mockPoolRepo *MockPoolRepository
	mockNotifier *MockNotifier
	service      portssvc.BillSvcFacade
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockPoolRepo = new(MockPoolRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewBillService(suite.mockBillRepo, suite.mockPoolRepo, suite.mockNotifier)
}

func (suite *BillServiceTestSuite) TestAddBill_EqualSplitSnapshot() {
	ctx := context.Background()
	userA, userB, userC := "user-a", "user-b", "user-c"
	pool := makePool(userA, []string{userA, userB, userC}, nil)

	req := dto.CreateBillRequest{
		Description: "Groceries",
		TotalAmount: decimal.RequireFromString("90"),
		PaidByID:    userA,
		SplitType:   "EQUAL",
	}

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockBillRepo.On("SaveBill", ctx, mock.AnythingOfType("domain.Bill")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotifyBillAdded
	})).Times(2)

	bill, err := suite.service.AddBill(ctx, pool.PoolID, req, userA)

	suite.Require().NoError(err)
	suite.Require().Len(bill.Splits, 3)

	sum := decimal.Zero
	for _, split := range bill.Splits {
		sum = sum.Add(split.Amount)
		if split.UserID == userA {
			suite.True(split.Paid, "payer's own split starts paid")
		} else {
			suite.False(split.Paid)
		}
	}
	suite.True(sum.Equal(req.TotalAmount), "splits must sum exactly to the total")
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestAddBill_PoolNotFound() {
	ctx := context.Background()
	poolID := uuid.NewString()

	suite.mockPoolRepo.On("FindPoolByID", ctx, poolID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddBill(ctx, poolID, dto.CreateBillRequest{
		Description: "x",
		TotalAmount: decimal.RequireFromString("10"),
		PaidByID:    "user-a",
		SplitType:   "EQUAL",
	}, "user-a")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestAddBill_PayerMustBeMember() {
	ctx := context.Background()
	userA := "user-a"
	pool := makePool(userA, []string{userA}, nil)

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()

	_, err := suite.service.AddBill(ctx, pool.PoolID, dto.CreateBillRequest{
		Description: "Rent",
		TotalAmount: decimal.RequireFromString("100"),
		PaidByID:    "outsider",
		SplitType:   "EQUAL",
	}, userA)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BillServiceTestSuite) TestAddBill_CustomSplitMismatchRejected() {
	ctx := context.Background()
	userA, userB := "user-a", "user-b"
	pool := makePool(userA, []string{userA, userB}, nil)

	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()

	_, err := suite.service.AddBill(ctx, pool.PoolID, dto.CreateBillRequest{
		Description: "Utilities",
		TotalAmount: decimal.RequireFromString("100"),
		PaidByID:    userA,
		SplitType:   "CUSTOM",
		CustomSplits: map[string]decimal.Decimal{
			userA: decimal.RequireFromString("40"),
			userB: decimal.RequireFromString("50"),
		},
	}, userA)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestMarkSplitPaid_Idempotent() {
	ctx := context.Background()
	userA, userB := "user-a", "user-b"
	pool := makePool(userA, []string{userA, userB}, nil)
	bill := makeBill(pool.PoolID, userA, "40", []domain.BillSplit{
		{UserID: userA, Amount: decimal.RequireFromString("20"), Paid: true},
		{UserID: userB, Amount: decimal.RequireFromString("20"), Paid: true},
	})

	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(&bill, nil).Once()

	// Already paid: succeeds without a write and without a notification
	err := suite.service.MarkSplitPaid(ctx, bill.BillID, userB)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "UpdateSplitPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestMarkSplitPaid_NotifiesPayer() {
	ctx := context.Background()
	userA, userB := "user-a", "user-b"
	pool := makePool(userA, []string{userA, userB}, nil)
	bill := makeBill(pool.PoolID, userA, "40", []domain.BillSplit{
		{UserID: userA, Amount: decimal.RequireFromString("20"), Paid: true},
		{UserID: userB, Amount: decimal.RequireFromString("20")},
	})

	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(&bill, nil).Once()
	suite.mockBillRepo.On("UpdateSplitPaid", ctx, bill.BillID, userB, userB, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotifySplitPaid && n.RecipientID == userA
	})).Once()

	err := suite.service.MarkSplitPaid(ctx, bill.BillID, userB)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestMarkSplitPaid_NoSplitForUser() {
	ctx := context.Background()
	userA := "user-a"
	pool := makePool(userA, []string{userA}, nil)
	bill := makeBill(pool.PoolID, userA, "20", []domain.BillSplit{
		{UserID: userA, Amount: decimal.RequireFromString("20"), Paid: true},
	})

	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(&bill, nil).Once()

	err := suite.service.MarkSplitPaid(ctx, bill.BillID, "stranger")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BillServiceTestSuite) TestGetBill_RequiresPoolMembership() {
	ctx := context.Background()
	userA := "user-a"
	pool := makePool(userA, []string{userA}, nil)
	bill := makeBill(pool.PoolID, userA, "20", []domain.BillSplit{
		{UserID: userA, Amount: decimal.RequireFromString("20"), Paid: true},
	})

	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(&bill, nil).Once()
	suite.mockPoolRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()

	_, err := suite.service.GetBill(ctx, bill.BillID, "outsider")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestBillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
