package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/core/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

type RatingServiceTestSuite struct {
	suite.Suite
	mockRatingRepo *MockRatingRepository
	mockUserRepo   *MockUserRepository
	mockNotifier   *MockNotifier
	service        portssvc.RatingSvcFacade
}

func (suite *RatingServiceTestSuite) SetupTest() {
	suite.mockRatingRepo = new(MockRatingRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewRatingService(suite.mockRatingRepo, suite.mockUserRepo, suite.mockNotifier)
}

func makeUser(idVerified bool, trustScore int) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		UserID:     uuid.NewString(),
		Name:       "Robin",
		Email:      "robin@example.com",
		IDVerified: idVerified,
		TrustScore: trustScore,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

func (suite *RatingServiceTestSuite) TestAddRating_RecomputesTrustScore() {
	ctx := context.Background()
	raterID := uuid.NewString()
	rated := makeUser(true, domain.TrustScoreBase)

	req := dto.CreateRatingRequest{RatedUserID: rated.UserID, Rating: 5}

	// Verified user, one 5-star rating: 50 + 20 + 30 + 2 = 102
	expectedScore := domain.ComputeTrustScore(true, 5.0, 1)

	suite.mockUserRepo.On("FindUserByID", ctx, rated.UserID).Return(rated, nil).Once()
	suite.mockRatingRepo.On("SaveRating", ctx, mock.AnythingOfType("domain.UserRating")).Return(nil).Once()
	suite.mockRatingRepo.On("GetRatingStats", ctx, rated.UserID).
		Return(domain.RatingStats{AverageRating: 5.0, RatingsCount: 1}, nil).Once()
	suite.mockUserRepo.On("UpdateTrustScore", ctx, rated.UserID, expectedScore, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotifyRated && n.RecipientID == rated.UserID
	})).Once()

	rating, err := suite.service.AddRating(ctx, req, raterID)

	suite.Require().NoError(err)
	suite.Equal(domain.RatingGeneral, rating.Category)
	suite.Equal(5, rating.Rating)
	suite.mockRatingRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *RatingServiceTestSuite) TestAddRating_SelfRatingRejected() {
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := suite.service.AddRating(ctx, dto.CreateRatingRequest{RatedUserID: userID, Rating: 5}, userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRatingRepo.AssertNotCalled(suite.T(), "SaveRating", mock.Anything, mock.Anything)
}

func (suite *RatingServiceTestSuite) TestAddRating_DuplicatePerBillRejected() {
	ctx := context.Background()
	raterID := uuid.NewString()
	rated := makeUser(false, domain.TrustScoreBase)
	billID := uuid.NewString()

	existing := &domain.UserRating{
		RatingID:    uuid.NewString(),
		RaterID:     raterID,
		RatedUserID: rated.UserID,
		Rating:      4,
		BillID:      &billID,
		CreatedAt:   time.Now().UTC(),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, rated.UserID).Return(rated, nil).Once()
	suite.mockRatingRepo.On("FindRatingByBill", ctx, raterID, rated.UserID, billID).Return(existing, nil).Once()

	_, err := suite.service.AddRating(ctx, dto.CreateRatingRequest{
		RatedUserID: rated.UserID,
		Rating:      5,
		BillID:      &billID,
	}, raterID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRatingRepo.AssertNotCalled(suite.T(), "SaveRating", mock.Anything, mock.Anything)
}

func (suite *RatingServiceTestSuite) TestAddRating_RatedUserNotFound() {
	ctx := context.Background()
	raterID := uuid.NewString()
	ratedID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, ratedID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddRating(ctx, dto.CreateRatingRequest{RatedUserID: ratedID, Rating: 3}, raterID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RatingServiceTestSuite) TestListRatingsForUser_EmptyIsNotNil() {
	ctx := context.Background()
	ratedID := uuid.NewString()

	suite.mockRatingRepo.On("ListRatingsForUser", ctx, ratedID).Return(nil, nil).Once()

	ratings, err := suite.service.ListRatingsForUser(ctx, ratedID)

	suite.Require().NoError(err)
	suite.NotNil(ratings)
	suite.Empty(ratings)
}

func TestRatingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RatingServiceTestSuite))
}
