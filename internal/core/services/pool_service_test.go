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
	"github.com/trustnest/trustnest_backend/internal/core/services"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

type PoolServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockPoolRepository
	mockNotifier *MockNotifier
	service      portssvc.PoolSvcFacade
}

func (suite *PoolServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPoolRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewPoolService(suite.mockRepo, suite.mockNotifier)
}

func makePool(creatorID string, memberIDs, pendingInvites []string) *domain.Pool {
	now := time.Now().UTC()
	return &domain.Pool{
		PoolID:         uuid.NewString(),
		Name:           "Maple Street House",
		Category:       domain.CategoryRent,
		CreatorID:      creatorID,
		MemberIDs:      memberIDs,
		PendingInvites: pendingInvites,
		Status:         domain.PoolActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
}

func (suite *PoolServiceTestSuite) TestCreatePool_CreatorIsSoleMember() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreatePoolRequest{Name: "Maple Street House", Category: "RENT"}

	suite.mockRepo.On("SavePool", ctx, mock.AnythingOfType("domain.Pool")).Return(nil).Once()

	pool, err := suite.service.CreatePool(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(pool)
	suite.Equal([]string{creatorID}, pool.MemberIDs)
	suite.Empty(pool.PendingInvites)
	suite.Equal(creatorID, pool.CreatorID)
	suite.Equal(domain.PoolActive, pool.Status)
	suite.Equal("home", pool.Icon)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PoolServiceTestSuite) TestCreatePool_DefaultsCategory() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockRepo.On("SavePool", ctx, mock.AnythingOfType("domain.Pool")).Return(nil).Once()

	pool, err := suite.service.CreatePool(ctx, dto.CreatePoolRequest{Name: "Misc"}, creatorID)

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryOther, pool.Category)
	suite.Equal("tag", pool.Icon)
}

func (suite *PoolServiceTestSuite) TestInvite_CapacityExceeded() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	members := []string{creatorID}
	for i := 0; i < 8; i++ {
		members = append(members, uuid.NewString())
	}
	pool := makePool(creatorID, members, []string{uuid.NewString()})
	invitees := []string{uuid.NewString(), uuid.NewString()}

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockRepo.On("ReserveInvites", ctx, pool.PoolID, invitees, creatorID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrPoolCapacity).Once()

	result, err := suite.service.Invite(ctx, pool.PoolID, creatorID, invitees)

	suite.Require().ErrorIs(err, apperrors.ErrPoolCapacity)
	suite.Nil(result)
	// No notifications go out for a rejected invite
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PoolServiceTestSuite) TestInvite_NonMemberForbidden() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	outsider := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID}, nil)

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()

	_, err := suite.service.Invite(ctx, pool.PoolID, outsider, []string{uuid.NewString()})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReserveInvites", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PoolServiceTestSuite) TestInvite_NotifiesEachInvitee() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID}, nil)
	invitees := []string{uuid.NewString(), uuid.NewString()}

	updated := makePool(creatorID, []string{creatorID}, invitees)
	updated.PoolID = pool.PoolID

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockRepo.On("ReserveInvites", ctx, pool.PoolID, invitees, creatorID, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotifyPoolInvite
	})).Times(2)

	result, err := suite.service.Invite(ctx, pool.PoolID, creatorID, invitees)

	suite.Require().NoError(err)
	suite.Equal(invitees, result.PendingInvites)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PoolServiceTestSuite) TestAcceptInvite_NotifiesCreator() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	inviteeID := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID}, []string{inviteeID})

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockRepo.On("PromoteInvite", ctx, pool.PoolID, inviteeID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotifyInviteAccept && n.RecipientID == creatorID
	})).Once()

	err := suite.service.AcceptInvite(ctx, pool.PoolID, inviteeID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PoolServiceTestSuite) TestRemoveMember_CreatorCannotBeRemoved() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID, uuid.NewString()}, nil)

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()

	err := suite.service.RemoveMember(ctx, pool.PoolID, creatorID, creatorID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "RemoveMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PoolServiceTestSuite) TestRemoveMember_MemberCannotRemoveOthers() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	memberA := uuid.NewString()
	memberB := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID, memberA, memberB}, nil)

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()

	err := suite.service.RemoveMember(ctx, pool.PoolID, memberB, memberA)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PoolServiceTestSuite) TestRemoveMember_SelfRemovalAllowed() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	memberA := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID, memberA}, nil)

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Once()
	suite.mockRepo.On("RemoveMember", ctx, pool.PoolID, memberA, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RemoveMember(ctx, pool.PoolID, memberA, memberA)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PoolServiceTestSuite) TestDeletePool_CreatorOnly() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	memberA := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID, memberA}, nil)

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Twice()
	suite.mockRepo.On("DeletePoolCascade", ctx, pool.PoolID).Return(nil).Once()

	err := suite.service.DeletePool(ctx, pool.PoolID, memberA)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)

	err = suite.service.DeletePool(ctx, pool.PoolID, creatorID)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PoolServiceTestSuite) TestGetPool_InviteeMayView() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	inviteeID := uuid.NewString()
	outsiderID := uuid.NewString()
	pool := makePool(creatorID, []string{creatorID}, []string{inviteeID})

	suite.mockRepo.On("FindPoolByID", ctx, pool.PoolID).Return(pool, nil).Twice()

	got, err := suite.service.GetPool(ctx, pool.PoolID, inviteeID)
	suite.Require().NoError(err)
	suite.Equal(pool.PoolID, got.PoolID)

	_, err = suite.service.GetPool(ctx, pool.PoolID, outsiderID)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestPoolServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PoolServiceTestSuite))
}
