package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
)

// MockPoolRepository is a mock type for the PoolRepositoryFacade interface
type MockPoolRepository struct {
	mock.Mock
}

func (m *MockPoolRepository) FindPoolByID(ctx context.Context, poolID string) (*domain.Pool, error) {
	args := m.Called(ctx, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}

func (m *MockPoolRepository) ListPoolsByUserID(ctx context.Context, userID string) ([]domain.Pool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pool), args.Error(1)
}

func (m *MockPoolRepository) SavePool(ctx context.Context, pool domain.Pool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

func (m *MockPoolRepository) UpdatePoolMetadata(ctx context.Context, pool domain.Pool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

func (m *MockPoolRepository) ReserveInvites(ctx context.Context, poolID string, inviteeIDs []string, invitedBy string, at time.Time) (*domain.Pool, error) {
	args := m.Called(ctx, poolID, inviteeIDs, invitedBy, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}

func (m *MockPoolRepository) PromoteInvite(ctx context.Context, poolID, userID string, at time.Time) error {
	args := m.Called(ctx, poolID, userID, at)
	return args.Error(0)
}

func (m *MockPoolRepository) RemovePendingInvite(ctx context.Context, poolID, userID string, at time.Time) error {
	args := m.Called(ctx, poolID, userID, at)
	return args.Error(0)
}

func (m *MockPoolRepository) RemoveMember(ctx context.Context, poolID, userID string, at time.Time) error {
	args := m.Called(ctx, poolID, userID, at)
	return args.Error(0)
}

func (m *MockPoolRepository) UpdatePoolStatus(ctx context.Context, poolID string, status domain.PoolStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, poolID, status, updatedBy, at)
	return args.Error(0)
}

func (m *MockPoolRepository) DeletePoolCascade(ctx context.Context, poolID string) error {
	args := m.Called(ctx, poolID)
	return args.Error(0)
}

var _ portsrepo.PoolRepositoryFacade = (*MockPoolRepository)(nil)

// MockBillRepository is a mock type for the BillRepositoryFacade interface
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBillsByPoolID(ctx context.Context, poolID string) ([]domain.Bill, error) {
	args := m.Called(ctx, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateSplitPaid(ctx context.Context, billID, userID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, billID, userID, updatedBy, at)
	return args.Error(0)
}

func (m *MockBillRepository) DeleteBill(ctx context.Context, billID string) error {
	args := m.Called(ctx, billID)
	return args.Error(0)
}

var _ portsrepo.BillRepositoryFacade = (*MockBillRepository)(nil)

// MockRatingRepository is a mock type for the RatingRepositoryFacade interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) FindRatingByBill(ctx context.Context, raterID, ratedUserID, billID string) (*domain.UserRating, error) {
	args := m.Called(ctx, raterID, ratedUserID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRating), args.Error(1)
}

func (m *MockRatingRepository) ListRatingsForUser(ctx context.Context, ratedUserID string) ([]domain.UserRating, error) {
	args := m.Called(ctx, ratedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRating), args.Error(1)
}

func (m *MockRatingRepository) GetRatingStats(ctx context.Context, ratedUserID string) (domain.RatingStats, error) {
	args := m.Called(ctx, ratedUserID)
	return args.Get(0).(domain.RatingStats), args.Error(1)
}

func (m *MockRatingRepository) SaveRating(ctx context.Context, rating domain.UserRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

var _ portsrepo.RatingRepositoryFacade = (*MockRatingRepository)(nil)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateTrustScore(ctx context.Context, userID string, score int, at time.Time) error {
	args := m.Called(ctx, userID, score, at)
	return args.Error(0)
}

func (m *MockUserRepository) MarkIDVerified(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notification domain.Notification) {
	m.Called(ctx, notification)
}

var _ portssvc.Notifier = (*MockNotifier)(nil)
