package repositories

import (
	"context"
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, matched case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateTrustScore stores a freshly recomputed trust score.
	UpdateTrustScore(ctx context.Context, userID string, score int, at time.Time) error

	// MarkIDVerified records that the user passed identity verification.
	MarkIDVerified(ctx context.Context, userID string, at time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
