package services

import (
	"context"
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

// UserSvcFacade owns user accounts and identity verification.
type UserSvcFacade interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email/password credentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail resolves an email (case-insensitive) to a user, for
	// invite flows. apperrors.ErrNotFound when absent.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// VerifyIdentity marks the user ID-verified and synchronously recomputes
	// their trust score.
	VerifyIdentity(ctx context.Context, userID string) (*domain.User, error)

	// UpsertOAuthUser finds or creates the account matching an external
	// identity provider profile.
	UpsertOAuthUser(ctx context.Context, email, name string) (*domain.User, error)
}

// TokenSvcFacade issues application bearer tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleIdentitySvcFacade is the glue to the managed identity provider: it
// exchanges a frontend-supplied authorization code for a validated Google
// identity and resolves it to a local user.
type GoogleIdentitySvcFacade interface {
	ExchangeCode(ctx context.Context, code string) (*domain.User, error)
}
