package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
	"github.com/trustnest/trustnest_backend/internal/utils"
)

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	ratingRepo portsrepo.RatingReader
}

// NewUserService creates a new user service with the provided dependencies.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, ratingRepo portsrepo.RatingReader) portssvc.UserSvcFacade {
	return &userService{
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new user with a hashed password. New users start at
// the base trust score.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		IDVerified:   false,
		TrustScore:   domain.TrustScoreBase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Authenticate verifies email/password credentials.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: bad credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// FindUserByEmail resolves an email to a user for invite flows. The match
// is case-insensitive; a missing user surfaces as apperrors.ErrNotFound.
func (s *userService) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

// VerifyIdentity marks the user ID-verified and synchronously recomputes
// their trust score so the verification bonus shows up immediately.
func (s *userService) VerifyIdentity(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !user.IDVerified {
		if err := s.userRepo.MarkIDVerified(ctx, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to mark user verified", slog.String("user_id", userID))
			return nil, err
		}
		user.IDVerified = true
	}

	stats, err := s.ratingRepo.GetRatingStats(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load rating stats", slog.String("user_id", userID))
		return nil, err
	}
	score := domain.ComputeTrustScore(true, stats.AverageRating, stats.RatingsCount)
	if err := s.userRepo.UpdateTrustScore(ctx, userID, score, now); err != nil {
		s.LogError(ctx, err, "Failed to store trust score", slog.String("user_id", userID))
		return nil, err
	}
	user.TrustScore = score

	s.LogInfo(ctx, "User identity verified",
		slog.String("user_id", userID), slog.Int("trust_score", score))
	return user, nil
}

// UpsertOAuthUser finds or creates the account matching an identity
// provider profile. OAuth accounts carry no local password.
func (s *userService) UpsertOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:     uuid.NewString(),
		Name:       name,
		Email:      strings.ToLower(email),
		TrustScore: domain.TrustScoreBase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to create user from OAuth profile")
		return nil, err
	}

	s.LogInfo(ctx, "User created from OAuth profile", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
