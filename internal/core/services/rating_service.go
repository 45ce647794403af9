package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

// ratingService implements the RatingSvcFacade interface.
type ratingService struct {
	BaseService
	ratingRepo portsrepo.RatingRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	notifier   portssvc.Notifier
}

// NewRatingService creates a new rating service with the provided dependencies.
func NewRatingService(ratingRepo portsrepo.RatingRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, notifier portssvc.Notifier) portssvc.RatingSvcFacade {
	return &ratingService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

var _ portssvc.RatingSvcFacade = (*ratingService)(nil)

// AddRating records a peer rating and synchronously recomputes the rated
// user's trust score. A second rating for the same (rater, rated, bill)
// triple is rejected before any write.
func (s *ratingService) AddRating(ctx context.Context, req dto.CreateRatingRequest, raterID string) (*domain.UserRating, error) {
	if raterID == req.RatedUserID {
		return nil, fmt.Errorf("%w: users cannot rate themselves", apperrors.ErrValidation)
	}

	ratedUser, err := s.userRepo.FindUserByID(ctx, req.RatedUserID)
	if err != nil {
		return nil, err
	}

	if req.BillID != nil {
		existing, err := s.ratingRepo.FindRatingByBill(ctx, raterID, req.RatedUserID, *req.BillID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check for existing rating",
				slog.String("bill_id", *req.BillID))
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: user already rated for this bill", apperrors.ErrDuplicate)
		}
	}

	category := domain.RatingCategory(req.Category)
	if req.Category == "" {
		category = domain.RatingGeneral
	}

	rating := domain.UserRating{
		RatingID:    uuid.NewString(),
		RaterID:     raterID,
		RatedUserID: req.RatedUserID,
		Rating:      req.Rating,
		Category:    category,
		PoolID:      req.PoolID,
		BillID:      req.BillID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.ratingRepo.SaveRating(ctx, rating); err != nil {
		s.LogError(ctx, err, "Failed to save rating", slog.String("rated_user_id", req.RatedUserID))
		return nil, err
	}

	// The score is recomputed eagerly after every accepted rating, never
	// lazily on read.
	if err := s.recomputeTrustScore(ctx, ratedUser.UserID, ratedUser.IDVerified); err != nil {
		s.LogError(ctx, err, "Failed to recompute trust score after rating",
			slog.String("rated_user_id", req.RatedUserID))
		return nil, err
	}

	s.notifier.Notify(ctx, domain.Notification{
		RecipientID: req.RatedUserID,
		SenderID:    raterID,
		Type:        domain.NotifyRated,
		Message:     fmt.Sprintf("You received a new %d-star rating", req.Rating),
		Payload:     map[string]string{"ratingID": rating.RatingID},
	})

	s.LogInfo(ctx, "Rating added",
		slog.String("rating_id", rating.RatingID),
		slog.String("rated_user_id", req.RatedUserID),
		slog.Int("rating", req.Rating))
	return &rating, nil
}

// ListRatingsForUser retrieves all ratings addressed to a user.
func (s *ratingService) ListRatingsForUser(ctx context.Context, ratedUserID string) ([]domain.UserRating, error) {
	ratings, err := s.ratingRepo.ListRatingsForUser(ctx, ratedUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ratings", slog.String("rated_user_id", ratedUserID))
		return nil, err
	}
	if ratings == nil {
		return []domain.UserRating{}, nil
	}
	return ratings, nil
}

func (s *ratingService) recomputeTrustScore(ctx context.Context, userID string, idVerified bool) error {
	stats, err := s.ratingRepo.GetRatingStats(ctx, userID)
	if err != nil {
		return err
	}
	score := domain.ComputeTrustScore(idVerified, stats.AverageRating, stats.RatingsCount)
	if err := s.userRepo.UpdateTrustScore(ctx, userID, score, time.Now().UTC()); err != nil {
		return err
	}
	s.LogDebug(ctx, "Trust score recomputed",
		slog.String("user_id", userID), slog.Int("score", score))
	return nil
}
