package repositories

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// RatingReader defines read operations for peer rating data.
type RatingReader interface {
	// FindRatingByBill retrieves the rating for a (rater, rated, bill)
	// triple, or apperrors.ErrNotFound when none exists.
	FindRatingByBill(ctx context.Context, raterID, ratedUserID, billID string) (*domain.UserRating, error)

	// ListRatingsForUser retrieves all ratings addressed to a user, newest first.
	ListRatingsForUser(ctx context.Context, ratedUserID string) ([]domain.UserRating, error)

	// GetRatingStats derives the average rating and rating count for a user.
	GetRatingStats(ctx context.Context, ratedUserID string) (domain.RatingStats, error)
}

// RatingWriter defines write operations for peer rating data.
type RatingWriter interface {
	// SaveRating persists a new rating.
	SaveRating(ctx context.Context, rating domain.UserRating) error
}

// RatingRepositoryFacade combines all rating-related repository interfaces.
type RatingRepositoryFacade interface {
	RatingReader
	RatingWriter
}
