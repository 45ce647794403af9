package services

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

// RatingSvcFacade owns peer ratings and keeps rated users' trust scores
// current: every accepted rating synchronously recomputes the rated user's
// score.
type RatingSvcFacade interface {
	// AddRating records a rating. A second rating for the same
	// (rater, rated, bill) triple is rejected with apperrors.ErrDuplicate.
	AddRating(ctx context.Context, req dto.CreateRatingRequest, raterID string) (*domain.UserRating, error)

	// ListRatingsForUser retrieves all ratings addressed to a user.
	ListRatingsForUser(ctx context.Context, ratedUserID string) ([]domain.UserRating, error)
}
