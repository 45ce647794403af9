package dto

import (
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// CreateRatingRequest defines the expected JSON body for rating a user.
type CreateRatingRequest struct {
	RatedUserID string  `json:"ratedUserID" binding:"required"`
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	Category    string  `json:"category" binding:"omitempty,oneof=PAYMENT COMMUNICATION CLEANLINESS GENERAL"`
	PoolID      *string `json:"poolID,omitempty"`
	BillID      *string `json:"billID,omitempty"`
}

// RatingResponse defines the data returned for a rating.
type RatingResponse struct {
	RatingID    string    `json:"ratingID"`
	RaterID     string    `json:"raterID"`
	RatedUserID string    `json:"ratedUserID"`
	Rating      int       `json:"rating"`
	Category    string    `json:"category"`
	PoolID      *string   `json:"poolID,omitempty"`
	BillID      *string   `json:"billID,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToRatingResponse converts a domain.UserRating to RatingResponse.
func ToRatingResponse(r *domain.UserRating) RatingResponse {
	return RatingResponse{
		RatingID:    r.RatingID,
		RaterID:     r.RaterID,
		RatedUserID: r.RatedUserID,
		Rating:      r.Rating,
		Category:    string(r.Category),
		PoolID:      r.PoolID,
		BillID:      r.BillID,
		CreatedAt:   r.CreatedAt,
	}
}

// ToRatingResponses converts a slice of domain.UserRating to []RatingResponse.
func ToRatingResponses(ratings []domain.UserRating) []RatingResponse {
	responses := make([]RatingResponse, len(ratings))
	for i := range ratings {
		responses[i] = ToRatingResponse(&ratings[i])
	}
	return responses
}
