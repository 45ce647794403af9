package domain

import (
	"math"
	"time"
)

// RatingCategory classifies what aspect of the rated user is being scored.
type RatingCategory string

const (
	RatingPayment       RatingCategory = "PAYMENT"
	RatingCommunication RatingCategory = "COMMUNICATION"
	RatingCleanliness   RatingCategory = "CLEANLINESS"
	RatingGeneral       RatingCategory = "GENERAL"
)

// UserRating is one peer rating of a user. When BillID is set, at most one
// rating may exist per (RaterID, RatedUserID, BillID) triple.
type UserRating struct {
	RatingID    string         `json:"ratingID"` // Primary Key (e.g., UUID)
	RaterID     string         `json:"raterID"`
	RatedUserID string         `json:"ratedUserID"`
	Rating      int            `json:"rating"` // 1..5
	Category    RatingCategory `json:"category"`
	PoolID      *string        `json:"poolID,omitempty"`
	BillID      *string        `json:"billID,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Trust score formula constants.
const (
	TrustScoreBase          = 50
	TrustScoreVerifiedBonus = 20
	TrustScoreRatingWeight  = 30
	TrustScorePerRating     = 2
	TrustScoreActivityCap   = 20
)

// ComputeTrustScore derives a user's trust score from their verification
// state and rating history:
//
//	score = base + verification bonus + round(avg/5 * 30) + min(count*2, 20)
//
// The result is always within [50, 120].
func ComputeTrustScore(idVerified bool, averageRating float64, ratingsCount int) int {
	score := TrustScoreBase
	if idVerified {
		score += TrustScoreVerifiedBonus
	}
	score += int(math.Round(averageRating / 5.0 * TrustScoreRatingWeight))
	activity := ratingsCount * TrustScorePerRating
	if activity > TrustScoreActivityCap {
		activity = TrustScoreActivityCap
	}
	score += activity
	return score
}

// RatingStats summarizes the ratings addressed to one user.
type RatingStats struct {
	AverageRating float64
	RatingsCount  int
}
