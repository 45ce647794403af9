package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
)

type ratingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository creates a new repository for peer rating data.
func NewRatingRepository(pool *pgxpool.Pool) portsrepo.RatingRepositoryFacade {
	return &ratingRepository{pool: pool}
}

var _ portsrepo.RatingRepositoryFacade = (*ratingRepository)(nil)

const ratingColumns = `rating_id, rater_id, rated_user_id, rating, category, pool_id, bill_id, created_at`

func scanRating(row pgx.Row) (*domain.UserRating, error) {
	var ur domain.UserRating
	err := row.Scan(
		&ur.RatingID,
		&ur.RaterID,
		&ur.RatedUserID,
		&ur.Rating,
		&ur.Category,
		&ur.PoolID,
		&ur.BillID,
		&ur.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// SaveRating persists a new rating. The partial unique index on
// (rater_id, rated_user_id, bill_id) surfaces as apperrors.ErrDuplicate.
func (r *ratingRepository) SaveRating(ctx context.Context, rating domain.UserRating) error {
	query := `
		INSERT INTO user_ratings (` + ratingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		rating.RatingID,
		rating.RaterID,
		rating.RatedUserID,
		rating.Rating,
		rating.Category,
		rating.PoolID,
		rating.BillID,
		rating.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save rating %s: %w", rating.RatingID, err)
	}
	return nil
}

// FindRatingByBill retrieves the rating for a (rater, rated, bill) triple.
func (r *ratingRepository) FindRatingByBill(ctx context.Context, raterID, ratedUserID, billID string) (*domain.UserRating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM user_ratings
		WHERE rater_id = $1 AND rated_user_id = $2 AND bill_id = $3;
	`
	ur, err := scanRating(r.pool.QueryRow(ctx, query, raterID, ratedUserID, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rating for bill %s: %w", billID, err)
	}
	return ur, nil
}

// ListRatingsForUser retrieves all ratings addressed to a user, newest first.
func (r *ratingRepository) ListRatingsForUser(ctx context.Context, ratedUserID string) ([]domain.UserRating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM user_ratings
		WHERE rated_user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, ratedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for user %s: %w", ratedUserID, err)
	}
	defer rows.Close()

	var ratings []domain.UserRating
	for rows.Next() {
		ur, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings = append(ratings, *ur)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading rating rows: %w", err)
	}
	return ratings, nil
}

// GetRatingStats derives the average rating and rating count for a user.
// A user with no ratings gets a zero average and zero count.
func (r *ratingRepository) GetRatingStats(ctx context.Context, ratedUserID string) (domain.RatingStats, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM user_ratings
		WHERE rated_user_id = $1;
	`
	var stats domain.RatingStats
	err := r.pool.QueryRow(ctx, query, ratedUserID).Scan(&stats.AverageRating, &stats.RatingsCount)
	if err != nil {
		return domain.RatingStats{}, fmt.Errorf("failed to compute rating stats for user %s: %w", ratedUserID, err)
	}
	return stats, nil
}
