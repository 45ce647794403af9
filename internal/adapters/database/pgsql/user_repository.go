package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
)

const uniqueViolationCode = "23505"

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new repository for user data.
func NewUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &userRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

const userColumns = `user_id, name, email, password_hash, id_verified, trust_score, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IDVerified,
		&u.TrustScore,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveUser inserts a new user. A unique violation on the email column is
// surfaced as apperrors.ErrDuplicate.
func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, name, email, password_hash, id_verified, trust_score, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IDVerified,
		user.TrustScore,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	u, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return u, nil
}

// FindUserByEmail retrieves a user by email, matched case-insensitively.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL;`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return u, nil
}

// UpdateTrustScore stores a freshly recomputed trust score.
func (r *userRepository) UpdateTrustScore(ctx context.Context, userID string, score int, at time.Time) error {
	query := `
		UPDATE users
		SET trust_score = $2, last_updated_at = $3, last_updated_by = $1
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, userID, score, at)
	if err != nil {
		return fmt.Errorf("failed to update trust score of user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkIDVerified records that the user passed identity verification.
func (r *userRepository) MarkIDVerified(ctx context.Context, userID string, at time.Time) error {
	query := `
		UPDATE users
		SET id_verified = TRUE, last_updated_at = $2, last_updated_by = $1
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, userID, at)
	if err != nil {
		return fmt.Errorf("failed to mark user %s verified: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
