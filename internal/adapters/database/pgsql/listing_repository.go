package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
)

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository creates a new repository for room listing data.
func NewListingRepository(pool *pgxpool.Pool) portsrepo.ListingRepositoryFacade {
	return &listingRepository{pool: pool}
}

var _ portsrepo.ListingRepositoryFacade = (*listingRepository)(nil)

const listingColumns = `listing_id, owner_id, title, description, monthly_rent, address, city, image_urls, status, created_at, created_by, last_updated_at, last_updated_by`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ListingID,
		&l.OwnerID,
		&l.Title,
		&l.Description,
		&l.MonthlyRent,
		&l.Address,
		&l.City,
		&l.ImageURLs,
		&l.Status,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// SaveListing inserts a new listing.
func (r *listingRepository) SaveListing(ctx context.Context, listing domain.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		listing.ListingID,
		listing.OwnerID,
		listing.Title,
		listing.Description,
		listing.MonthlyRent,
		listing.Address,
		listing.City,
		listing.ImageURLs,
		listing.Status,
		listing.CreatedAt,
		listing.CreatedBy,
		listing.LastUpdatedAt,
		listing.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save listing %s: %w", listing.ListingID, err)
	}
	return nil
}

// FindListingByID retrieves a listing by its ID.
func (r *listingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE listing_id = $1;`
	l, err := scanListing(r.pool.QueryRow(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find listing by ID %s: %w", listingID, err)
	}
	return l, nil
}

// ListListings retrieves active listings, newest first, optionally filtered
// by city.
func (r *listingRepository) ListListings(ctx context.Context, city string, limit, offset int) ([]domain.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE status = $1 AND ($2 = '' OR LOWER(city) = LOWER($2))
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.pool.Query(ctx, query, domain.ListingActive, city, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading listing rows: %w", err)
	}
	return listings, nil
}

// UpdateListing updates a listing's mutable fields and status.
func (r *listingRepository) UpdateListing(ctx context.Context, listing domain.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, description = $3, monthly_rent = $4, address = $5, city = $6,
		    image_urls = $7, status = $8, last_updated_at = $9, last_updated_by = $10
		WHERE listing_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		listing.ListingID,
		listing.Title,
		listing.Description,
		listing.MonthlyRent,
		listing.Address,
		listing.City,
		listing.ImageURLs,
		listing.Status,
		listing.LastUpdatedAt,
		listing.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", listing.ListingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
