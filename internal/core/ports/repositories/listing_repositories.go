package repositories

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// ListingReader defines read operations for room listings.
type ListingReader interface {
	// FindListingByID retrieves a listing by its unique identifier.
	FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error)

	// ListListings retrieves active listings, newest first, optionally
	// filtered by city (case-insensitive; empty matches all).
	ListListings(ctx context.Context, city string, limit, offset int) ([]domain.Listing, error)
}

// ListingWriter defines write operations for room listings.
type ListingWriter interface {
	// SaveListing persists a new listing.
	SaveListing(ctx context.Context, listing domain.Listing) error

	// UpdateListing updates a listing's mutable fields and status.
	UpdateListing(ctx context.Context, listing domain.Listing) error
}

// ListingRepositoryFacade combines all listing-related repository interfaces.
type ListingRepositoryFacade interface {
	ListingReader
	ListingWriter
}
