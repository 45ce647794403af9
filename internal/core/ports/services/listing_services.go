package services

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
	"github.com/trustnest/trustnest_backend/internal/dto"
)

// ListingSvcFacade owns room listings. Only the owner may mutate a listing.
type ListingSvcFacade interface {
	CreateListing(ctx context.Context, req dto.CreateListingRequest, ownerID string) (*domain.Listing, error)
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)
	ListListings(ctx context.Context, city string, limit, offset int) ([]domain.Listing, error)
	UpdateListing(ctx context.Context, listingID string, req dto.UpdateListingRequest, requesterID string) (*domain.Listing, error)
	RemoveListing(ctx context.Context, listingID, requesterID string) error
}
