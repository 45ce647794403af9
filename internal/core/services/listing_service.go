package services

import (
	"context"
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

const defaultListingPageSize = 20

// listingService implements the ListingSvcFacade interface.
type listingService struct {
	BaseService
	listingRepo portsrepo.ListingRepositoryFacade
}

// NewListingService creates a new listing service with the provided dependencies.
func NewListingService(listingRepo portsrepo.ListingRepositoryFacade) portssvc.ListingSvcFacade {
	return &listingService{listingRepo: listingRepo}
}

var _ portssvc.ListingSvcFacade = (*listingService)(nil)

func (s *listingService) CreateListing(ctx context.Context, req dto.CreateListingRequest, ownerID string) (*domain.Listing, error) {
	if req.MonthlyRent.IsNegative() {
		return nil, fmt.Errorf("%w: monthly rent cannot be negative", apperrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	listing := domain.Listing{
		ListingID:   uuid.NewString(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		MonthlyRent: req.MonthlyRent,
		Address:     req.Address,
		City:        req.City,
		ImageURLs:   req.ImageURLs,
		Status:      domain.ListingActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}
	if listing.ImageURLs == nil {
		listing.ImageURLs = []string{}
	}

	if err := s.listingRepo.SaveListing(ctx, listing); err != nil {
		s.LogError(ctx, err, "Failed to save listing", slog.String("listing_id", listing.ListingID))
		return nil, err
	}

	s.LogInfo(ctx, "Listing created", slog.String("listing_id", listing.ListingID))
	return &listing, nil
}

func (s *listingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return s.listingRepo.FindListingByID(ctx, listingID)
}

func (s *listingService) ListListings(ctx context.Context, city string, limit, offset int) ([]domain.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultListingPageSize
	}
	if offset < 0 {
		offset = 0
	}
	listings, err := s.listingRepo.ListListings(ctx, city, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list listings")
		return nil, err
	}
	if listings == nil {
		return []domain.Listing{}, nil
	}
	return listings, nil
}

func (s *listingService) UpdateListing(ctx context.Context, listingID string, req dto.UpdateListingRequest, requesterID string) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: only the owner may update the listing", apperrors.ErrForbidden)
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.MonthlyRent != nil {
		if req.MonthlyRent.IsNegative() {
			return nil, fmt.Errorf("%w: monthly rent cannot be negative", apperrors.ErrInvalidInput)
		}
		listing.MonthlyRent = *req.MonthlyRent
	}
	if req.Address != nil {
		listing.Address = *req.Address
	}
	if req.City != nil {
		listing.City = *req.City
	}
	if req.ImageURLs != nil {
		listing.ImageURLs = req.ImageURLs
	}
	if req.Status != nil {
		listing.Status = domain.ListingStatus(*req.Status)
	}
	listing.LastUpdatedAt = time.Now().UTC()
	listing.LastUpdatedBy = requesterID

	if err := s.listingRepo.UpdateListing(ctx, *listing); err != nil {
		s.LogError(ctx, err, "Failed to update listing", slog.String("listing_id", listingID))
		return nil, err
	}
	return listing, nil
}

func (s *listingService) RemoveListing(ctx context.Context, listingID, requesterID string) error {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.OwnerID != requesterID {
		return fmt.Errorf("%w: only the owner may remove the listing", apperrors.ErrForbidden)
	}

	listing.Status = domain.ListingRemoved
	listing.LastUpdatedAt = time.Now().UTC()
	listing.LastUpdatedBy = requesterID

	if err := s.listingRepo.UpdateListing(ctx, *listing); err != nil {
		s.LogError(ctx, err, "Failed to remove listing", slog.String("listing_id", listingID))
		return err
	}

	s.LogInfo(ctx, "Listing removed", slog.String("listing_id", listingID))
	return nil
}
