package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// CreateListingRequest defines the expected JSON body for creating a room listing.
type CreateListingRequest struct {
	Title       string          `json:"title" binding:"required,max=120"`
	Description string          `json:"description" binding:"max=2000"`
	MonthlyRent decimal.Decimal `json:"monthlyRent" binding:"required"`
	Address     string          `json:"address" binding:"required,max=300"`
	City        string          `json:"city" binding:"required,max=100"`
	ImageURLs   []string        `json:"imageURLs" binding:"omitempty,dive,url"`
}

// UpdateListingRequest defines the JSON body for listing updates. Nil fields
// are left unchanged.
type UpdateListingRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=120"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent,omitempty"`
	Address     *string          `json:"address" binding:"omitempty,max=300"`
	City        *string          `json:"city" binding:"omitempty,max=100"`
	ImageURLs   []string         `json:"imageURLs" binding:"omitempty,dive,url"`
	Status      *string          `json:"status" binding:"omitempty,oneof=ACTIVE RENTED REMOVED"`
}

// ListingResponse defines the data returned for a listing.
type ListingResponse struct {
	ListingID   string          `json:"listingID"`
	OwnerID     string          `json:"ownerID"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	ImageURLs   []string        `json:"imageURLs"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToListingResponse converts a domain.Listing to ListingResponse.
func ToListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ListingID:   l.ListingID,
		OwnerID:     l.OwnerID,
		Title:       l.Title,
		Description: l.Description,
		MonthlyRent: l.MonthlyRent,
		Address:     l.Address,
		City:        l.City,
		ImageURLs:   l.ImageURLs,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
	}
}

// ToListingResponses converts a slice of domain.Listing to []ListingResponse.
func ToListingResponses(listings []domain.Listing) []ListingResponse {
	responses := make([]ListingResponse, len(listings))
	for i := range listings {
		responses[i] = ToListingResponse(&listings[i])
	}
	return responses
}
