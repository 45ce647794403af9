package domain

import "github.com/shopspring/decimal"

// ListingStatus indicates whether a room listing is available.
type ListingStatus string

const (
	ListingActive  ListingStatus = "ACTIVE"
	ListingRented  ListingStatus = "RENTED"
	ListingRemoved ListingStatus = "REMOVED"
)

// Listing represents a room advertised on the marketplace. Images are
// stored as URLs pointing at the external media CDN; the service never
// hosts image bytes itself.
type Listing struct {
	ListingID   string          `json:"listingID"` // Primary Key (e.g., UUID)
	OwnerID     string          `json:"ownerID"`   // Only the owner may mutate or remove the listing
	Title       string          `json:"title"`
	Description string          `json:"description"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	ImageURLs   []string        `json:"imageURLs"`
	Status      ListingStatus   `json:"status"`
	AuditFields
}
