package domain

import "time"

// User represents a marketplace user in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // Unique, matched case-insensitively
	PasswordHash string `json:"-"`     // Empty for OAuth-only accounts
	IDVerified   bool   `json:"idVerified"`
	TrustScore   int    `json:"trustScore"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
